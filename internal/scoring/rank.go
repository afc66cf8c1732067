package scoring

import (
	"math"
	"sort"

	"github.com/adlume/spotrank/pkg/models"
)

// SortRanked orders items by the requested key descending, breaking ties
// by ascending candidate id so equal scores have a deterministic order
// across runs. key selects a float via keyFn; id supplies the tie-break.
func SortRanked[T any](items []T, keyFn func(T) float64, idFn func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		ki, kj := keyFn(items[i]), keyFn(items[j])
		if ki != kj {
			return ki > kj
		}
		return idFn(items[i]) < idFn(items[j])
	})
}

// Paginate slices one page out of the full ranked set and computes the
// page metadata. page and limit are assumed validated at the boundary;
// a page past the end yields an empty slice with intact metadata.
func Paginate[T any](items []T, page, limit int) ([]T, models.Pagination) {
	total := len(items)
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	meta := models.Pagination{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1 && total > 0,
	}

	offset := (page - 1) * limit
	if offset >= total {
		return []T{}, meta
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return items[offset:end], meta
}

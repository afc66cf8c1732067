// Package repository is the metric extraction layer: it pulls candidate
// supersets and their raw counters from PostgreSQL. Counter queries are
// grouped (one COUNT ... GROUP BY per counter type, not one query per
// candidate) and fanned out concurrently within a request.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

// Querier is the slice of pgxpool.Pool the repositories need; pgxmock
// satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

var searchFolder = cases.Fold()

// likePattern folds the search text for case-insensitive matching and
// wraps it for a substring LIKE.
func likePattern(q string) string {
	return "%" + searchFolder.String(q) + "%"
}

// counterQuery runs one grouped counter query and hands the rows to
// collect. A failed query is logged and skipped: a data gap for one
// counter must not void the whole ranking, the affected metrics just
// stay zero.
func counterQuery(ctx context.Context, db Querier, logger *logrus.Logger, name, sql string, collect func(rows pgx.Rows) error, args ...interface{}) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		logger.WithError(err).WithField("counter", name).Warn("Counter query failed, treating counters as zero")
		return
	}
	defer rows.Close()

	if err := collect(rows); err != nil {
		logger.WithError(err).WithField("counter", name).Warn("Counter rows could not be read")
	}
}

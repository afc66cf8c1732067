package services

import (
	"context"

	"github.com/adlume/spotrank/internal/messaging"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// auditPublisher is satisfied by messaging.RankingAuditPublisher.
// Publishing is fire and forget, so the interface carries no error.
type auditPublisher interface {
	Publish(ctx context.Context, event messaging.RankingAuditEvent)
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

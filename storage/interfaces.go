package storage

import (
	"context"

	"foodfindr/models"
)

// RatedLoader is the interface for replacing a table with rated restaurant rows.
type RatedLoader interface {
	Replace(ctx context.Context, table string, rows []*models.RatedRestaurant) error
	Count(ctx context.Context, table string) (int, error)
	Close() error
}

var _ RatedLoader = (*PostgresWriter)(nil)

package announcement

import "context"

// Repository exposes announcement persistence operations. Records are never
// updated in place; the write surface is batch insert and single-row delete.
type Repository interface {
	InsertBatch(ctx context.Context, records []Announcement) error
	List(ctx context.Context, filters Filters) ([]Announcement, error)
	GetPasswordByID(ctx context.Context, id string) (string, bool, error)
	DeleteByID(ctx context.Context, id string) error
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wground/wground-api/internal/domain/announcement"
)

// AnnouncementRepository is an in-memory implementation used by tests and by
// DB-less development runs. Semantics mirror the postgres repository,
// including the listing order.
type AnnouncementRepository struct {
	mu    sync.RWMutex
	items []announcement.Announcement
}

func NewAnnouncementRepository() *AnnouncementRepository {
	return &AnnouncementRepository{}
}

func (r *AnnouncementRepository) InsertBatch(_ context.Context, records []announcement.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, records...)
	return nil
}

func (r *AnnouncementRepository) List(_ context.Context, filters announcement.Filters) ([]announcement.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regions := make(map[string]struct{}, len(filters.Regions))
	for _, region := range filters.Regions {
		regions[region] = struct{}{}
	}

	out := make([]announcement.Announcement, 0, len(r.items))
	for _, item := range r.items {
		if len(regions) > 0 {
			if item.RegionTag == nil {
				continue
			}
			if _, ok := regions[*item.RegionTag]; !ok {
				continue
			}
		}
		if filters.HasCourtOnly && !item.HasCourt {
			continue
		}
		if filters.Date != "" {
			if item.MatchDate == nil || *item.MatchDate != filters.Date {
				continue
			}
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i], out[j]
		switch {
		case left.MatchDate == nil && right.MatchDate == nil:
			return left.CreatedAt.After(right.CreatedAt)
		case left.MatchDate == nil:
			return false
		case right.MatchDate == nil:
			return true
		case *left.MatchDate != *right.MatchDate:
			return *left.MatchDate < *right.MatchDate
		default:
			return left.CreatedAt.After(right.CreatedAt)
		}
	})

	return out, nil
}

func (r *AnnouncementRepository) GetPasswordByID(_ context.Context, id string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item.Password, true, nil
		}
	}
	return "", false, nil
}

func (r *AnnouncementRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// Len reports the stored record count; test helper.
func (r *AnnouncementRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

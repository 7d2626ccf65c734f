package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/wground/wground-api/internal/domain/announcement"
	idgen "github.com/wground/wground-api/internal/platform/id"
	"github.com/wground/wground-api/internal/platform/logging"
)

// AnnouncementService covers the post-confirmation lifecycle: batch save,
// filtered listing and password-gated deletion. Saved records are immutable.
type AnnouncementService struct {
	repo   announcement.Repository
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewAnnouncementService(repo announcement.Repository, idGen idgen.Generator, logger *logging.Logger) *AnnouncementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AnnouncementService{
		repo:   repo,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// Save persists confirmed candidates. Every record from one submission shares
// originalText and password but keeps its own field values.
func (s *AnnouncementService) Save(ctx context.Context, candidates []announcement.Candidate, originalText, password string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.Save")
	defer span.End()

	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: at least one announcement is required", ErrInvalidInput)
	}
	if strings.TrimSpace(originalText) == "" {
		return 0, fmt.Errorf("%w: original text is required", ErrInvalidInput)
	}
	if password == "" {
		return 0, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	createdAt := s.now().UTC()
	records := make([]announcement.Announcement, 0, len(candidates))
	for _, candidate := range candidates {
		id, err := s.idGen.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate announcement id: %w", err)
		}

		record := announcement.Announcement{
			ID:           id,
			TeamName:     candidate.TeamName,
			HasCourt:     candidate.HasCourt,
			LocationRaw:  candidate.LocationRaw,
			MatchDate:    candidate.MatchDate,
			MatchTime:    candidate.MatchTime,
			MatchType:    candidate.MatchType,
			Level:        candidate.Level,
			Contact:      candidate.Contact,
			Cost:         candidate.Cost,
			Note:         candidate.Note,
			OriginalText: originalText,
			Password:     password,
			CreatedAt:    createdAt,
		}
		// The closed set is enforced again right before the write; candidates
		// may have been edited by hand between extraction and confirmation.
		if candidate.RegionTag != nil && announcement.IsValidRegion(*candidate.RegionTag) {
			record.RegionTag = candidate.RegionTag
		}
		records = append(records, record)
	}

	if err := s.repo.InsertBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("insert announcements: %w", err)
	}

	s.logger.InfoContext(ctx, "announcements saved", "count", len(records))
	return len(records), nil
}

func (s *AnnouncementService) List(ctx context.Context, filters announcement.Filters) ([]announcement.Announcement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.List")
	defer span.End()

	normalized := announcement.Filters{
		HasCourtOnly: filters.HasCourtOnly,
		Date:         strings.TrimSpace(filters.Date),
	}
	for _, region := range filters.Regions {
		region = strings.TrimSpace(region)
		if region == "" {
			continue
		}
		if !announcement.IsValidRegion(region) {
			return nil, fmt.Errorf("%w: unknown region %q", ErrInvalidInput, region)
		}
		normalized.Regions = append(normalized.Regions, region)
	}

	items, err := s.repo.List(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	return items, nil
}

// Delete removes one record after verifying the shared submission password.
// A mismatch leaves the record untouched.
func (s *AnnouncementService) Delete(ctx context.Context, id, password string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: announcement id is required", ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	stored, found, err := s.repo.GetPasswordByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get announcement password: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: announcement %s", ErrNotFound, id)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return fmt.Errorf("%w: password does not match", ErrPasswordMismatch)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}

	s.logger.InfoContext(ctx, "announcement deleted", "announcement_id", id)
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wground/wground-api/internal/domain/announcement"
	qb "github.com/wground/wground-api/internal/platform/querybuilder"
)

const announcementsTable = "announcements"

type AnnouncementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) InsertBatch(ctx context.Context, records []announcement.Announcement) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]announcementTableModel, 0, len(records))
	for _, record := range records {
		rows = append(rows, announcementToTableModel(record))
	}

	query, args, err := qb.InsertModels(announcementsTable, rows)
	if err != nil {
		return fmt.Errorf("build insert announcements query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert announcements: %w", err)
	}

	return nil
}

func (r *AnnouncementRepository) List(ctx context.Context, filters announcement.Filters) ([]announcement.Announcement, error) {
	builder := qb.Select("*").From(announcementsTable)
	if len(filters.Regions) > 0 {
		values := make([]any, 0, len(filters.Regions))
		for _, region := range filters.Regions {
			values = append(values, region)
		}
		builder = builder.Where(qb.In("region_tag", values))
	}
	if filters.HasCourtOnly {
		builder = builder.Where(qb.Eq("has_court", true))
	}
	if filters.Date != "" {
		builder = builder.Where(qb.Eq("match_date", filters.Date))
	}
	query, args, err := builder.
		OrderBy("match_date ASC NULLS LAST", "created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select announcements query: %w", err)
	}

	var rows []announcementTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select announcements: %w", err)
	}

	out := make([]announcement.Announcement, 0, len(rows))
	for _, row := range rows {
		out = append(out, announcementFromTableModel(row))
	}

	return out, nil
}

func (r *AnnouncementRepository) GetPasswordByID(ctx context.Context, id string) (string, bool, error) {
	query, args, err := qb.Select("password").From(announcementsTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build get announcement password query: %w", err)
	}

	var password string
	if err := r.db.GetContext(ctx, &password, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get announcement password: %w", err)
	}

	return password, true, nil
}

func (r *AnnouncementRepository) DeleteByID(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom(announcementsTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete announcement query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}

	return nil
}

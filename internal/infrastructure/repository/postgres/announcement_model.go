package postgres

import (
	"database/sql"
	"time"

	"github.com/wground/wground-api/internal/domain/announcement"
)

type announcementTableModel struct {
	ID           string         `db:"id"`
	TeamName     sql.NullString `db:"team_name"`
	HasCourt     bool           `db:"has_court"`
	LocationRaw  sql.NullString `db:"location_raw"`
	RegionTag    sql.NullString `db:"region_tag"`
	MatchDate    sql.NullString `db:"match_date"`
	MatchTime    sql.NullString `db:"match_time"`
	MatchType    sql.NullString `db:"match_type"`
	Level        sql.NullString `db:"level"`
	Contact      sql.NullString `db:"contact"`
	Cost         sql.NullString `db:"cost"`
	Note         sql.NullString `db:"note"`
	OriginalText string         `db:"original_text"`
	Password     string         `db:"password"`
	CreatedAt    time.Time      `db:"created_at"`
}

func announcementToTableModel(record announcement.Announcement) announcementTableModel {
	return announcementTableModel{
		ID:           record.ID,
		TeamName:     nullStringFromPtr(record.TeamName),
		HasCourt:     record.HasCourt,
		LocationRaw:  nullStringFromPtr(record.LocationRaw),
		RegionTag:    nullStringFromPtr(record.RegionTag),
		MatchDate:    nullStringFromPtr(record.MatchDate),
		MatchTime:    nullStringFromPtr(record.MatchTime),
		MatchType:    nullStringFromPtr(record.MatchType),
		Level:        nullStringFromPtr(record.Level),
		Contact:      nullStringFromPtr(record.Contact),
		Cost:         nullStringFromPtr(record.Cost),
		Note:         nullStringFromPtr(record.Note),
		OriginalText: record.OriginalText,
		Password:     record.Password,
		CreatedAt:    record.CreatedAt,
	}
}

func announcementFromTableModel(row announcementTableModel) announcement.Announcement {
	return announcement.Announcement{
		ID:           row.ID,
		TeamName:     nullStringToPtr(row.TeamName),
		HasCourt:     row.HasCourt,
		LocationRaw:  nullStringToPtr(row.LocationRaw),
		RegionTag:    nullStringToPtr(row.RegionTag),
		MatchDate:    nullStringToPtr(row.MatchDate),
		MatchTime:    nullStringToPtr(row.MatchTime),
		MatchType:    nullStringToPtr(row.MatchType),
		Level:        nullStringToPtr(row.Level),
		Contact:      nullStringToPtr(row.Contact),
		Cost:         nullStringToPtr(row.Cost),
		Note:         nullStringToPtr(row.Note),
		OriginalText: row.OriginalText,
		Password:     row.Password,
		CreatedAt:    row.CreatedAt,
	}
}

func nullStringFromPtr(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullStringToPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

package httpapi

import (
	"context"
	"time"

	"github.com/wground/wground-api/internal/domain/announcement"
)

type extractRequest struct {
	Text string `json:"text" validate:"required"`
}

type candidateDTO struct {
	TeamName    *string `json:"team_name"`
	HasCourt    bool    `json:"has_court"`
	LocationRaw *string `json:"location_raw"`
	RegionTag   *string `json:"region_tag"`
	MatchDate   *string `json:"match_date"`
	MatchTime   *string `json:"match_time"`
	MatchType   *string `json:"match_type"`
	Level       *string `json:"level"`
	Contact     *string `json:"contact"`
	Cost        *string `json:"cost"`
	Note        *string `json:"note"`
}

type createAnnouncementsRequest struct {
	Candidates   []candidateDTO `json:"candidates" validate:"required,min=1,dive"`
	OriginalText string         `json:"original_text" validate:"required"`
	Password     string         `json:"password" validate:"required,min=1,max=72"`
}

type deleteAnnouncementRequest struct {
	Password string `json:"password" validate:"required"`
}

type announcementDTO struct {
	ID          string  `json:"id"`
	TeamName    *string `json:"team_name"`
	HasCourt    bool    `json:"has_court"`
	LocationRaw *string `json:"location_raw"`
	RegionTag   *string `json:"region_tag"`
	MatchDate   *string `json:"match_date"`
	MatchTime   *string `json:"match_time"`
	MatchType   *string `json:"match_type"`
	Level       *string `json:"level"`
	Contact     *string `json:"contact"`
	Cost        *string `json:"cost"`
	Note        *string `json:"note"`
	CreatedAt   string  `json:"created_at"`
}

type extractResultDTO struct {
	Message       string         `json:"message"`
	Announcements []candidateDTO `json:"announcements"`
}

type savedCountDTO struct {
	Message string `json:"message"`
	Saved   int    `json:"saved"`
}

type deleteResultDTO struct {
	Message string `json:"message"`
}

func candidateToDTO(ctx context.Context, candidate announcement.Candidate) candidateDTO {
	_, span := startSpan(ctx, "httpapi.candidateToDTO")
	defer span.End()

	return candidateDTO{
		TeamName:    candidate.TeamName,
		HasCourt:    candidate.HasCourt,
		LocationRaw: candidate.LocationRaw,
		RegionTag:   candidate.RegionTag,
		MatchDate:   candidate.MatchDate,
		MatchTime:   candidate.MatchTime,
		MatchType:   candidate.MatchType,
		Level:       candidate.Level,
		Contact:     candidate.Contact,
		Cost:        candidate.Cost,
		Note:        candidate.Note,
	}
}

func candidateFromDTO(dto candidateDTO) announcement.Candidate {
	return announcement.Candidate{
		TeamName:    dto.TeamName,
		HasCourt:    dto.HasCourt,
		LocationRaw: dto.LocationRaw,
		RegionTag:   dto.RegionTag,
		MatchDate:   dto.MatchDate,
		MatchTime:   dto.MatchTime,
		MatchType:   dto.MatchType,
		Level:       dto.Level,
		Contact:     dto.Contact,
		Cost:        dto.Cost,
		Note:        dto.Note,
	}
}

func announcementToDTO(ctx context.Context, record announcement.Announcement) announcementDTO {
	_, span := startSpan(ctx, "httpapi.announcementToDTO")
	defer span.End()

	return announcementDTO{
		ID:          record.ID,
		TeamName:    record.TeamName,
		HasCourt:    record.HasCourt,
		LocationRaw: record.LocationRaw,
		RegionTag:   record.RegionTag,
		MatchDate:   record.MatchDate,
		MatchTime:   record.MatchTime,
		MatchType:   record.MatchType,
		Level:       record.Level,
		Contact:     record.Contact,
		Cost:        record.Cost,
		Note:        record.Note,
		CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/wground/wground-api/internal/domain/announcement"
	"github.com/wground/wground-api/internal/platform/logging"
)

// Completer performs one chat-style completion round trip against the
// external extraction service.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// ExtractionService turns one block of free-form chat text into ordered
// announcement candidates. The model reply is untrusted: every field is
// re-validated and re-normalized here before it reaches a caller.
type ExtractionService struct {
	completer Completer
	logger    *logging.Logger
	now       func() time.Time
}

func NewExtractionService(completer Completer, logger *logging.Logger) *ExtractionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExtractionService{
		completer: completer,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ExtractionService) Extract(ctx context.Context, rawText string) ([]announcement.Candidate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExtractionService.Extract")
	defer span.End()

	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if s.completer == nil {
		return nil, fmt.Errorf("%w: extraction service credentials are missing, check GROQ_API_KEY", ErrNotConfigured)
	}

	systemPrompt := extractionSystemPrompt(s.now().Year())
	content, err := s.completer.Complete(ctx, systemPrompt, extractionUserMessagePrefix+rawText)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDependencyUnavailable, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: extraction service returned no content", ErrDependencyUnavailable)
	}

	rawCandidates, err := parseCandidatePayload(content)
	if err != nil {
		// Keep the raw reply so a human can diagnose prompt drift.
		return nil, fmt.Errorf("%w: %s\n\nraw response:\n%s", ErrUnparsableResponse, err, content)
	}

	out := make([]announcement.Candidate, 0, len(rawCandidates))
	for _, raw := range rawCandidates {
		out = append(out, normalizeCandidate(raw))
	}

	s.logger.InfoContext(ctx, "announcement extraction completed",
		"candidates", len(out),
		"input_bytes", len(rawText),
	)

	return out, nil
}

// rawCandidate mirrors the JSON schema the prompt demands. has_court is
// decoded loosely because models occasionally reply with "O"/"X" markers or
// null despite the instructions.
type rawCandidate struct {
	TeamName    *string `json:"team_name"`
	HasCourt    any     `json:"has_court"`
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

var codeFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

func parseCandidatePayload(content string) ([]rawCandidate, error) {
	payload := strings.TrimSpace(content)
	if groups := codeFenceRegex.FindStringSubmatch(payload); groups != nil {
		payload = strings.TrimSpace(groups[1])
	}

	var items []rawCandidate
	if err := sonic.Unmarshal([]byte(payload), &items); err == nil {
		return items, nil
	}

	// A single announcement sometimes comes back as a bare object; coerce it
	// to a singleton array.
	var single rawCandidate
	if err := sonic.Unmarshal([]byte(payload), &single); err != nil {
		return nil, fmt.Errorf("payload is neither a JSON array nor a JSON object: %s", err)
	}

	return []rawCandidate{single}, nil
}

func normalizeCandidate(raw rawCandidate) announcement.Candidate {
	candidate := announcement.Candidate{
		TeamName:    cleanOptional(raw.TeamName),
		HasCourt:    coerceHasCourt(raw.HasCourt),
		LocationRaw: cleanOptional(raw.LocationRaw),
		MatchDate:   cleanOptional(raw.MatchDate),
		Level:       cleanOptional(raw.Level),
		Contact:     cleanOptional(raw.Contact),
		Cost:        cleanOptional(raw.Cost),
		Note:        cleanOptional(raw.Note),
	}

	if region := cleanOptional(raw.RegionTag); region != nil && announcement.IsValidRegion(*region) {
		candidate.RegionTag = region
	}
	if matchType := cleanOptional(raw.MatchType); matchType != nil {
		normalized := announcement.NormalizeMatchType(*matchType)
		candidate.MatchType = &normalized
	}
	if matchTime := cleanOptional(raw.MatchTime); matchTime != nil {
		normalized := announcement.NormalizeTimeRange(*matchTime)
		candidate.MatchTime = &normalized
	}

	return candidate
}

func coerceHasCourt(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return announcement.CourtConfirmed(v)
	default:
		return false
	}
}

func cleanOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

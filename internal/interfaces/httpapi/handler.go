package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/wground/wground-api/internal/domain/announcement"
	"github.com/wground/wground-api/internal/platform/logging"
	"github.com/wground/wground-api/internal/usecase"
)

type Handler struct {
	extractionService   *usecase.ExtractionService
	announcementService *usecase.AnnouncementService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	extractionService *usecase.ExtractionService,
	announcementService *usecase.AnnouncementService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		extractionService:   extractionService,
		announcementService: announcementService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRegions")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, announcement.Regions)
}

func (h *Handler) ExtractAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExtractAnnouncements")
	defer span.End()

	var payload extractRequest
	if err := h.decodeRequest(ctx, r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	candidates, err := h.extractionService.Extract(ctx, payload.Text)
	if err != nil {
		h.logger.WarnContext(ctx, "extract announcements failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]candidateDTO, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, candidateToDTO(ctx, candidate))
	}

	writeSuccess(ctx, w, http.StatusOK, extractResultDTO{
		Message:       fmt.Sprintf("%d개의 매칭 정보가 파싱되었습니다. 확인 후 저장해주세요.", len(items)),
		Announcements: items,
	})
}

func (h *Handler) CreateAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateAnnouncements")
	defer span.End()

	var payload createAnnouncementsRequest
	if err := h.decodeRequest(ctx, r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	candidates := make([]announcement.Candidate, 0, len(payload.Candidates))
	for _, dto := range payload.Candidates {
		candidates = append(candidates, candidateFromDTO(dto))
	}

	saved, err := h.announcementService.Save(ctx, candidates, payload.OriginalText, payload.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "create announcements failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, savedCountDTO{
		Message: fmt.Sprintf("%d개의 매칭 정보가 성공적으로 등록되었습니다.", saved),
		Saved:   saved,
	})
}

func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAnnouncements")
	defer span.End()

	query := r.URL.Query()
	filters := announcement.Filters{
		Regions: query["region"],
		Date:    strings.TrimSpace(query.Get("date")),
	}
	switch strings.ToLower(strings.TrimSpace(query.Get("hasCourt"))) {
	case "", "false":
	case "true":
		filters.HasCourtOnly = true
	default:
		writeError(ctx, w, fmt.Errorf("%w: hasCourt must be true or false", usecase.ErrInvalidInput))
		return
	}

	records, err := h.announcementService.List(ctx, filters)
	if err != nil {
		h.logger.WarnContext(ctx, "list announcements failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]announcementDTO, 0, len(records))
	for _, record := range records {
		items = append(items, announcementToDTO(ctx, record))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAnnouncement")
	defer span.End()

	announcementID := strings.TrimSpace(r.PathValue("announcementID"))
	if announcementID == "" {
		writeError(ctx, w, fmt.Errorf("%w: announcement id is required", usecase.ErrInvalidInput))
		return
	}

	var payload deleteAnnouncementRequest
	if err := h.decodeRequest(ctx, r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.announcementService.Delete(ctx, announcementID, payload.Password); err != nil {
		h.logger.WarnContext(ctx, "delete announcement failed", "announcement_id", announcementID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deleteResultDTO{Message: "매치가 삭제되었습니다."})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(payload); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/wground/wground-api/internal/infrastructure/repository/memory"
	"github.com/wground/wground-api/internal/platform/id"
	"github.com/wground/wground-api/internal/platform/logging"
	"github.com/wground/wground-api/internal/usecase"
)

type stubCompleter struct {
	response string
}

func (s stubCompleter) Complete(context.Context, string, string) (string, error) {
	return s.response, nil
}

func newTestRouter(t *testing.T, completer usecase.Completer) (http.Handler, *memory.AnnouncementRepository) {
	t.Helper()

	repo := memory.NewAnnouncementRepository()
	logger := logging.NewNop()
	handler := NewHandler(
		usecase.NewExtractionService(completer, logger),
		usecase.NewAnnouncementService(repo, id.NewRandomGenerator(), logger),
		logger,
	)
	return NewRouter(handler, logger, []string{"*"}), repo
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t, stubCompleter{response: "[]"})

	rec := doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_ListRegions(t *testing.T) {
	router, _ := newTestRouter(t, stubCompleter{response: "[]"})

	rec := doJSON(t, router, http.MethodGet, "/v1/regions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	regions, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected regions array, got %T", body["data"])
	}
	if len(regions) != 17 {
		t.Fatalf("expected 17 regions, got %d", len(regions))
	}
	if regions[0] != "서울" {
		t.Fatalf("expected 서울 first, got %v", regions[0])
	}
}

func TestRouter_ExtractAnnouncements(t *testing.T) {
	completer := stubCompleter{response: `[{"team_name": "seouldive", "has_court": "O", "region_tag": "서울", "match_type": "5vs5"}]`}
	router, _ := newTestRouter(t, completer)

	rec := doJSON(t, router, http.MethodPost, "/v1/announcements/extract", `{"text": "금일 풋살 게스트 구합니다"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected result object, got %T", body["data"])
	}
	if msg, _ := data["message"].(string); !strings.Contains(msg, "1개") {
		t.Fatalf("expected candidate count in message, got %q", msg)
	}
	items, ok := data["announcements"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one candidate, got %v", data["announcements"])
	}
	candidate := items[0].(map[string]any)
	if candidate["team_name"] != "seouldive" {
		t.Fatalf("unexpected team_name: %v", candidate["team_name"])
	}
	if candidate["has_court"] != true {
		t.Fatalf("expected has_court=true, got %v", candidate["has_court"])
	}
	if candidate["match_type"] != "5:5" {
		t.Fatalf("expected normalized match_type, got %v", candidate["match_type"])
	}
}

func TestRouter_ExtractRequiresText(t *testing.T) {
	router, _ := newTestRouter(t, stubCompleter{response: "[]"})

	rec := doJSON(t, router, http.MethodPost, "/v1/announcements/extract", `{"text": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_ExtractNotConfigured(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/v1/announcements/extract", `{"text": "공고"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestRouter_CreateListDeleteFlow(t *testing.T) {
	router, repo := newTestRouter(t, stubCompleter{response: "[]"})

	createBody := `{
		"candidates": [
			{"team_name": "서울팀", "has_court": true, "region_tag": "서울", "match_date": "2026-02-14"},
			{"team_name": "인천팀", "has_court": false, "region_tag": "인천", "match_date": "2026-02-22"}
		],
		"original_text": "원본 카톡 메시지",
		"password": "secret"
	}`
	rec := doJSON(t, router, http.MethodPost, "/v1/announcements", createBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	if saved, _ := data["saved"].(float64); saved != 2 {
		t.Fatalf("expected saved=2, got %v", data["saved"])
	}
	if msg, _ := data["message"].(string); !strings.Contains(msg, "2개") {
		t.Fatalf("expected saved count in message, got %q", msg)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/announcements?region=서울&hasCourt=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	items := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one filtered record, got %d", len(items))
	}
	record := items[0].(map[string]any)
	if record["team_name"] != "서울팀" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, exposed := record["original_text"]; exposed {
		t.Fatal("original_text must not be exposed in list responses")
	}
	if _, exposed := record["password"]; exposed {
		t.Fatal("password must not be exposed in list responses")
	}
	announcementID, _ := record["id"].(string)
	if announcementID == "" {
		t.Fatal("expected record id")
	}

	rec = doJSON(t, router, http.MethodDelete, "/v1/announcements/"+announcementID, `{"password": "wrong"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected records untouched, got %d", repo.Len())
	}

	rec = doJSON(t, router, http.MethodDelete, "/v1/announcements/"+announcementID, `{"password": "secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.Len() != 1 {
		t.Fatalf("expected one record left, got %d", repo.Len())
	}
}

func TestRouter_DeleteUnknownID(t *testing.T) {
	router, _ := newTestRouter(t, stubCompleter{response: "[]"})

	rec := doJSON(t, router, http.MethodDelete, "/v1/announcements/missing-id", `{"password": "secret"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_ListRejectsUnknownRegion(t *testing.T) {
	router, _ := newTestRouter(t, stubCompleter{response: "[]"})

	rec := doJSON(t, router, http.MethodGet, "/v1/announcements?region=강남구", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_ListRejectsBadHasCourt(t *testing.T) {
	router, _ := newTestRouter(t, stubCompleter{response: "[]"})

	rec := doJSON(t, router, http.MethodGet, "/v1/announcements?hasCourt=maybe", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

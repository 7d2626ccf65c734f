package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/wground/wground-api/internal/domain/announcement"
	"github.com/wground/wground-api/internal/infrastructure/repository/memory"
)

type sequenceIDGenerator struct {
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

func strptr(s string) *string { return &s }

func TestAnnouncementService_Save(t *testing.T) {
	repo := memory.NewAnnouncementRepository()
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)

	candidates := []announcement.Candidate{
		{TeamName: strptr("seouldive"), RegionTag: strptr("서울"), MatchDate: strptr("2026-02-14"), HasCourt: true},
		{TeamName: strptr("워터멜론"), RegionTag: strptr("인천"), MatchDate: strptr("2026-02-22")},
	}

	saved, err := service.Save(t.Context(), candidates, "원본 카톡 메시지", "1234")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved != 2 {
		t.Fatalf("expected 2 saved records, got %d", saved)
	}

	records, err := repo.List(t.Context(), announcement.Filters{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	seen := map[string]bool{}
	for _, rec := range records {
		if rec.OriginalText != "원본 카톡 메시지" {
			t.Fatalf("expected shared original text, got %q", rec.OriginalText)
		}
		if rec.Password != "1234" {
			t.Fatalf("expected shared password, got %q", rec.Password)
		}
		if rec.ID == "" {
			t.Fatal("expected non-empty id")
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate id %q", rec.ID)
		}
		seen[rec.ID] = true
		if rec.CreatedAt.IsZero() {
			t.Fatal("expected created_at to be stamped")
		}
	}
}

func TestAnnouncementService_SaveValidation(t *testing.T) {
	repo := memory.NewAnnouncementRepository()
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)
	candidate := announcement.Candidate{TeamName: strptr("팀")}

	cases := []struct {
		name       string
		candidates []announcement.Candidate
		original   string
		password   string
	}{
		{"no candidates", nil, "원본", "1234"},
		{"no original text", []announcement.Candidate{candidate}, "  ", "1234"},
		{"no password", []announcement.Candidate{candidate}, "원본", ""},
	}
	for _, tc := range cases {
		if _, err := service.Save(t.Context(), tc.candidates, tc.original, tc.password); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
	if repo.Len() != 0 {
		t.Fatalf("expected nothing persisted, got %d records", repo.Len())
	}
}

func TestAnnouncementService_SaveNullsUnknownRegion(t *testing.T) {
	repo := memory.NewAnnouncementRepository()
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)

	candidates := []announcement.Candidate{{TeamName: strptr("팀"), RegionTag: strptr("강남구")}}
	if _, err := service.Save(t.Context(), candidates, "원본", "pw"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	records, err := repo.List(t.Context(), announcement.Filters{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if records[0].RegionTag != nil {
		t.Fatalf("expected unknown region to be stored as null, got %q", *records[0].RegionTag)
	}
}

func TestAnnouncementService_ListOrdering(t *testing.T) {
	repo := memory.NewAnnouncementRepository()
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)

	batches := [][]announcement.Candidate{
		{{TeamName: strptr("늦은 날짜"), MatchDate: strptr("2026-03-01")}},
		{{TeamName: strptr("이른 날짜"), MatchDate: strptr("2026-02-14")}},
		{{TeamName: strptr("날짜 미정")}},
	}
	for _, batch := range batches {
		if _, err := service.Save(t.Context(), batch, "원본", "pw"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	records, err := service.List(t.Context(), announcement.Filters{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if *records[0].TeamName != "이른 날짜" || *records[1].TeamName != "늦은 날짜" {
		t.Fatalf("expected match_date ascending, got %q then %q", *records[0].TeamName, *records[1].TeamName)
	}
	if records[2].MatchDate != nil {
		t.Fatal("expected undated record last")
	}
}

func TestAnnouncementService_ListFilters(t *testing.T) {
	repo := memory.NewAnnouncementRepository()
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)

	candidates := []announcement.Candidate{
		{TeamName: strptr("서울팀"), RegionTag: strptr("서울"), MatchDate: strptr("2026-02-14"), HasCourt: true},
		{TeamName: strptr("인천팀"), RegionTag: strptr("인천"), MatchDate: strptr("2026-02-14")},
		{TeamName: strptr("부산팀"), RegionTag: strptr("부산"), MatchDate: strptr("2026-02-22"), HasCourt: true},
	}
	if _, err := service.Save(t.Context(), candidates, "원본", "pw"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	records, err := service.List(t.Context(), announcement.Filters{Regions: []string{"서울", "인천"}})
	if err != nil {
		t.Fatalf("region filter failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for 서울+인천, got %d", len(records))
	}

	records, err = service.List(t.Context(), announcement.Filters{HasCourtOnly: true, Date: "2026-02-14"})
	if err != nil {
		t.Fatalf("combined filter failed: %v", err)
	}
	if len(records) != 1 || *records[0].TeamName != "서울팀" {
		t.Fatalf("expected only 서울팀, got %d records", len(records))
	}

	if _, err := service.List(t.Context(), announcement.Filters{Regions: []string{"강남구"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown region, got %v", err)
	}
}

func TestAnnouncementService_Delete(t *testing.T) {
	repo := memory.NewAnnouncementRepository()
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)

	if _, err := service.Save(t.Context(), []announcement.Candidate{{TeamName: strptr("팀")}}, "원본", "secret"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	records, err := repo.List(t.Context(), announcement.Filters{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	id := records[0].ID

	if err := service.Delete(t.Context(), id, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if repo.Len() != 1 {
		t.Fatal("expected record untouched after mismatched password")
	}

	if err := service.Delete(t.Context(), "missing-id", "secret"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := service.Delete(t.Context(), id, "secret"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected empty repository, got %d records", repo.Len())
	}
}

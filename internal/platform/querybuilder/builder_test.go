package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("*").From("announcements").
		Where(
			In("region_tag", []any{"서울", "경기"}),
			Eq("has_court", true),
		).
		OrderBy("match_date ASC NULLS LAST", "created_at DESC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT * FROM announcements WHERE region_tag IN ($1, $2) AND has_court = $3 ORDER BY match_date ASC NULLS LAST, created_at DESC"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"서울", "경기", true}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").From("announcements").
		Where(In("region_tag", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	if query != "SELECT id FROM announcements WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestSelectBuilder_Validation(t *testing.T) {
	if _, _, err := Select().From("announcements").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("announcements").
		Columns("id", "team_name").
		Values("a1", "seouldive").
		Values("a2", "워터멜론").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO announcements (id, team_name) VALUES ($1, $2), ($3, $4)"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"a1", "seouldive", "a2", "워터멜론"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("announcements").
		Columns("id", "team_name").
		Values("a1").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row width mismatch")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("announcements").
		Where(Eq("id", "a1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}
	if query != "DELETE FROM announcements WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if !reflect.DeepEqual(args, []any{"a1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteBuilder_RequiresConditions(t *testing.T) {
	if _, _, err := DeleteFrom("announcements").ToSQL(); err == nil {
		t.Fatal("expected error for unconditional delete")
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID   string `db:"id"`
		Name string `db:"team_name"`
		skip string //nolint:unused
	}

	query, args, err := InsertModels("announcements", []row{
		{ID: "a1", Name: "seouldive"},
		{ID: "a2", Name: "워터멜론"},
	})
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	want := "INSERT INTO announcements (id, team_name) VALUES ($1, $2), ($3, $4)"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"a1", "seouldive", "a2", "워터멜론"}) {
		t.Fatalf("unexpected args: %v", args)
	}

	if _, _, err := InsertModels[row]("announcements", nil); err == nil {
		t.Fatal("expected error for empty models")
	}
}

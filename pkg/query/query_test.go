package query_test

import (
	"testing"

	"github.com/JaimeStill/boletin/pkg/query"
)

func testProjection() *query.Projection {
	return query.NewProjection("documents", "d").
		Field("id", "id").
		Field("size_bytes", "sizeBytes").
		Field("archived_at", "archivedAt")
}

func ptr(s string) *string { return &s }

func TestProjection(t *testing.T) {
	p := testProjection()

	if got := p.From(); got != "documents d" {
		t.Errorf("From() = %q", got)
	}
	if got := p.Columns(); got != "d.id, d.size_bytes, d.archived_at" {
		t.Errorf("Columns() = %q", got)
	}
	if got := p.Subset("archivedAt", "bogus", "id"); got != "d.archived_at, d.id" {
		t.Errorf("Subset() = %q", got)
	}
	if _, ok := p.Column("raw; DROP TABLE documents"); ok {
		t.Error("unmapped field resolved")
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"ascending", "id", []query.SortField{{Field: "id"}}},
		{"descending", "-archivedAt", []query.SortField{{Field: "archivedAt", Descending: true}}},
		{"mixed with spaces", " -archivedAt , id ", []query.SortField{
			{Field: "archivedAt", Descending: true},
			{Field: "id"},
		}},
		{"empty parts skipped", "id,,sizeBytes", []query.SortField{{Field: "id"}, {Field: "sizeBytes"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSort(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSort(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSort(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	defaultSort := []query.SortField{{Field: "archivedAt", Descending: true}, {Field: "id"}}

	tests := []struct {
		name     string
		build    func() (string, []any)
		wantSQL  string
		wantArgs int
	}{
		{
			name: "select all with default sort",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection(), defaultSort...).Select()
			},
			wantSQL: "SELECT d.id, d.size_bytes, d.archived_at FROM documents d ORDER BY d.archived_at DESC, d.id ASC",
		},
		{
			name: "equals",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection()).WhereEquals("id", "BOE-A-2024-1").Select("id")
			},
			wantSQL:  "SELECT d.id FROM documents d WHERE d.id = $1",
			wantArgs: 1,
		},
		{
			name: "count with search",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection()).WhereSearch(ptr("BOE"), "id").Count()
			},
			wantSQL:  "SELECT COUNT(*) FROM documents d WHERE (d.id ILIKE $1)",
			wantArgs: 1,
		},
		{
			name: "empty search ignored",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection()).WhereSearch(ptr(""), "id").Count()
			},
			wantSQL: "SELECT COUNT(*) FROM documents d",
		},
		{
			name: "page with numbered placeholders",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection(), defaultSort...).
					WhereSearch(ptr("A-2024"), "id").
					WhereEquals("sizeBytes", 10).
					OrderBy(query.ParseSort("-sizeBytes")).
					Page(3, 20, "id", "sizeBytes")
			},
			wantSQL:  "SELECT d.id, d.size_bytes FROM documents d WHERE (d.id ILIKE $1) AND d.size_bytes = $2 ORDER BY d.size_bytes DESC LIMIT 20 OFFSET 40",
			wantArgs: 2,
		},
		{
			name: "unknown sort falls back to none",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection()).OrderBy(query.ParseSort("bogus")).Select("id")
			},
			wantSQL: "SELECT d.id FROM documents d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.build()
			if sql != tt.wantSQL {
				t.Errorf("sql:\n got %q\nwant %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args: got %v, want %d", args, tt.wantArgs)
			}
		})
	}
}

func TestWhereSearchPattern(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   string
	}{
		{"plain", "2024", "%2024%"},
		{"underscore", "_", `%\_%`},
		{"percent", "50%", `%50\%%`},
		{"backslash", `a\b`, `%a\\b%`},
		{"mixed", "A_2024%", `%A\_2024\%%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, args := query.NewBuilder(testProjection()).WhereSearch(ptr(tt.search), "id").Count()
			if len(args) != 1 || args[0] != tt.want {
				t.Errorf("args: got %v, want [%s]", args, tt.want)
			}
		})
	}
}

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/boletin/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantSize   int
		wantSearch string
	}{
		{"defaults", "", 1, 20, ""},
		{"explicit", "page=3&page_size=10", 3, 10, ""},
		{"clamped size", "page_size=500", 1, 100, ""},
		{"negative page", "page=-2", 1, 20, ""},
		{"search trimmed", "search=%20BOE-A%20", 1, 20, "BOE-A"},
		{"blank search", "search=%20%20", 1, 20, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, cfg)

			if req.Page != tt.wantPage {
				t.Errorf("page: got %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantSize {
				t.Errorf("page_size: got %d, want %d", req.PageSize, tt.wantSize)
			}
			got := ""
			if req.Search != nil {
				got = *req.Search
			}
			if got != tt.wantSearch {
				t.Errorf("search: got %q, want %q", got, tt.wantSearch)
			}
		})
	}
}

func TestPageRequestSort(t *testing.T) {
	values, _ := url.ParseQuery("sort=%20-archivedAt,id%20")
	req := pagination.PageRequestFromQuery(values, cfg)
	if req.Sort != "-archivedAt,id" {
		t.Errorf("sort: got %q", req.Sort)
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 20}
	if got := req.Offset(); got != 40 {
		t.Errorf("offset: got %d, want 40", got)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"empty", 0, 20, 1},
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pagination.NewPageResult[string](nil, tt.total, 1, tt.pageSize)
			if r.TotalPages != tt.wantPages {
				t.Errorf("total pages: got %d, want %d", r.TotalPages, tt.wantPages)
			}
			if r.Data == nil {
				t.Error("data should be an empty slice, not nil")
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	c := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := c.Finalize(nil); err == nil {
		t.Error("expected error when default exceeds max")
	}

	c = pagination.Config{}
	if err := c.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if c.DefaultPageSize != 20 || c.MaxPageSize != 100 {
		t.Errorf("defaults: got %d/%d", c.DefaultPageSize, c.MaxPageSize)
	}
}

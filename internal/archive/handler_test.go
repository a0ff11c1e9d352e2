package archive_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JaimeStill/boletin/internal/archive"
	"github.com/JaimeStill/boletin/pkg/pagination"
	"github.com/JaimeStill/boletin/pkg/routes"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[archive.Summary], error)
	findFn   func(ctx context.Context, id string) (*archive.Entry, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockSystem) Handler() *archive.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[archive.Summary], error) {
	return m.listFn(ctx, page)
}

func (m *mockSystem) Find(ctx context.Context, id string) (*archive.Entry, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Save(ctx context.Context, id, raw string) (*archive.Entry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockSystem) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys archive.System) *archive.Handler {
	return archive.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *archive.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

var archivedAt = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func TestHandlerList(t *testing.T) {
	var captured pagination.PageRequest
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest) (*pagination.PageResult[archive.Summary], error) {
			captured = page
			result := pagination.NewPageResult([]archive.Summary{
				{ID: "BOE-A-2024-1", SizeBytes: 120, ArchivedAt: archivedAt},
			}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/archive?page=2&page_size=5&search=BOE-A", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.Page != 2 || captured.PageSize != 5 {
		t.Errorf("page request: got %+v", captured)
	}
	if captured.Search == nil || *captured.Search != "BOE-A" {
		t.Errorf("search: got %v", captured.Search)
	}

	var result pagination.PageResult[archive.Summary]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].ID != "BOE-A-2024-1" {
		t.Errorf("data: got %+v", result.Data)
	}
}

func TestHandlerListError(t *testing.T) {
	sys := &mockSystem{
		listFn: func(context.Context, pagination.PageRequest) (*pagination.PageResult[archive.Summary], error) {
			return nil, errors.New("connection refused")
		},
	}

	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("GET", "/archive", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, id string) (*archive.Entry, error) {
			if id != "BOE-A-2024-1" {
				return nil, archive.ErrNotFound
			}
			return &archive.Entry{ID: id, Raw: "<documento/>", SizeBytes: 12, ArchivedAt: archivedAt}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/archive/BOE-A-2024-1", http.StatusOK},
		{"missing", "/archive/BOE-A-2024-2", http.StatusNotFound},
		{"invalid id", "/archive/BOE_A", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var entry archive.Entry
			if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if entry.Raw != "<documento/>" {
				t.Errorf("raw: got %q", entry.Raw)
			}
		})
	}
}

func TestHandlerDelete(t *testing.T) {
	var deleted string
	sys := &mockSystem{
		deleteFn: func(_ context.Context, id string) error {
			if id == "BOE-A-2024-9" {
				return archive.ErrNotFound
			}
			deleted = id
			return nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/archive/BOE-A-2024-1", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if deleted != "BOE-A-2024-1" {
		t.Errorf("deleted: got %q", deleted)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/archive/BOE-A-2024-9", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{archive.ErrNotFound, http.StatusNotFound},
		{archive.ErrInvalidID, http.StatusBadRequest},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := archive.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

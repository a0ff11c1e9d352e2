package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/boletin/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux,
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/status", Handler: respond("status")},
				{Method: "GET", Pattern: "/pdf/info", Handler: respond("info")},
			},
		},
		routes.Group{
			Prefix: "/archive",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: respond("list")},
				{Method: "GET", Pattern: "/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte("find " + r.PathValue("id")))
				}},
				{Method: "DELETE", Pattern: "/{id}", Handler: respond("delete")},
			},
		},
	)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root group", "GET", "/status", http.StatusOK, "status"},
		{"nested pattern", "GET", "/pdf/info", http.StatusOK, "info"},
		{"prefix only", "GET", "/archive", http.StatusOK, "list"},
		{"path value", "GET", "/archive/BOE-A-2024-1", http.StatusOK, "find BOE-A-2024-1"},
		{"method routing", "DELETE", "/archive/BOE-A-2024-1", http.StatusOK, "delete"},
		{"method not allowed", "POST", "/status", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body: got %s, want %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/cache",
		Children: []routes.Group{
			{
				Prefix: "/pdf",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{id}", Handler: respond("cached")},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/cache/pdf/BOE-A-2024-1", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("nested route: got %d, want 200", rec.Code)
	}
}

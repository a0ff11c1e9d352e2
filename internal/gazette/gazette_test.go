package gazette_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/boletin/internal/archive"
	"github.com/JaimeStill/boletin/internal/boe"
	"github.com/JaimeStill/boletin/pkg/lifecycle"
	"github.com/JaimeStill/boletin/pkg/pagination"
	"github.com/JaimeStill/boletin/pkg/storage"
)

const (
	docWithPDF = `<?xml version="1.0" encoding="UTF-8"?>
<documento><metadatos><identificador>BOE-A-2024-1</identificador><url_pdf>/boe/dias/2024/01/01/pdfs/BOE-A-2024-1.pdf</url_pdf></metadatos></documento>`
	docWithoutPDF = `<?xml version="1.0" encoding="UTF-8"?><documento><metadatos/></documento>`
	htmlError     = `<!DOCTYPE html><html><head><title>Error</title></head><body>Error</body></html>`
	summaryXML    = `<?xml version="1.0"?><sumario><diario/></sumario>`
	fakePDF       = "%PDF-1.4\nnot really a pdf"
	errorDoc      = `<?xml version="1.0" encoding="UTF-8"?>
<error><descripcion>No existe el documento</descripcion></error>`
)

// upstream simulates the gazette origin.
type upstream struct {
	*httptest.Server
	hits      atomic.Int64
	published atomic.Bool
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /diario_boe/xml.php", func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		if fecha := r.URL.Query().Get("fecha"); fecha != "" {
			if fecha == "20240101" {
				io.WriteString(w, summaryXML)
				return
			}
			io.WriteString(w, htmlError)
			return
		}

		switch r.URL.Query().Get("id") {
		case "BOE-A-2024-1":
			io.WriteString(w, docWithPDF)
		case "BOE-A-2024-3":
			io.WriteString(w, docWithoutPDF)
		case "BOE-A-2024-4":
			io.WriteString(w, `<?xml version="1.0"?><documento><url_pdf>/notpdf.pdf</url_pdf></documento>`)
		case "BOE-A-2024-6":
			if u.published.Load() {
				io.WriteString(w, docWithoutPDF)
				return
			}
			io.WriteString(w, errorDoc)
		case "BOE-A-2024-500":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			io.WriteString(w, htmlError)
		}
	})
	mux.HandleFunc("GET /boe/dias/2024/01/01/pdfs/BOE-A-2024-1.pdf", func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		w.Header().Set("Content-Type", "application/pdf")
		io.WriteString(w, fakePDF)
	})
	mux.HandleFunc("GET /notpdf.pdf", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, htmlError)
	})
	mux.HandleFunc("GET /buscar/doc.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "BOE-A-2024-1" {
			io.WriteString(w, `<html><head><title> Documento  BOE-A-2024-1 </title></head><body>texto</body></html>`)
			return
		}
		io.WriteString(w, `<html><body>Error en la información solicitada</body></html>`)
	})
	mux.HandleFunc("GET /buscar/boe.php", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><head><title>Resultados</title></head><body>`+r.URL.Query().Get("dato[0]")+`</body></html>`)
	})

	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Close)
	return u
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, baseURL string) *boe.Client {
	t.Helper()
	cfg := &boe.Config{BaseURL: baseURL}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return boe.New(cfg, discard())
}

// memArchive is an in-memory archive.System.
type memArchive struct {
	mu      sync.Mutex
	entries map[string]archive.Entry
}

func newMemArchive() *memArchive {
	return &memArchive{entries: make(map[string]archive.Entry)}
}

func (m *memArchive) Handler() *archive.Handler {
	return archive.NewHandler(m, discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (m *memArchive) List(context.Context, pagination.PageRequest) (*pagination.PageResult[archive.Summary], error) {
	return nil, nil
}

func (m *memArchive) Find(_ context.Context, id string) (*archive.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, archive.ErrNotFound
	}
	return &e, nil
}

func (m *memArchive) Save(_ context.Context, id, raw string) (*archive.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := archive.Entry{ID: id, Raw: raw, SizeBytes: int64(len(raw)), ArchivedAt: time.Now()}
	m.entries[id] = e
	return &e, nil
}

func (m *memArchive) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return archive.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// memStore is an in-memory storage.System.
type memStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) Ready() bool                        { return true }
func (m *memStore) Start(*lifecycle.Coordinator) error { return nil }

func (m *memStore) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *memStore) Download(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok, nil
}

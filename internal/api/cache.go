package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/boletin/internal/boe"
	"github.com/JaimeStill/boletin/internal/gazette"
	"github.com/JaimeStill/boletin/pkg/handlers"
	"github.com/JaimeStill/boletin/pkg/routes"
	"github.com/JaimeStill/boletin/pkg/storage"
)

type cacheHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newCacheHandler(store storage.System, logger *slog.Logger) *cacheHandler {
	return &cacheHandler{
		store:  store,
		logger: logger.With("handler", "cache"),
	}
}

func (h *cacheHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/cache/pdf",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.evict},
		},
	}
}

func (h *cacheHandler) find(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !boe.ValidID(id) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, gazette.ErrInvalidID)
		return
	}

	key := gazette.PDFKey(id)
	ok, err := h.store.Exists(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"key":    key,
		"cached": ok,
	})
}

func (h *cacheHandler) evict(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !boe.ValidID(id) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, gazette.ErrInvalidID)
		return
	}

	if err := h.store.Delete(r.Context(), gazette.PDFKey(id)); err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package gazette

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/JaimeStill/boletin/internal/sectors"
	"github.com/JaimeStill/boletin/pkg/handlers"
	"github.com/JaimeStill/boletin/pkg/routes"
)

// StatusMessage is the liveness text returned by /status.
const StatusMessage = "API funcionando correctamente"

const msgNoPDF = "Este documento no tiene PDF disponible."

// messages holds the user-facing text a route answers with on failure.
type messages struct {
	missing  string
	invalid  string
	rejected string
	failed   string
}

var (
	detailsMessages = messages{
		missing:  "Falta el parámetro ?id",
		invalid:  "El parámetro ?id no es un identificador válido.",
		rejected: "El BOE devolvió un error o el ID no existe.",
		failed:   "Error descargando el documento.",
	}
	htmlMessages = messages{
		missing:  "Falta el parámetro ?id",
		invalid:  "El parámetro ?id no es un identificador válido.",
		rejected: "El BOE devolvió un error o el ID no existe.",
		failed:   "Error descargando HTML.",
	}
	pdfMessages = messages{
		missing:  "Falta el parámetro ?id",
		invalid:  "El parámetro ?id no es un identificador válido.",
		rejected: "ID no válido o sin PDF.",
		failed:   "No se pudo descargar el PDF.",
	}
	diarioMessages = messages{
		missing:  "Falta el parámetro ?fecha=YYYYMMDD",
		invalid:  "Falta el parámetro ?fecha=YYYYMMDD",
		rejected: "El BOE no tiene datos para esa fecha o devolvió error.",
		failed:   "Error cargando el BOE de ese día.",
	}
	searchMessages = messages{
		missing:  "Falta el parámetro ?q",
		invalid:  "Falta el parámetro ?q",
		rejected: "El BOE devolvió un error en la búsqueda.",
		failed:   "Error realizando la búsqueda.",
	}
	alertsMessages = messages{
		missing:  "Falta el parámetro ?sector",
		invalid:  "Sector desconocido. Consulte /sectors.",
		rejected: "El BOE devolvió un error en la búsqueda.",
		failed:   "Error realizando la búsqueda.",
	}
	compareMessages = messages{
		missing:  "Faltan parámetros ?id1=&id2=",
		invalid:  "Los parámetros ?id1=&id2= no son identificadores válidos.",
		rejected: "Error comparando documentos.",
		failed:   "Error comparando documentos.",
	}
)

// Handler provides the HTTP endpoints of the gazette proxy.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler over the given system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "gazette"),
	}
}

// Routes returns the route group for the gazette endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/status", Handler: h.Status},
			{Method: "GET", Pattern: "/details", Handler: h.Details},
			{Method: "GET", Pattern: "/html", Handler: h.HTML},
			{Method: "GET", Pattern: "/pdf", Handler: h.PDF},
			{Method: "GET", Pattern: "/pdf/info", Handler: h.PDFInfo},
			{Method: "GET", Pattern: "/diario", Handler: h.Diario},
			{Method: "GET", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/alerts", Handler: h.Alerts},
			{Method: "GET", Pattern: "/sectors", Handler: h.Sectors},
			{Method: "GET", Pattern: "/compare", Handler: h.Compare},
		},
	}
}

// Status reports that the service is up.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"status": StatusMessage,
	})
}

// Details relays the structured XML of one document.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	id, ok := h.param(w, r, "id", detailsMessages)
	if !ok {
		return
	}

	doc, err := h.sys.Details(r.Context(), id)
	if err != nil {
		h.fail(w, err, detailsMessages)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{OK: true, Raw: doc.Raw, Cached: doc.Cached})
}

// HTML relays the public HTML page of one document.
func (h *Handler) HTML(w http.ResponseWriter, r *http.Request) {
	id, ok := h.param(w, r, "id", htmlMessages)
	if !ok {
		return
	}

	page, err := h.sys.Page(r.Context(), id)
	if err != nil {
		h.fail(w, err, htmlMessages)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{OK: true, Raw: page.Raw, Title: page.Title})
}

// PDF relays the official PDF bytes of one document.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := h.param(w, r, "id", pdfMessages)
	if !ok {
		return
	}

	pdf, err := h.sys.PDF(r.Context(), id)
	if err != nil {
		h.fail(w, err, pdfMessages)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf.Data)))
	w.Header().Set("Content-Disposition", `inline; filename="`+pdf.ID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf.Data)
}

// PDFInfo reports size and page count of one document's PDF.
func (h *Handler) PDFInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.param(w, r, "id", pdfMessages)
	if !ok {
		return
	}

	info, err := h.sys.PDFInfo(r.Context(), id)
	if err != nil {
		h.fail(w, err, pdfMessages)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, info)
}

// Diario relays the daily summary XML for a date.
func (h *Handler) Diario(w http.ResponseWriter, r *http.Request) {
	fecha, ok := h.param(w, r, "fecha", diarioMessages)
	if !ok {
		return
	}

	doc, err := h.sys.Summary(r.Context(), fecha)
	if err != nil {
		h.fail(w, err, diarioMessages)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{OK: true, Raw: doc.Raw})
}

// Search relays the gazette's search results for a title query.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q, ok := h.param(w, r, "q", searchMessages)
	if !ok {
		return
	}

	page, err := h.sys.Search(r.Context(), q)
	if err != nil {
		h.fail(w, err, searchMessages)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{OK: true, Raw: page.Raw, Title: page.Title})
}

// Alerts relays the search results registered for a sector.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	sector, ok := h.param(w, r, "sector", alertsMessages)
	if !ok {
		return
	}

	alert, err := h.sys.Alerts(r.Context(), sector)
	if err != nil {
		h.fail(w, err, alertsMessages)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AlertResponse{
		Response: Response{OK: true, Raw: alert.Page.Raw, Title: alert.Page.Title},
		Sector:   alert.Sector,
		Query:    alert.Query,
	})
}

// Sectors lists the sector identifiers accepted by /alerts.
func (h *Handler) Sectors(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"sectors": sectors.All(),
	})
}

// Compare fetches two documents concurrently and relays both.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id1 := strings.TrimSpace(q.Get("id1"))
	id2 := strings.TrimSpace(q.Get("id2"))
	if id1 == "" || id2 == "" {
		h.respondFailure(w, http.StatusBadRequest, Response{Error: compareMessages.missing}, nil)
		return
	}

	result, err := h.sys.Compare(r.Context(), id1, id2)
	if err != nil {
		h.fail(w, err, compareMessages)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) param(w http.ResponseWriter, r *http.Request, name string, msgs messages) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		h.respondFailure(w, http.StatusBadRequest, Response{Error: msgs.missing}, nil)
		return "", false
	}
	return v, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, msgs messages) {
	status := MapHTTPStatus(err)
	resp := Response{Reason: ReasonOf(err)}

	switch {
	case errors.Is(err, ErrNoPDF):
		resp.Error = msgNoPDF
	case status == http.StatusBadRequest:
		resp.Error = msgs.invalid
	case errors.Is(err, ErrRejected):
		resp.Error = msgs.rejected
	default:
		resp.Error = msgs.failed
	}

	h.respondFailure(w, status, resp, err)
}

func (h *Handler) respondFailure(w http.ResponseWriter, status int, resp Response, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("gazette request failed", "status", status, "error", err)
	} else if err != nil {
		h.logger.Debug("gazette request rejected", "status", status, "error", err)
	}
	resp.OK = false
	handlers.RespondJSON(w, status, resp)
}

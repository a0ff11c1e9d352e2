package api

import (
	"net/http"

	"github.com/JaimeStill/boletin/internal/config"
	"github.com/JaimeStill/boletin/pkg/openapi"
)

const idPattern = "^[A-Za-z0-9-]{1,64}$"

func idQuery(name string) *openapi.Parameter {
	p := openapi.QueryParam(name, "string", "Gazette document identifier, e.g. BOE-A-2024-1", true)
	p.Schema.Pattern = idPattern
	return p
}

func envelopeOp(summary, tag string, params ...*openapi.Parameter) *openapi.Operation {
	return &openapi.Operation{
		Summary:    summary,
		Tags:       []string{tag},
		Parameters: params,
		Responses: map[int]*openapi.Response{
			http.StatusOK:         openapi.ResponseJSON("Validated upstream payload", "Envelope"),
			http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			http.StatusBadGateway: openapi.ResponseRef("BadGateway"),
		},
	}
}

// NewSpec builds the OpenAPI document for the routes the API module serves.
func NewSpec(cfg *config.Config, domain *Domain, runtime *Runtime) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"PDFInfo": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string"},
				"url":        {Type: "string", Format: "uri"},
				"size_bytes": {Type: "integer"},
				"size":       {Type: "string", Example: "245.3 KB"},
				"page_count": {Type: "integer", Description: "Null when the PDF cannot be parsed"},
				"cached":     {Type: "boolean"},
			},
		},
		"Comparison": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"compare": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"id1": {Type: "string"},
						"id2": {Type: "string"},
					},
				},
				"doc1": openapi.SchemaRef("Envelope"),
				"doc2": openapi.SchemaRef("Envelope"),
			},
		},
		"Sector": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":    {Type: "string"},
				"query": {Type: "string"},
			},
		},
	})

	tag := "gazette"
	spec.Paths["/status"] = &openapi.PathItem{Get: &openapi.Operation{
		Summary:   "Liveness message",
		Tags:      []string{tag},
		Responses: map[int]*openapi.Response{http.StatusOK: {Description: "Service is running"}},
	}}
	spec.Paths["/details"] = &openapi.PathItem{Get: envelopeOp("Document XML by identifier", tag, idQuery("id"))}
	spec.Paths["/html"] = &openapi.PathItem{Get: envelopeOp("Document HTML page by identifier", tag, idQuery("id"))}
	spec.Paths["/diario"] = &openapi.PathItem{Get: envelopeOp(
		"Daily summary XML", tag,
		openapi.QueryParam("fecha", "string", "Publication date as YYYYMMDD", true),
	)}
	spec.Paths["/search"] = &openapi.PathItem{Get: envelopeOp(
		"Title search results page", tag,
		openapi.QueryParam("q", "string", "Search text", true),
	)}
	spec.Paths["/alerts"] = &openapi.PathItem{Get: envelopeOp(
		"Search results for a predefined sector", tag,
		openapi.QueryParam("sector", "string", "Sector identifier, see /sectors", true),
	)}
	spec.Paths["/sectors"] = &openapi.PathItem{Get: &openapi.Operation{
		Summary: "Sector identifiers accepted by /alerts",
		Tags:    []string{tag},
		Responses: map[int]*openapi.Response{
			http.StatusOK: {Description: "Sector list", Content: map[string]*openapi.MediaType{
				"application/json": {Schema: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"ok":      {Type: "boolean"},
						"sectors": {Type: "array", Items: openapi.SchemaRef("Sector")},
					},
				}},
			}},
		},
	}}

	pdf := envelopeOp("Official PDF of a document", tag, idQuery("id"))
	pdf.Responses[http.StatusOK] = openapi.ResponseBinary("PDF bytes", "application/pdf")
	pdf.Responses[http.StatusNotFound] = openapi.ResponseRef("NotFound")
	spec.Paths["/pdf"] = &openapi.PathItem{Get: pdf}

	info := envelopeOp("Size and page count of a document's PDF", tag, idQuery("id"))
	info.Responses[http.StatusOK] = openapi.ResponseJSON("PDF metadata", "PDFInfo")
	info.Responses[http.StatusNotFound] = openapi.ResponseRef("NotFound")
	spec.Paths["/pdf/info"] = &openapi.PathItem{Get: info}

	cmp := envelopeOp("Fetch and validate two documents in parallel", tag, idQuery("id1"), idQuery("id2"))
	cmp.Responses[http.StatusOK] = openapi.ResponseJSON("Both documents", "Comparison")
	spec.Paths["/compare"] = &openapi.PathItem{Get: cmp}

	if domain.Archive != nil || runtime.Storage != nil {
		addBackendComponents(spec)
	}
	if domain.Archive != nil {
		addArchivePaths(spec)
	}
	if runtime.Storage != nil {
		addCachePaths(spec)
	}

	return spec
}

// addBackendComponents describes the failures of the optional database and
// blob storage routes.
func addBackendComponents(spec *openapi.Spec) {
	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Error": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error": {Type: "string"},
			},
		},
	})
	spec.Components.AddResponses(map[string]*openapi.Response{
		"InternalError": openapi.ResponseJSON("Archive database or blob storage failure", "Error"),
	})
}

func addArchivePaths(spec *openapi.Spec) {
	tag := "archive"
	idParam := openapi.PathParam("id", "Archived document identifier", idPattern)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"ArchiveEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string"},
				"raw":         {Type: "string"},
				"size_bytes":  {Type: "integer"},
				"archived_at": {Type: "string", Format: "date-time"},
			},
		},
	})

	spec.Paths["/archive"] = &openapi.PathItem{Get: &openapi.Operation{
		Summary: "List archived documents",
		Tags:    []string{tag},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Identifier substring", false),
			openapi.QueryParam("sort", "string", "Comma-separated fields (id, sizeBytes, archivedAt); prefix with - to sort descending", false),
		},
		Responses: map[int]*openapi.Response{
			http.StatusOK:                  {Description: "Page of archived documents"},
			http.StatusInternalServerError: openapi.ResponseRef("InternalError"),
		},
	}}
	spec.Paths["/archive/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find an archived document",
			Tags:       []string{tag},
			Parameters: []*openapi.Parameter{idParam},
			Responses: map[int]*openapi.Response{
				http.StatusOK:                  openapi.ResponseJSON("Archived document", "ArchiveEntry"),
				http.StatusBadRequest:          openapi.ResponseRef("BadRequest"),
				http.StatusNotFound:            openapi.ResponseRef("NotFound"),
				http.StatusInternalServerError: openapi.ResponseRef("InternalError"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Evict an archived document",
			Tags:       []string{tag},
			Parameters: []*openapi.Parameter{idParam},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent:           {Description: "Evicted"},
				http.StatusBadRequest:          openapi.ResponseRef("BadRequest"),
				http.StatusNotFound:            openapi.ResponseRef("NotFound"),
				http.StatusInternalServerError: openapi.ResponseRef("InternalError"),
			},
		},
	}
}

func addCachePaths(spec *openapi.Spec) {
	tag := "cache"
	idParam := openapi.PathParam("id", "Document identifier", idPattern)

	spec.Paths["/cache/pdf/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Report whether a document's PDF is cached",
			Tags:       []string{tag},
			Parameters: []*openapi.Parameter{idParam},
			Responses: map[int]*openapi.Response{
				http.StatusOK:                  {Description: "Cache state"},
				http.StatusBadRequest:          openapi.ResponseRef("BadRequest"),
				http.StatusInternalServerError: openapi.ResponseRef("InternalError"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Evict a cached PDF",
			Tags:       []string{tag},
			Parameters: []*openapi.Parameter{idParam},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent:           {Description: "Evicted"},
				http.StatusBadRequest:          openapi.ResponseRef("BadRequest"),
				http.StatusNotFound:            openapi.ResponseRef("NotFound"),
				http.StatusInternalServerError: openapi.ResponseRef("InternalError"),
			},
		},
	}
}

package openapi

import "maps"

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Envelope")},
		},
	}
}

// NewComponents creates Components with the shared envelope, pagination
// schemas, and error responses.
func NewComponents() *Components {
	one := 1.0
	return &Components{
		Schemas: map[string]*Schema{
			"Envelope": {
				Type:     "object",
				Required: []string{"ok"},
				Properties: map[string]*Schema{
					"ok":     {Type: "boolean", Description: "Whether the upstream payload passed validation"},
					"raw":    {Type: "string", Description: "Upstream payload, relayed verbatim"},
					"title":  {Type: "string", Description: "Page title, for HTML routes"},
					"cached": {Type: "boolean", Description: "Served from the local archive or PDF cache"},
					"reason": {
						Type:        "string",
						Description: "Machine-readable rejection reason",
						Enum:        []any{"EMPTY", "UPSTREAM_HTML_ERROR", "UPSTREAM_ERROR_PHRASE", "UNRECOGNIZED"},
					},
					"error": {Type: "string", Description: "Human-readable error message"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1, Minimum: &one},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20, Minimum: &one},
					"search":    {Type: "string", Description: "Search query"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": errorResponse("Missing or malformed parameter"),
			"NotFound":   errorResponse("Resource not found"),
			"BadGateway": errorResponse("Upstream returned an invalid payload or could not be reached"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

package gazette

import "context"

// System defines the gazette proxy operations.
type System interface {
	Handler() *Handler

	// Details fetches the structured XML of one document, consulting the
	// archive first when one is configured.
	Details(ctx context.Context, id string) (*Document, error)
	// Summary fetches the daily summary XML for fecha (YYYYMMDD).
	Summary(ctx context.Context, fecha string) (*Document, error)
	// Page fetches the public HTML page of one document.
	Page(ctx context.Context, id string) (*Page, error)
	// Search runs a title search against the gazette's search page.
	Search(ctx context.Context, query string) (*Page, error)
	// Alerts runs the search query registered for a sector.
	Alerts(ctx context.Context, sector string) (*Alert, error)
	// Compare fetches two documents concurrently and classifies each.
	Compare(ctx context.Context, id1, id2 string) (*Comparison, error)
	// PDF resolves and downloads the official PDF of one document.
	PDF(ctx context.Context, id string) (*PDF, error)
	// PDFInfo reports size and page count of one document's PDF.
	PDFInfo(ctx context.Context, id string) (*PDFInfo, error)
}

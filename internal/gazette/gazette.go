// Package gazette implements the BOE proxy domain: fetching documents, daily
// summaries, pages, searches, and PDFs from the gazette, classifying what the
// upstream returned, and relaying the result in a uniform JSON envelope.
package gazette

import (
	"time"

	"github.com/JaimeStill/boletin/internal/classify"
)

// PDFTag is the document element that holds the PDF path relative to the origin.
const PDFTag = "url_pdf"

// Document is a structured XML payload that passed classification.
type Document struct {
	URL       string
	Raw       string
	Cached    bool
	FetchedAt time.Time
}

// Page is an HTML payload that passed the page check.
type Page struct {
	URL   string
	Raw   string
	Title string
}

// Alert is a sector search result.
type Alert struct {
	Sector string
	Query  string
	Page   *Page
}

// PDF holds the bytes of a document's official PDF.
type PDF struct {
	ID     string
	URL    string
	Data   []byte
	Cached bool
}

// PDFInfo describes a document's PDF without relaying it.
type PDFInfo struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
	Size      string `json:"size"`
	PageCount *int   `json:"page_count"`
	Cached    bool   `json:"cached"`
}

// Response is the JSON envelope every gazette route answers with.
type Response struct {
	OK     bool            `json:"ok"`
	Raw    string          `json:"raw,omitempty"`
	Title  string          `json:"title,omitempty"`
	Cached bool            `json:"cached,omitempty"`
	Reason classify.Reason `json:"reason,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// AlertResponse extends Response with the sector that was searched.
type AlertResponse struct {
	Response
	Sector string `json:"sector"`
	Query  string `json:"query"`
}

// ComparePair echoes the identifiers being compared.
type ComparePair struct {
	ID1 string `json:"id1"`
	ID2 string `json:"id2"`
}

// Comparison pairs two independently classified documents positionally.
type Comparison struct {
	Compare ComparePair `json:"compare"`
	Doc1    Response    `json:"doc1"`
	Doc2    Response    `json:"doc2"`
}

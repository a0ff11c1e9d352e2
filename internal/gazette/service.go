package gazette

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/boletin/internal/archive"
	"github.com/JaimeStill/boletin/internal/boe"
	"github.com/JaimeStill/boletin/internal/classify"
	"github.com/JaimeStill/boletin/internal/sectors"
	"github.com/JaimeStill/boletin/pkg/formatting"
	"github.com/JaimeStill/boletin/pkg/storage"
)

var pdfMagic = []byte("%PDF-")

type service struct {
	client  *boe.Client
	archive archive.System
	store   storage.System
	logger  *slog.Logger
}

// New creates the gazette system. archive and store may be nil, in which
// case documents and PDFs are always fetched from upstream.
func New(client *boe.Client, arch archive.System, store storage.System, logger *slog.Logger) System {
	return &service{
		client:  client,
		archive: arch,
		store:   store,
		logger:  logger.With("system", "gazette"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Details(ctx context.Context, id string) (*Document, error) {
	if !boe.ValidID(id) {
		return nil, ErrInvalidID
	}

	if doc := s.fromArchive(ctx, id); doc != nil {
		return doc, nil
	}

	doc, err := s.fetchDocument(ctx, s.client.DocumentURL(id))
	if err != nil {
		return nil, err
	}

	s.toArchive(ctx, id, doc.Raw)
	return doc, nil
}

func (s *service) Summary(ctx context.Context, fecha string) (*Document, error) {
	if _, err := boe.ParseDate(fecha); err != nil {
		return nil, ErrInvalidDate
	}
	return s.fetchDocument(ctx, s.client.SummaryURL(fecha))
}

func (s *service) Page(ctx context.Context, id string) (*Page, error) {
	if !boe.ValidID(id) {
		return nil, ErrInvalidID
	}
	return s.fetchPage(ctx, s.client.PageURL(id))
}

func (s *service) Search(ctx context.Context, query string) (*Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingQuery
	}
	return s.fetchPage(ctx, s.client.SearchURL(query))
}

func (s *service) Alerts(ctx context.Context, sector string) (*Alert, error) {
	query, err := sectors.Lookup(sector)
	if err != nil {
		return nil, err
	}

	page, err := s.fetchPage(ctx, s.client.SearchURL(query))
	if err != nil {
		return nil, err
	}

	return &Alert{
		Sector: strings.ToLower(strings.TrimSpace(sector)),
		Query:  query,
		Page:   page,
	}, nil
}

func (s *service) Compare(ctx context.Context, id1, id2 string) (*Comparison, error) {
	if !boe.ValidID(id1) || !boe.ValidID(id2) {
		return nil, ErrInvalidID
	}

	result := &Comparison{Compare: ComparePair{ID1: id1, ID2: id2}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.compareOne(gctx, id1)
		result.Doc1 = resp
		return err
	})
	g.Go(func() error {
		resp, err := s.compareOne(gctx, id2)
		result.Doc2 = resp
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// compareOne folds a rejection into the response; transport failures abort
// the whole comparison.
func (s *service) compareOne(ctx context.Context, id string) (Response, error) {
	doc, err := s.Details(ctx, id)
	if err != nil {
		if reason := ReasonOf(err); reason != "" {
			return Response{OK: false, Reason: reason, Error: detailsMessages.rejected}, nil
		}
		return Response{}, err
	}
	return Response{OK: true, Raw: doc.Raw, Cached: doc.Cached}, nil
}

func (s *service) PDF(ctx context.Context, id string) (*PDF, error) {
	if !boe.ValidID(id) {
		return nil, ErrInvalidID
	}

	doc, err := s.Details(ctx, id)
	if err != nil {
		return nil, err
	}

	ref, ok := classify.ExtractReference(doc.Raw, PDFTag)
	if !ok {
		return nil, ErrNoPDF
	}
	target := s.client.ResolveURL(ref)

	if data := s.fromStore(ctx, id); data != nil {
		return &PDF{ID: id, URL: target, Data: data, Cached: true}, nil
	}

	resp, err := s.client.Fetch(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if !bytes.HasPrefix(resp.Body, pdfMagic) {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, target)
	}

	s.toStore(ctx, id, resp.Body)
	return &PDF{ID: id, URL: target, Data: resp.Body}, nil
}

func (s *service) PDFInfo(ctx context.Context, id string) (*PDFInfo, error) {
	pdf, err := s.PDF(ctx, id)
	if err != nil {
		return nil, err
	}

	size := int64(len(pdf.Data))
	info := &PDFInfo{
		ID:        pdf.ID,
		URL:       pdf.URL,
		SizeBytes: size,
		Size:      formatting.FormatBytes(size, 1),
		Cached:    pdf.Cached,
	}

	count, err := api.PageCount(bytes.NewReader(pdf.Data), nil)
	if err != nil {
		s.logger.Warn("pdf page count failed", "id", id, "error", err)
		return info, nil
	}
	info.PageCount = &count

	return info, nil
}

func (s *service) fetchDocument(ctx context.Context, target string) (*Document, error) {
	resp, err := s.client.Fetch(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	result := classify.Classify(resp.Text())
	if !result.Valid() {
		s.logger.Info("upstream document rejected", "url", target, "reason", result.Reason())
		return nil, rejected(result)
	}

	return &Document{
		URL:       target,
		Raw:       result.Content(),
		FetchedAt: resp.FetchedAt,
	}, nil
}

func (s *service) fetchPage(ctx context.Context, target string) (*Page, error) {
	resp, err := s.client.Fetch(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	result := classify.ClassifyPage(resp.Text())
	if !result.Valid() {
		s.logger.Info("upstream page rejected", "url", target, "reason", result.Reason())
		return nil, rejected(result)
	}

	return &Page{
		URL:   target,
		Raw:   result.Content(),
		Title: boe.PageTitle(result.Content()),
	}, nil
}

func (s *service) fromArchive(ctx context.Context, id string) *Document {
	if s.archive == nil {
		return nil
	}

	entry, err := s.archive.Find(ctx, id)
	if err != nil {
		if !errors.Is(err, archive.ErrNotFound) {
			s.logger.Warn("archive lookup failed", "id", id, "error", err)
		}
		return nil
	}

	return &Document{
		URL:       s.client.DocumentURL(id),
		Raw:       entry.Raw,
		Cached:    true,
		FetchedAt: entry.ArchivedAt,
	}
}

// toArchive stores published documents only. Error envelopes answer for ids
// that may be published later.
func (s *service) toArchive(ctx context.Context, id, raw string) {
	if s.archive == nil || classify.IsErrorDocument(raw) {
		return
	}
	if _, err := s.archive.Save(ctx, id, raw); err != nil {
		s.logger.Warn("archive save failed", "id", id, "error", err)
	}
}

// PDFKey returns the storage key under which a document's PDF is cached.
func PDFKey(id string) string {
	return "pdfs/" + id + ".pdf"
}

func (s *service) fromStore(ctx context.Context, id string) []byte {
	if s.store == nil {
		return nil
	}

	rc, err := s.store.Download(ctx, PDFKey(id))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("pdf cache lookup failed", "id", id, "error", err)
		}
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil || !bytes.HasPrefix(data, pdfMagic) {
		s.logger.Warn("pdf cache read failed", "id", id, "error", err)
		return nil
	}
	return data
}

func (s *service) toStore(ctx context.Context, id string, data []byte) {
	if s.store == nil {
		return
	}
	err := s.store.Upload(ctx, PDFKey(id), bytes.NewReader(data), "application/pdf")
	if err != nil {
		s.logger.Warn("pdf cache upload failed", "id", id, "error", err)
	}
}

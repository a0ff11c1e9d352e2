package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/boletin/pkg/pagination"
	"github.com/JaimeStill/boletin/pkg/query"
	"github.com/JaimeStill/boletin/pkg/repository"
)

const columns = "id, raw, size_bytes, archived_at"

var projection = query.NewProjection("documents", "d").
	Field("id", "id").
	Field("raw", "raw").
	Field("size_bytes", "sizeBytes").
	Field("archived_at", "archivedAt")

var summaryFields = []string{"id", "sizeBytes", "archivedAt"}

var defaultSort = []query.SortField{
	{Field: "archivedAt", Descending: true},
	{Field: "id"},
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an archive repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "archive"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Summary], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "id").
		OrderBy(query.ParseSort(page.Sort))

	var total int
	countSQL, countArgs := qb.Count()
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count archived documents: %w", err)
	}

	pageSQL, pageArgs := qb.Page(page.Page, page.PageSize, summaryFields...)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query archived documents: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Entry, error) {
	q, args := query.NewBuilder(projection).WhereEquals("id", id).Select()

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}
	return &e, nil
}

func (r *repo) Save(ctx context.Context, id, raw string) (*Entry, error) {
	q := `
		INSERT INTO documents (id, raw, size_bytes)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET raw = EXCLUDED.raw, size_bytes = EXCLUDED.size_bytes, archived_at = now()
		RETURNING ` + columns

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, raw, int64(len(raw))}, scanEntry)
	})
	if err != nil {
		return nil, fmt.Errorf("archive document %s: %w", id, err)
	}

	r.logger.Info("document archived", "id", e.ID, "size_bytes", e.SizeBytes)
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM documents WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound)
	}

	r.logger.Info("archived document deleted", "id", id)
	return nil
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(&e.ID, &e.Raw, &e.SizeBytes, &e.ArchivedAt)
	return e, err
}

func scanSummary(s repository.Scanner) (Summary, error) {
	var sm Summary
	err := s.Scan(&sm.ID, &sm.SizeBytes, &sm.ArchivedAt)
	return sm, err
}

package archive

import (
	"context"

	"github.com/JaimeStill/boletin/pkg/pagination"
)

// System defines the public contract for the document archive.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Summary], error)
	Find(ctx context.Context, id string) (*Entry, error)
	Save(ctx context.Context, id, raw string) (*Entry, error)
	Delete(ctx context.Context, id string) error
}

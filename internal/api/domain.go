package api

import (
	"github.com/JaimeStill/boletin/internal/archive"
	"github.com/JaimeStill/boletin/internal/gazette"
)

// Domain holds all domain systems that comprise the API.
// Archive is nil when the database is disabled.
type Domain struct {
	Gazette gazette.System
	Archive archive.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	var arch archive.System
	if runtime.Database != nil {
		arch = archive.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		)
	}

	gazetteSystem := gazette.New(
		runtime.Upstream,
		arch,
		runtime.Storage,
		runtime.Logger,
	)

	return &Domain{
		Gazette: gazetteSystem,
		Archive: arch,
	}
}

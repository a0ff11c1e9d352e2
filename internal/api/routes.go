package api

import (
	"net/http"

	"github.com/JaimeStill/boletin/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	groups := []routes.Group{domain.Gazette.Handler().Routes()}

	if domain.Archive != nil {
		groups = append(groups, domain.Archive.Handler().Routes())
	}
	if runtime.Storage != nil {
		groups = append(groups, newCacheHandler(runtime.Storage, runtime.Logger).routes())
	}

	routes.Register(mux, groups...)
}

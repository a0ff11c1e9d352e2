package main

import (
	"net/http"

	"github.com/JaimeStill/boletin/internal/api"
	"github.com/JaimeStill/boletin/internal/config"
	"github.com/JaimeStill/boletin/internal/infrastructure"
	"github.com/JaimeStill/boletin/pkg/handlers"
	"github.com/JaimeStill/boletin/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()
	base := cfg.API.BasePath

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"message": "API BOE ONLINE",
			"version": cfg.Version,
			"endpoints": []string{
				base + "/status",
				base + "/details?id=",
				base + "/html?id=",
				base + "/pdf?id=",
				base + "/pdf/info?id=",
				base + "/diario?fecha=",
				base + "/search?q=",
				base + "/alerts?sector=",
				base + "/sectors",
				base + "/compare?id1=&id2=",
				base + "/openapi.json",
			},
		})
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":    "not ready",
				"not_ready": infra.Lifecycle.NotReady(),
			})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return router
}

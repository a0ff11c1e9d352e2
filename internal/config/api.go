package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/boletin/pkg/middleware"
	"github.com/JaimeStill/boletin/pkg/openapi"
	"github.com/JaimeStill/boletin/pkg/pagination"
)

const EnvAPIBasePath = "BOLETIN_API_BASE_PATH"

var corsEnv = &middleware.CORSEnv{
	Enabled:          "BOLETIN_CORS_ENABLED",
	Origins:          "BOLETIN_CORS_ORIGINS",
	AllowedMethods:   "BOLETIN_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "BOLETIN_CORS_ALLOWED_HEADERS",
	AllowCredentials: "BOLETIN_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "BOLETIN_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "BOLETIN_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "BOLETIN_PAGINATION_MAX_PAGE_SIZE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "BOLETIN_OPENAPI_TITLE",
	Description: "BOLETIN_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
}

// base_path follows the module prefix rules.
func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 || len(c.BasePath) < 2 {
		return fmt.Errorf("invalid base_path %q: must be a single-level path such as /api", c.BasePath)
	}
	return nil
}

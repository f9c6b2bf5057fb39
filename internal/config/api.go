package config

import (
	"fmt"
	"os"

	"github.com/aurora-platform/justice/pkg/middleware"
	"github.com/aurora-platform/justice/pkg/openapi"
	"github.com/aurora-platform/justice/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "JUSTICE_CORS_ENABLED",
	Origins:          "JUSTICE_CORS_ORIGINS",
	AllowedMethods:   "JUSTICE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "JUSTICE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "JUSTICE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "JUSTICE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "JUSTICE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "JUSTICE_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "JUSTICE_OPENAPI_TITLE",
	Description: "JUSTICE_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and docs settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested sub-configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
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
		c.BasePath = "/justice"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("JUSTICE_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
}

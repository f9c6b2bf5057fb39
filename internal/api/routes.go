package api

import (
	"net/http"

	"github.com/aurora-platform/justice/internal/config"
	"github.com/aurora-platform/justice/pkg/handlers"
	"github.com/aurora-platform/justice/pkg/openapi"
	"github.com/aurora-platform/justice/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Policies.Handler().Routes(),
		domain.Ledger.Handler().Routes(),
		domain.Violations.Handler().Routes(),
		domain.Moderation.Handler().Routes(),
		domain.Enforcement.Handler().Routes(),
		domain.CaseFiles.Handler().Routes(),
	)

	spec := buildSpec(cfg)
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		runtime.Logger.Error("openapi spec marshal failed", "error", err)
		mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
			handlers.RespondError(w, runtime.Logger, http.StatusInternalServerError, err)
		})
		return
	}

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
}

package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VanshTheJudged/mcp-server/internal/api/common"
	"github.com/VanshTheJudged/mcp-server/internal/service"
	"github.com/VanshTheJudged/mcp-server/internal/versions"
)

// HealthRouter creates the router for operational endpoints that live
// outside the versioned API prefix.
func HealthRouter(svc service.CompanyService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/readiness", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			common.WriteErrorResponse(w, "Service not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSONResponse(w, versions.GetVersionInfo(), http.StatusOK)
	})

	return r
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"garage/internal/http/handlers"
	"garage/internal/infra"
	"garage/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(logger),
		chimw.Recoverer,
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

		r.Post("/v1/entities", app.CreateEntity)
		r.Route("/v1/entities/{entityID}", func(r chi.Router) {
			r.Get("/", app.GetEntity)
			r.Post("/jobs", app.CreateJob)
			r.Get("/jobs", app.ListJobs)
			r.Post("/references/{kind}", app.ReserveReference)
			r.Post("/nominal-codes/assign", app.AssignNominalCodes)
			r.Post("/nominal-codes/export.csv", app.ExportNominalCodes)
		})

		r.Route("/v1/jobs/{jobID}", func(r chi.Router) {
			r.Get("/", app.GetJob)
			r.Post("/reschedule", app.RescheduleJob)
			r.Post("/invoice", app.InvoiceJob)
			r.Post("/close", app.CloseJob)
			r.Post("/segments/{segmentID}/allocate", app.AllocateSegment)
			r.Post("/segments/{segmentID}/status", app.TransitionSegment)
		})

		r.Post("/v1/segments/preview", app.PreviewSegments)
	})

	return r
}

package routes

import (
	"github.com/Danthemainman1/debate-scheduler/handlers"
	"github.com/Danthemainman1/debate-scheduler/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes mounts every API route on the router. Reads are public;
// anything that mutates a tournament requires authentication.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	venueHandler *handlers.VenueHandler,
	scheduleHandler *handlers.ScheduleHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", tournamentHandler.List)
			r.Post("/", tournamentHandler.Create)
		})

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByID)
			r.Get("/schedule", scheduleHandler.GetFull)
			r.Get("/conflicts", scheduleHandler.Conflicts)
			r.Get("/standings", scheduleHandler.Standings)
			r.Get("/teams", teamHandler.List)
			r.Get("/venues", venueHandler.List)
			r.Get("/export", scheduleHandler.Export)
			r.Get("/export/printable", scheduleHandler.ExportPrintable)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Delete("/", tournamentHandler.Delete)

				r.Post("/teams", teamHandler.Add)
				r.Patch("/teams/{teamID}", teamHandler.Update)
				r.Delete("/teams/{teamID}", teamHandler.Remove)

				r.Post("/venues", venueHandler.Add)
				r.Patch("/venues/{venueID}", venueHandler.Update)
				r.Delete("/venues/{venueID}", venueHandler.Remove)

				r.Post("/schedule/generate", scheduleHandler.Generate)
				r.Post("/schedule/shuffle", scheduleHandler.Shuffle)
				r.Post("/schedule/venues", scheduleHandler.AssignVenues)
				r.Post("/schedule/times", scheduleHandler.AssignTimes)

				r.Patch("/rounds/{roundNumber}", scheduleHandler.UpdateRound)
				r.Patch("/matches/{matchID}", scheduleHandler.UpdateMatch)
				r.Post("/matches/{matchID}/result", scheduleHandler.RecordResult)

				r.Post("/export/publish", scheduleHandler.Publish)
				r.Post("/import", scheduleHandler.Import)
			})
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Get("/swagger/doc.json", handlers.ServeOpenAPIDoc)
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

package routes

import (
	"github.com/Dosada05/matchday-system/handlers"
	"github.com/Dosada05/matchday-system/middleware"
	"github.com/Dosada05/matchday-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	matchHandler *handlers.MatchHandler,
	rosterHandler *handlers.RosterHandler,
	eventHandler *handlers.EventHandler,
	paymentHandler *handlers.PaymentHandler,
	teamHandler *handlers.TeamHandler,
	notificationHandler *handlers.NotificationHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Slot grid is public. A bearer token is honoured when present so the
	// viewer's own open_for_team slots resolve correctly.
	router.With(auth.Optional).Get("/pitches/{pitchID}/availability", availabilityHandler.ResolveDay)

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetMatch)
		r.Get("/{matchID}/roster", rosterHandler.GetRoster)
		r.Get("/{matchID}/events", eventHandler.ListEvents)
		r.Get("/{matchID}/scoreboard", eventHandler.GetScoreboard)
		r.Get("/{matchID}/mvp", eventHandler.GetMVPStanding)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Post("/", matchHandler.ConfirmBooking)
			r.Post("/{matchID}/start", matchHandler.StartMatch)
			r.Post("/{matchID}/finalize", matchHandler.FinalizeMatch)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)

			r.Post("/{matchID}/applications", rosterHandler.Apply)
			r.Post("/{matchID}/applications/{playerID}/respond", rosterHandler.RespondApplication)
			r.Delete("/{matchID}/roster/{playerID}", rosterHandler.RemovePlayer)

			// The team intake channels are manager-only by definition.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authorize(models.RoleManager))

				r.Post("/{matchID}/invitations", rosterHandler.InvitePlayer)
				r.Post("/{matchID}/challenges", rosterHandler.Challenge)
			})

			r.Post("/{matchID}/events", eventHandler.RecordEvent)
			r.Post("/{matchID}/mvp-votes", eventHandler.VoteMVP)

			r.Post("/{matchID}/split", paymentHandler.InitiateSplit)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Post("/invitations/{invitationID}/respond", rosterHandler.RespondInvitation)
		r.Post("/challenges/{challengeID}/respond", rosterHandler.RespondChallenge)

		r.Post("/payments/{paymentID}/pay", paymentHandler.PayOwn)
		r.Get("/reservations/{reservationID}/payments", paymentHandler.ListByReservation)
		r.Get("/reservations/{reservationID}/payments/mine", paymentHandler.GetOwnShare)

		r.Get("/notifications", notificationHandler.ListInbox)
		r.Post("/notifications/{notificationID}/read", notificationHandler.MarkRead)

		r.Get("/ws/inbox", webSocketHandler.ServeInbox)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetTeam)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Post("/", teamHandler.CreateTeam)
			r.Post("/{teamID}/members", teamHandler.AddMember)
			r.Post("/{teamID}/badge", teamHandler.UploadBadge)
		})
	})

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeMatch)
}

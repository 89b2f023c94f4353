package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
)

// Handlers groups everything MapHttpRoutes mounts.
type Handlers struct {
	Auth          *AuthMiddleware
	Health        *HealthHandler
	Users         *UserHandler
	Chat          *ChatHandler
	Announcements *AnnouncementHandler
	LostFound     *LostFoundHandler
	Feedback      *FeedbackHandler
	Mood          *MoodHandler
	Status        *StatusHandler
	Badges        *BadgeHandler
	WebSocket     http.Handler
	Metrics       http.Handler
}

func MapHttpRoutes(r chi.Router, h Handlers) {
	r.Get("/health", h.Health.Health)
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}
	// The gateway authenticates during the handshake itself.
	r.Handle("/ws", h.WebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Use(h.Auth.Authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.Users.Index)
			r.Get("/me", h.Users.Me)
			r.Put("/me", h.Users.UpdateMe)
			r.Get("/online", h.Users.Online)
			r.Get("/{id}", h.Users.Get)
			r.Get("/{id}/activity", h.Users.Activity)

			r.Group(func(r chi.Router) {
				r.Use(h.Auth.RequireRoles(entity.RoleAdmin))
				r.Put("/{id}/role", h.Users.UpdateRole)
				r.Post("/{id}/revoke", h.Users.Revoke)
			})
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/messages", h.Chat.Index)
			r.Post("/messages", h.Chat.Send)
			r.Get("/messages/{id}", h.Chat.Get)
			r.Put("/messages/{id}", h.Chat.Edit)
			r.Delete("/messages/{id}", h.Chat.Delete)
			r.Post("/messages/{id}/reactions", h.Chat.React)
			r.Get("/summary", h.Chat.Summary)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", h.Announcements.Index)
			r.Get("/{id}", h.Announcements.Get)
			r.Put("/{id}", h.Announcements.Update)
			r.Delete("/{id}", h.Announcements.Delete)
			r.Post("/{id}/like", h.Announcements.Like)
			r.With(h.Auth.RequireRoles(entity.RoleAdmin, entity.RoleSocietyHead)).Post("/", h.Announcements.Create)
		})

		r.Route("/lost-found", func(r chi.Router) {
			r.Get("/", h.LostFound.Index)
			r.Post("/", h.LostFound.Create)
			r.Get("/{id}", h.LostFound.Get)
			r.Put("/{id}", h.LostFound.Update)
			r.Delete("/{id}", h.LostFound.Delete)
			r.Post("/{id}/return", h.LostFound.MarkReturned)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Get("/", h.Feedback.Index)
			r.Post("/", h.Feedback.Create)
			r.Get("/mine", h.Feedback.Mine)
			r.Get("/{id}", h.Feedback.Get)
			r.Post("/{id}/vote", h.Feedback.Vote)

			r.Group(func(r chi.Router) {
				r.Use(h.Auth.RequireRoles(entity.RoleAdmin))
				r.Put("/{id}/status", h.Feedback.UpdateStatus)
				r.Delete("/{id}", h.Feedback.Delete)
			})
		})

		r.Route("/mood", func(r chi.Router) {
			r.Get("/", h.Mood.Index)
			r.Post("/", h.Mood.Create)
			r.Get("/tips", h.Mood.Tips)
			r.Get("/stats", h.Mood.Stats)
			r.Put("/{id}/feedback", h.Mood.Feedback)
		})

		r.Route("/status", func(r chi.Router) {
			r.Get("/", h.Status.Index)
			r.Post("/", h.Status.Upsert)
			r.Get("/search", h.Status.Search)
			r.Get("/keywords/popular", h.Status.PopularKeywords)
			r.Get("/{id}", h.Status.Get)
			r.Put("/{id}", h.Status.Update)
			r.With(h.Auth.RequireRoles(entity.RoleAdmin)).Delete("/{id}", h.Status.Delete)
		})

		r.Route("/badges", func(r chi.Router) {
			r.Get("/", h.Badges.Catalog)
			r.Get("/user/{userId}", h.Badges.UserBadges)
			r.Post("/check-automatic", h.Badges.CheckAutomatic)
			r.With(h.Auth.RequireRoles(entity.RoleAdmin)).Post("/", h.Badges.Create)
			r.With(h.Auth.RequireRoles(entity.RoleAdmin, entity.RoleSocietyHead)).Post("/award", h.Badges.Award)
		})
	})
}

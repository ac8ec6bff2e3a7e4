package router

import (
	"net/http"

	"rps-backend/app/controllers"
	"rps-backend/app/middleware"
	"rps-backend/app/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(
	httpCtrl *controllers.HTTPController,
	authCtrl *controllers.AuthController,
	adminCtrl *controllers.AdminController,
	spotifyCtrl *controllers.SpotifyController,
	chatCtrl *controllers.ChatController,
	mw *middleware.Auth,
	origins []string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	// public
	r.Get("/api/db/health", httpCtrl.DBHealth)
	r.Post("/api/auth/signup", authCtrl.Signup)
	r.Post("/api/auth/signin", authCtrl.Signin)
	r.Get("/api/auth/verify-email", authCtrl.VerifyEmail)

	// authenticated, email-verified
	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireAuth)
		pr.Get("/api/auth/me", authCtrl.Me)
		pr.Post("/api/chat", chatCtrl.Chat)
		pr.With(mw.RequireRole(models.RoleAdmin)).Get("/api/spotify/search", spotifyCtrl.Search)
		pr.With(mw.RequireRole(models.RoleOwner)).Post("/api/admin/users/role", adminCtrl.ChangeRole)
	})

	return r
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/zhouzirui/newsdesk/backend/internal/handler/chat"
	newsHandler "github.com/zhouzirui/newsdesk/backend/internal/handler/news"
	middlewarePkg "github.com/zhouzirui/newsdesk/backend/internal/middleware"
	chatService "github.com/zhouzirui/newsdesk/backend/internal/service/chat"
	newsService "github.com/zhouzirui/newsdesk/backend/internal/service/news"
	"github.com/zhouzirui/newsdesk/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, newsSvc *newsService.Service, models []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"service": "newsdesk-backend",
			"version": "1.0.0",
			"api":     "/api",
			"health":  "/health",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(chatSvc, models).RegisterRoutes(api)
		newsHandler.New(newsSvc).RegisterRoutes(api)
	})

	return r
}

package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"socialblog/cmd/app"
	"socialblog/internal/config"
	handlers "socialblog/internal/handler"
	"socialblog/internal/identity"
	"socialblog/internal/middleware"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig()

	if cfg.SessionSecret == "" {
		logger.Fatal("SESSION_SECRET is not set in the .env file")
	}

	db, repo, services, pageCache, sessions := app.App(cfg, logger)
	defer db.CloseDB()
	defer pageCache.Close()

	handler := handlers.NewHandlers(repo, services, pageCache, sessions, cfg, logger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	r.HandleFunc("/", handler.Index).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	r.HandleFunc("/auth/signup/", handler.Signup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/login/", handler.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/logout/", handler.Logout).Methods(http.MethodGet)

	r.HandleFunc("/create/", identity.LoginRequired(handler.PostCreate)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/follow/", identity.LoginRequired(handler.FollowIndex)).Methods(http.MethodGet)

	r.HandleFunc("/group/{slug}/", handler.GroupPosts).Methods(http.MethodGet)

	// Follow routes before the plain profile route so mux does not
	// swallow them as usernames.
	r.HandleFunc("/profile/{username}/follow/", identity.LoginRequired(handler.ProfileFollow)).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}/unfollow/", identity.LoginRequired(handler.ProfileUnfollow)).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}/", handler.Profile).Methods(http.MethodGet)

	r.HandleFunc("/posts/{id}/comment/", identity.LoginRequired(handler.AddComment)).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/edit/", identity.LoginRequired(handler.PostEdit)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/posts/{id}/", handler.PostDetail).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		r,
		sessions.Middleware,
		middleware.Recover(logger),
		middleware.RequestLogging(logger),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Info("server started", zap.String("addr", addr))

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

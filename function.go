package function

import (
	"context"
	"net/http"

	"talkmap/internal/app"
	"talkmap/internal/config"
	"talkmap/internal/logger"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	_ "talkmap/docs"
)

// @title Talk Map Event Dashboard API
// @version 1.0
// @description Events on a map: live event feed, dashboard filters and session for the event tracking dashboard.

// @host 127.0.0.1:5000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func init() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.New("event-dashboard", "info").WithError(err).Fatal("Invalid configuration")
	}
	log := logger.New("event-dashboard", cfg.LogLevel)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize dashboard")
	}
	handler := a.Handler()

	functions.HTTP("EventDashboard", func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	})
}

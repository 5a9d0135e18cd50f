// Package app wires the backing, services, dashboard store and session into
// one HTTP handler.
package app

import (
	"context"
	"net/http"
	"strings"

	"talkmap/internal/auth"
	"talkmap/internal/backing"
	"talkmap/internal/config"
	"talkmap/internal/logger"
	"talkmap/internal/repository"
	"talkmap/internal/service"
	"talkmap/internal/state"
	"talkmap/internal/transport"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

const metricsNamespace = "talkmap"

// App owns everything the process needs to serve the dashboard API.
type App struct {
	Backing backing.Backing
	Events  *service.EventService
	Images  *service.ImageService
	Store   *state.EventStore
	Session *auth.Session
	Authz   auth.Authorizer
	Metrics *transport.Metrics

	cfg         config.Config
	log         *logrus.Entry
	unsubscribe repository.Unsubscribe
}

// New resolves the backing from cfg and attaches the store to the live feed.
func New(ctx context.Context, cfg config.Config, log *logrus.Entry) (*App, error) {
	b, err := backing.New(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "New: cannot create backing")
	}
	a, err := NewWithBacking(ctx, cfg, b, log)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return a, nil
}

// NewWithBacking is New with an already constructed backing.
func NewWithBacking(ctx context.Context, cfg config.Config, b backing.Backing, log *logrus.Entry) (*App, error) {
	log = log.WithField(logger.FldBacking, b.Name())

	events, err := service.NewEventService(b, log)
	if err != nil {
		return nil, errors.Wrap(err, "NewWithBacking: event service")
	}
	images, err := service.NewImageService(b, log)
	if err != nil {
		return nil, errors.Wrap(err, "NewWithBacking: image service")
	}
	session, err := auth.NewSession(ctx, b, log)
	if err != nil {
		return nil, errors.Wrap(err, "NewWithBacking: session")
	}
	authz, err := auth.NewAuthorizer(b, session, log)
	if err != nil {
		session.Close()
		return nil, errors.Wrap(err, "NewWithBacking: authorizer")
	}

	store := state.NewEventStore(events)
	metrics := transport.NewMetrics(metricsNamespace)
	metrics.TrackEvents(metricsNamespace,
		func() int { return len(store.Events()) },
		func() int { return len(store.FilteredEvents()) },
	)

	a := &App{
		Backing: b,
		Events:  events,
		Images:  images,
		Store:   store,
		Session: session,
		Authz:   authz,
		Metrics: metrics,
		cfg:     cfg,
		log:     log,
	}
	a.unsubscribe = store.InitializeSubscription(ctx)

	log.WithField("devMode", cfg.DevMode).Info("Dashboard initialized")
	return a, nil
}

// Handler returns the full middleware chain:
// CORS -> Security Headers -> Metrics -> Logging -> Auth -> Compression -> Router
//
// /swagger/ and /metrics are served outside the chain.
func (a *App) Handler() http.Handler {
	router := transport.NewRouter(a.Store, a.Images, a.Session, a.Authz)

	handler := transport.WithCompression(router)
	handler = transport.WithAuthProtection(handler, a.Authz)
	handler = transport.WithRequestLogging(handler, a.log)
	handler = transport.WithMetrics(handler, a.Metrics)
	handler = transport.WithSecurityHeaders(handler, a.cfg.IsProduction())
	handler = transport.WithCORS(handler, a.cfg.CORSAllowedOrigin)

	swagger := httpSwagger.Handler(httpSwagger.DeepLinking(false))
	metrics := a.Metrics.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/swagger/"):
			swagger(w, r)
		case r.URL.Path == "/metrics":
			metrics.ServeHTTP(w, r)
		default:
			handler.ServeHTTP(w, r)
		}
	})
}

// Close detaches the feed and releases the backing.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.Session.Close()
	return a.Backing.Close()
}

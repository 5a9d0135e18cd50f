package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"talkmap/internal/auth"
	"talkmap/internal/domain"
	"talkmap/internal/service"
	"talkmap/internal/state"

	"github.com/andybalholm/brotli"
)

// NewRouter initializes the main HTTP handler using Go 1.22+ ServeMux
func NewRouter(store *state.EventStore, images *service.ImageService, session *auth.Session, authz auth.Authorizer) http.Handler {
	mux := http.NewServeMux()

	// Requests to /events (no slash) will be redirected to /events/ by ServeMux
	eventHandler := NewEventHandler(store, images)
	mux.Handle("/events/", http.StripPrefix("/events", eventHandler))

	viewHandler := NewViewHandler(store)
	mux.Handle("/view/", http.StripPrefix("/view", viewHandler))

	sessionHandler := NewSessionHandler(session, authz)
	mux.Handle("/session/", http.StripPrefix("/session", sessionHandler))

	return mux
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrValidation("Invalid JSON body")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIResponse{Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var authErr *domain.AuthError
	switch {
	case errors.As(err, &validationErr):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.As(err, &authErr), errors.Is(err, domain.ErrUnauthenticated):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, domain.ErrNotDevMode):
		w.WriteHeader(http.StatusForbidden)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	_ = json.NewEncoder(w).Encode(domain.APIResponse{Error: err.Error()})
}

func WithCompression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", "br")
		w.Header().Add("Vary", "Accept-Encoding")
		br := brotli.NewWriter(w)
		defer func(br *brotli.Writer) {
			_ = br.Close()
		}(br)
		cw := &compressedWriter{w: w, cw: br}
		next.ServeHTTP(cw, r)
	})
}

type compressedWriter struct {
	w  http.ResponseWriter
	cw *brotli.Writer
}

func (cw *compressedWriter) Header() http.Header         { return cw.w.Header() }
func (cw *compressedWriter) Write(b []byte) (int, error) { return cw.cw.Write(b) }
func (cw *compressedWriter) WriteHeader(statusCode int)  { cw.w.WriteHeader(statusCode) }

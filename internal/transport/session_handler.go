package transport

import (
	"context"
	"net/http"

	"talkmap/internal/auth"
	"talkmap/internal/domain"
)

// SessionState is the auth session as seen by the caller
type SessionState struct {
	User          *domain.User    `json:"user,omitempty"`
	Role          domain.UserRole `json:"role,omitempty"`
	Authenticated bool            `json:"authenticated"`
	IsAdmin       bool            `json:"isAdmin"`
	DevMode       bool            `json:"devMode"`
	Loading       bool            `json:"loading"`
	Error         string          `json:"error,omitempty"`
	// IDToken is only set by sign-in; send it as Bearer on later requests
	IDToken string `json:"idToken,omitempty"`
}

type SessionHandler struct {
	session *auth.Session
	authz   auth.Authorizer
	mux     *http.ServeMux
}

func NewSessionHandler(session *auth.Session, authz auth.Authorizer) *SessionHandler {
	h := &SessionHandler{
		session: session,
		authz:   authz,
		mux:     http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *SessionHandler) routes() {
	h.mux.HandleFunc("GET /{$}", h.handleState)
	h.mux.HandleFunc("POST /sign-in", h.handleSignIn)
	h.mux.HandleFunc("POST /sign-out", h.handleSignOut)
	h.mux.HandleFunc("PUT /dev-role", h.handleDevRole)
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// state describes the session of p. The shared session only contributes its
// flags in dev mode, where it is the single local user.
func (h *SessionHandler) state(p *auth.Principal) SessionState {
	st := SessionState{DevMode: h.session.IsDevMode()}
	if st.DevMode {
		st.Loading = h.session.Loading()
		st.Error = h.session.Err()
	}
	if p != nil {
		user := p.User
		st.User = &user
		st.Role = p.Role
		st.Authenticated = true
		st.IsAdmin = p.IsAdmin()
	}
	return st
}

// resolve reads the caller again after the session changed.
func (h *SessionHandler) resolve(ctx context.Context, idToken string) *auth.Principal {
	p, err := h.authz.Authorize(ctx, idToken)
	if err != nil {
		return nil
	}
	return p
}

// handleState returns the current session
// @Summary Get Session
// @Tags session
// @Produce json
// @Success 200 {object} domain.APIResponse{data=transport.SessionState}
// @Router /session [get]
func (h *SessionHandler) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state(auth.PrincipalFrom(r.Context())))
}

// handleSignIn signs in with email and password and returns the ID token
// @Summary Sign In
// @Tags session
// @Accept json
// @Produce json
// @Param credentials body domain.SignInDTO true "Credentials"
// @Success 200 {object} domain.APIResponse{data=transport.SessionState}
// @Failure 401 {object} domain.APIResponse{error=string}
// @Router /session/sign-in [post]
func (h *SessionHandler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var dto domain.SignInDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, err)
		return
	}
	token, err := h.session.SignIn(r.Context(), dto.Email, dto.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	p, err := h.authz.Authorize(r.Context(), token)
	if err != nil {
		respondError(w, err)
		return
	}
	st := h.state(p)
	st.IDToken = token
	respondJSON(w, http.StatusOK, st)
}

// handleSignOut ends the session; clients drop their ID token
// @Summary Sign Out
// @Tags session
// @Produce json
// @Success 200 {object} domain.APIResponse{data=transport.SessionState}
// @Router /session/sign-out [post]
func (h *SessionHandler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.session.SignOut(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state(nil))
}

// handleDevRole switches the simulated role
// @Summary Set Dev Role
// @Description Only available when running against the in-memory backing
// @Tags session
// @Accept json
// @Produce json
// @Param role body domain.DevRoleDTO true "Role"
// @Success 200 {object} domain.APIResponse{data=transport.SessionState}
// @Failure 403 {object} domain.APIResponse{error=string}
// @Router /session/dev-role [put]
func (h *SessionHandler) handleDevRole(w http.ResponseWriter, r *http.Request) {
	var dto domain.DevRoleDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, err)
		return
	}
	if !h.session.IsDevMode() {
		respondError(w, domain.ErrNotDevMode)
		return
	}
	if err := domain.Validate.Struct(dto); err != nil {
		respondError(w, domain.ErrValidation(err.Error()))
		return
	}
	if err := h.session.SetDevRole(dto.Role); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state(h.resolve(r.Context(), bearerToken(r))))
}

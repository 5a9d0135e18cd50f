package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"talkmap/internal/backing"
	"talkmap/internal/domain"
	"talkmap/internal/logger"
	"talkmap/internal/repository"

	"github.com/sirupsen/logrus"
)

// Session holds the signed-in identity and its resolved role for the whole
// process. With a remote backing it follows the identity feed and looks the
// role up in the user profiles; with a mock backing the identity is a fixed
// placeholder and the role can be switched by hand.
//
// Only the dev session gates HTTP requests. With a remote backing every
// request carries its own ID token, see Authorizer.
type Session struct {
	ctx      context.Context
	dev      bool
	identity repository.IdentityRepository
	profiles repository.ProfileRepository
	devUser  domain.User
	log      *logrus.Entry

	mu      sync.RWMutex
	user    *domain.User
	role    domain.UserRole
	loading bool
	err     string
	unwatch repository.Unsubscribe
	// seq numbers identity deliveries; a role lookup only lands if no newer
	// delivery arrived meanwhile.
	seq uint64
}

// NewSession starts following the identity of b. ctx bounds the role lookups
// triggered by identity changes.
func NewSession(ctx context.Context, b backing.Backing, log *logrus.Entry) (*Session, error) {
	s := &Session{ctx: ctx, log: log.WithField(logger.FldBacking, b.Name())}

	switch b := b.(type) {
	case *backing.Mock:
		s.dev = true
		s.devUser = b.DevUser
		user := b.DevUser
		s.user = &user
		s.role = b.DevRole
	case *backing.Remote:
		s.identity = b.Identity
		s.profiles = b.Profiles
		s.loading = true
		s.unwatch = b.Identity.Watch(s.onIdentity)
	default:
		return nil, fmt.Errorf("unsupported backing %T", b)
	}
	return s, nil
}

func (s *Session) onIdentity(user *domain.User) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	var role domain.UserRole
	if user != nil {
		role = resolveRole(s.ctx, s.profiles, user.UID, s.log)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return
	}
	s.user = user
	s.role = role
	s.loading = false
}

// resolveRole grants admin only to an existing profile with role admin.
func resolveRole(ctx context.Context, profiles repository.ProfileRepository, uid string, log *logrus.Entry) domain.UserRole {
	profile, err := profiles.GetProfile(ctx, uid)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.WithError(err).WithField(logger.FldUser, uid).Warn("Role lookup failed, falling back to readonly")
		}
		return domain.RoleReadonly
	}
	if profile.Role == domain.RoleAdmin {
		return domain.RoleAdmin
	}
	return domain.RoleReadonly
}

func (s *Session) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading is true until the first identity delivery arrived.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Role is empty while no role has been resolved.
func (s *Session) Role() domain.UserRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.role == domain.RoleAdmin
}

func (s *Session) IsDevMode() bool { return s.dev }

// principal is the signed-in user with its role, nil when signed out.
func (s *Session) principal() *Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	return &Principal{User: *s.user, Role: s.role}
}

func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// SignIn checks the credentials with the backend and returns the ID token
// of the signed-in user. In dev mode any input is accepted, the placeholder
// identity is restored and the token is empty.
func (s *Session) SignIn(ctx context.Context, email, password string) (string, error) {
	s.setErr("")

	if s.dev {
		user := s.devUser
		if email != "" {
			user.Email = email
		}
		s.mu.Lock()
		s.user = &user
		s.mu.Unlock()
		return "", nil
	}

	user, token, err := s.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		err = asAuthError("sign in", err)
		s.setErr(err.Error())
		s.log.WithError(err).Warn("Sign-in rejected")
		return "", err
	}
	s.log.WithField(logger.FldUser, user.UID).Info("Signed in")
	return token, nil
}

func (s *Session) SignOut(ctx context.Context) error {
	s.setErr("")

	if s.dev {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return nil
	}

	if err := s.identity.SignOut(ctx); err != nil {
		err = asAuthError("sign out", err)
		s.setErr(err.Error())
		return err
	}
	return nil
}

// SetDevRole switches the simulated role. Only available in dev mode.
func (s *Session) SetDevRole(role domain.UserRole) error {
	if !s.dev {
		return domain.ErrNotDevMode
	}
	if role != domain.RoleAdmin && role != domain.RoleReadonly {
		return domain.ErrValidation(fmt.Sprintf("unknown role %q", role))
	}
	s.mu.Lock()
	s.role = role
	s.mu.Unlock()
	return nil
}

// Close stops following the identity feed.
func (s *Session) Close() {
	if s.unwatch != nil {
		s.unwatch()
	}
}

func (s *Session) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func asAuthError(op string, err error) error {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return err
	}
	return &domain.AuthError{Op: op, Err: err}
}

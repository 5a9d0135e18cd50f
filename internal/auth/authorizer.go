package auth

import (
	"context"
	"fmt"

	"talkmap/internal/backing"
	"talkmap/internal/domain"
	"talkmap/internal/repository"

	"github.com/sirupsen/logrus"
)

// Principal is the caller of a single request.
type Principal struct {
	User domain.User
	Role domain.UserRole
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == domain.RoleAdmin
}

// Authorizer resolves the caller of a request from the ID token it carries.
type Authorizer interface {
	Authorize(ctx context.Context, idToken string) (*Principal, error)
}

// NewAuthorizer verifies ID tokens with Firebase Auth for a remote backing.
// A mock backing serves one local user, so the dev session answers for every
// caller and the token is ignored.
func NewAuthorizer(b backing.Backing, session *Session, log *logrus.Entry) (Authorizer, error) {
	switch b := b.(type) {
	case *backing.Mock:
		if session == nil || !session.IsDevMode() {
			return nil, fmt.Errorf("mock backing needs a dev session")
		}
		return devAuthorizer{session: session}, nil
	case *backing.Remote:
		if b.Tokens == nil || b.Profiles == nil {
			return nil, fmt.Errorf("remote backing needs a token verifier and profiles")
		}
		return NewTokenAuthorizer(b.Tokens, b.Profiles, log), nil
	default:
		return nil, fmt.Errorf("unsupported backing %T", b)
	}
}

type tokenAuthorizer struct {
	verifier repository.TokenVerifier
	profiles repository.ProfileRepository
	log      *logrus.Entry
}

func NewTokenAuthorizer(verifier repository.TokenVerifier, profiles repository.ProfileRepository, log *logrus.Entry) Authorizer {
	return &tokenAuthorizer{verifier: verifier, profiles: profiles, log: log}
}

func (a *tokenAuthorizer) Authorize(ctx context.Context, idToken string) (*Principal, error) {
	if idToken == "" {
		return nil, domain.ErrUnauthenticated
	}
	token, err := a.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		a.log.WithError(err).Debug("ID token rejected")
		return nil, &domain.AuthError{Op: "verify token", Err: err}
	}

	user := domain.User{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.DisplayName = name
	}
	role := resolveRole(ctx, a.profiles, token.UID, a.log)
	return &Principal{User: user, Role: role}, nil
}

type devAuthorizer struct {
	session *Session
}

func (a devAuthorizer) Authorize(context.Context, string) (*Principal, error) {
	p := a.session.principal()
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}

type principalKey struct{}

// WithPrincipal attaches the caller to ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller attached to ctx, nil for anonymous calls.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}

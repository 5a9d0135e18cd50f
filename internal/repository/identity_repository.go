package repository

import (
	"context"
	"sync"

	"talkmap/internal/domain"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/identitytoolkit/v3"
)

// IdentityRepository is the backend's identity feed and credential sign-in.
type IdentityRepository interface {
	// Current returns the signed-in user or nil.
	Current() *domain.User
	// Watch calls fn with the current user on attach and on every change.
	Watch(fn func(*domain.User)) Unsubscribe
	// SignInWithPassword returns the signed-in user and its verified ID token.
	SignInWithPassword(ctx context.Context, email, password string) (*domain.User, string, error)
	SignOut(ctx context.Context) error
}

// TokenVerifier checks Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type firebaseIdentityRepo struct {
	toolkit  *identitytoolkit.Service
	verifier TokenVerifier

	mu       sync.Mutex
	current  *domain.User
	watchers map[int]func(*domain.User)
	nextID   int
}

// NewFirebaseIdentityRepository signs in through the Identity Toolkit password
// endpoint and verifies the returned ID token with the Admin SDK.
func NewFirebaseIdentityRepository(toolkit *identitytoolkit.Service, verifier TokenVerifier) IdentityRepository {
	return &firebaseIdentityRepo{
		toolkit:  toolkit,
		verifier: verifier,
		watchers: make(map[int]func(*domain.User)),
	}
}

func (r *firebaseIdentityRepo) Current() *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *firebaseIdentityRepo) Watch(fn func(*domain.User)) Unsubscribe {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.watchers[id] = fn
	current := r.current
	r.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.watchers, id)
			r.mu.Unlock()
		})
	}
}

func (r *firebaseIdentityRepo) SignInWithPassword(ctx context.Context, email, password string) (*domain.User, string, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	resp, err := r.toolkit.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		return nil, "", &domain.AuthError{Op: "sign in", Err: err}
	}

	token, err := r.verifier.VerifyIDToken(ctx, resp.IdToken)
	if err != nil {
		return nil, "", &domain.AuthError{Op: "verify token", Err: err}
	}

	user := &domain.User{UID: token.UID, Email: resp.Email, DisplayName: resp.DisplayName}
	if user.Email == "" {
		user.Email = email
	}
	r.set(user)
	return user, resp.IdToken, nil
}

func (r *firebaseIdentityRepo) SignOut(_ context.Context) error {
	r.set(nil)
	return nil
}

func (r *firebaseIdentityRepo) set(user *domain.User) {
	r.mu.Lock()
	r.current = user
	watchers := make([]func(*domain.User), 0, len(r.watchers))
	for _, fn := range r.watchers {
		watchers = append(watchers, fn)
	}
	r.mu.Unlock()

	for _, fn := range watchers {
		fn(user)
	}
}

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"talkmap/internal/auth"
	"talkmap/internal/backing"
	"talkmap/internal/config"
	"talkmap/internal/domain"
	"talkmap/internal/logger"
	"talkmap/internal/repository"
)

// fakeIdentity accepts a single password and notifies watchers synchronously.
type fakeIdentity struct {
	password string
	users    map[string]domain.User
	silent   bool

	mu       sync.Mutex
	current  *domain.User
	watchers []func(*domain.User)
}

func (f *fakeIdentity) Current() *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeIdentity) Watch(fn func(*domain.User)) repository.Unsubscribe {
	f.mu.Lock()
	f.watchers = append(f.watchers, fn)
	current := f.current
	f.mu.Unlock()
	if !f.silent {
		fn(current)
	}
	return func() {
		f.mu.Lock()
		f.watchers = nil
		f.mu.Unlock()
	}
}

func (f *fakeIdentity) SignInWithPassword(_ context.Context, email, password string) (*domain.User, string, error) {
	u, ok := f.users[email]
	if !ok || password != f.password {
		return nil, "", errors.New("INVALID_LOGIN_CREDENTIALS")
	}
	f.set(&u)
	return &u, "token-" + u.UID, nil
}

func (f *fakeIdentity) SignOut(context.Context) error {
	f.set(nil)
	return nil
}

func (f *fakeIdentity) set(u *domain.User) {
	f.mu.Lock()
	f.current = u
	watchers := append([]func(*domain.User){}, f.watchers...)
	f.mu.Unlock()
	for _, fn := range watchers {
		fn(u)
	}
}

// failingProfiles fails every lookup with a store error.
type failingProfiles struct{}

func (failingProfiles) GetProfile(context.Context, string) (*domain.UserProfile, error) {
	return nil, &domain.StoreError{Op: "get profile", Err: errors.New("unavailable")}
}
func (failingProfiles) SaveProfile(context.Context, domain.UserProfile) error { return nil }

var (
	admin  = domain.User{UID: "u-admin", Email: "admin@example.com"}
	reader = domain.User{UID: "u-reader", Email: "reader@example.com"}
	guest  = domain.User{UID: "u-guest", Email: "guest@example.com"}
)

func newLiveSession(t *testing.T, identity *fakeIdentity, profiles repository.ProfileRepository) *auth.Session {
	t.Helper()
	b := &backing.Remote{Identity: identity, Profiles: profiles}
	s, err := auth.NewSession(context.Background(), b, logger.Discard())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func newIdentity() *fakeIdentity {
	return &fakeIdentity{
		password: "secret",
		users: map[string]domain.User{
			admin.Email:  admin,
			reader.Email: reader,
			guest.Email:  guest,
		},
	}
}

func defaultProfiles() repository.ProfileRepository {
	return repository.NewStaticProfileRepository(
		domain.UserProfile{UID: admin.UID, Role: domain.RoleAdmin},
		domain.UserProfile{UID: reader.UID, Role: domain.RoleReadonly},
		domain.UserProfile{UID: guest.UID, Role: "superuser"},
	)
}

func TestSession_RoleResolution(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		profiles  repository.ProfileRepository
		wantRole  domain.UserRole
		wantAdmin bool
	}{
		{"AdminProfile", admin.Email, defaultProfiles(), domain.RoleAdmin, true},
		{"ReadonlyProfile", reader.Email, defaultProfiles(), domain.RoleReadonly, false},
		{"UnknownRoleValue", guest.Email, defaultProfiles(), domain.RoleReadonly, false},
		{"MissingProfile", admin.Email, repository.NewStaticProfileRepository(), domain.RoleReadonly, false},
		{"LookupFailure", admin.Email, failingProfiles{}, domain.RoleReadonly, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLiveSession(t, newIdentity(), tt.profiles)

			if _, err := s.SignIn(context.Background(), tt.email, "secret"); err != nil {
				t.Fatalf("SignIn failed: %v", err)
			}
			if s.Role() != tt.wantRole {
				t.Errorf("Expected role %q, got %q", tt.wantRole, s.Role())
			}
			if s.IsAdmin() != tt.wantAdmin {
				t.Errorf("Expected IsAdmin %v, got %v", tt.wantAdmin, s.IsAdmin())
			}
		})
	}
}

func TestSession_LiveStartsLoadingUntilFirstDelivery(t *testing.T) {
	identity := newIdentity()
	identity.silent = true
	s := newLiveSession(t, identity, defaultProfiles())

	if !s.Loading() {
		t.Error("Expected loading before the first identity delivery")
	}
	identity.set(nil)
	if s.Loading() {
		t.Error("Expected loading to end after the first delivery")
	}
	if s.IsAuthenticated() || s.Role() != "" {
		t.Errorf("Expected no user and no role, got %v / %q", s.CurrentUser(), s.Role())
	}
}

func TestSession_WrongPassword(t *testing.T) {
	s := newLiveSession(t, newIdentity(), defaultProfiles())

	_, err := s.SignIn(context.Background(), admin.Email, "wrong")

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected AuthError, got %v", err)
	}
	if s.Err() == "" {
		t.Error("Expected sign-in error to be recorded")
	}
	if s.IsAuthenticated() {
		t.Error("Expected no user after failed sign-in")
	}

	// the next attempt clears the error
	if _, err := s.SignIn(context.Background(), admin.Email, "secret"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if s.Err() != "" {
		t.Errorf("Expected error cleared, got %q", s.Err())
	}
}

func TestSession_SignOutClearsRole(t *testing.T) {
	s := newLiveSession(t, newIdentity(), defaultProfiles())
	ctx := context.Background()

	if _, err := s.SignIn(ctx, admin.Email, "secret"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if err := s.SignOut(ctx); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if s.IsAuthenticated() || s.IsAdmin() || s.Role() != "" {
		t.Errorf("Expected signed-out session, got user %v role %q", s.CurrentUser(), s.Role())
	}
}

// slowProfiles holds every lookup until release is closed.
type slowProfiles struct {
	repository.ProfileRepository
	entered chan struct{}
	release chan struct{}
}

func (p *slowProfiles) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	p.entered <- struct{}{}
	<-p.release
	return p.ProfileRepository.GetProfile(ctx, uid)
}

func TestSession_LateRoleLookupAfterSignOut(t *testing.T) {
	profiles := &slowProfiles{
		ProfileRepository: defaultProfiles(),
		entered:           make(chan struct{}, 1),
		release:           make(chan struct{}),
	}
	identity := newIdentity()
	s := newLiveSession(t, identity, profiles)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := s.SignIn(ctx, admin.Email, "secret")
		done <- err
	}()

	<-profiles.entered
	if err := s.SignOut(ctx); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	close(profiles.release)
	if err := <-done; err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	if identity.Current() != nil {
		t.Fatalf("Expected the backend to be signed out")
	}
	if s.IsAuthenticated() || s.IsAdmin() || s.Role() != "" {
		t.Errorf("Expected the sign-out to win, got user %v role %q", s.CurrentUser(), s.Role())
	}
}

func TestSession_SetDevRoleRejectedLive(t *testing.T) {
	s := newLiveSession(t, newIdentity(), defaultProfiles())

	if err := s.SetDevRole(domain.RoleAdmin); !errors.Is(err, domain.ErrNotDevMode) {
		t.Errorf("Expected ErrNotDevMode, got %v", err)
	}
	if s.IsDevMode() {
		t.Error("Expected live session")
	}
}

func newDevSession(t *testing.T, role string) *auth.Session {
	t.Helper()
	mock := backing.NewMock(config.Config{DevMode: true, DevRole: role}, nil)
	s, err := auth.NewSession(context.Background(), mock, logger.Discard())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestSession_DevModeStartsSignedIn(t *testing.T) {
	s := newDevSession(t, "admin")

	if s.Loading() {
		t.Error("Expected dev session to be ready immediately")
	}
	u := s.CurrentUser()
	if u == nil || u.UID != backing.DevUser.UID {
		t.Fatalf("Expected placeholder user, got %v", u)
	}
	if !s.IsAdmin() {
		t.Error("Expected admin role from DEV_ROLE")
	}
}

func TestSession_DevModeSwitchRole(t *testing.T) {
	s := newDevSession(t, "readonly")
	if s.IsAdmin() {
		t.Fatal("Expected readonly dev session")
	}

	if err := s.SetDevRole(domain.RoleAdmin); err != nil {
		t.Fatalf("SetDevRole failed: %v", err)
	}
	if !s.IsAdmin() {
		t.Error("Expected admin after switching role")
	}

	var vErr *domain.ValidationError
	if err := s.SetDevRole("owner"); !errors.As(err, &vErr) {
		t.Errorf("Expected ValidationError for unknown role, got %v", err)
	}
}

func TestSession_DevModeSignOutAndIn(t *testing.T) {
	s := newDevSession(t, "admin")
	ctx := context.Background()

	if err := s.SignOut(ctx); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if s.IsAuthenticated() || s.IsAdmin() {
		t.Error("Expected signed-out dev session")
	}

	if _, err := s.SignIn(ctx, "someone@local.test", "anything"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	u := s.CurrentUser()
	if u == nil || u.UID != backing.DevUser.UID || u.Email != "someone@local.test" {
		t.Errorf("Expected placeholder user with the given email, got %v", u)
	}
	if !s.IsAdmin() {
		t.Error("Expected the dev role to survive sign-out")
	}
}

func TestSession_CurrentUserIsACopy(t *testing.T) {
	s := newDevSession(t, "admin")
	u := s.CurrentUser()
	u.Email = "changed@example.com"
	if s.CurrentUser().Email == "changed@example.com" {
		t.Error("CurrentUser must not expose internal state")
	}
}

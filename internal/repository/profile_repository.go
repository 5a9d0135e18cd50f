package repository

import (
	"context"
	"sync"

	"talkmap/internal/domain"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CollectionUsers = "users"

// ProfileRepository looks up the stored role record of a user.
type ProfileRepository interface {
	// GetProfile returns domain.ErrNotFound when the user has no profile.
	GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
}

type profileRepo struct {
	client *firestore.Client
}

func NewProfileRepository(client *firestore.Client) ProfileRepository {
	return &profileRepo{client: client}
}

func (r *profileRepo) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	doc, err := r.client.Collection(CollectionUsers).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "get profile", Err: err}
	}
	var p domain.UserProfile
	if err := doc.DataTo(&p); err != nil {
		return nil, &domain.StoreError{Op: "get profile", Err: errors.Wrapf(err, "GetProfile: cannot decode profile '%s'", uid)}
	}
	if p.UID == "" {
		p.UID = uid
	}
	return &p, nil
}

func (r *profileRepo) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	if _, err := r.client.Collection(CollectionUsers).Doc(profile.UID).Set(ctx, profile); err != nil {
		return &domain.StoreError{Op: "save profile", Err: err}
	}
	return nil
}

// StaticProfileRepository serves profiles from memory.
type StaticProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
}

func NewStaticProfileRepository(profiles ...domain.UserProfile) *StaticProfileRepository {
	r := &StaticProfileRepository{profiles: make(map[string]domain.UserProfile)}
	for _, p := range profiles {
		r.profiles[p.UID] = p
	}
	return r
}

func (r *StaticProfileRepository) GetProfile(_ context.Context, uid string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *StaticProfileRepository) SaveProfile(_ context.Context, profile domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UID] = profile
	return nil
}

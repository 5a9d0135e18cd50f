// Package backing resolves the process-wide choice between the Firebase
// backend and the in-memory development backend into explicit values that are
// passed to the service and auth constructors.
package backing

import (
	"context"
	"strings"
	"time"

	"talkmap/internal/config"
	"talkmap/internal/domain"
	"talkmap/internal/repository"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// Backing is either *Remote or *Mock.
type Backing interface {
	Name() string
	Close() error
	isBacking()
}

// DevUser is the placeholder identity of dev mode.
var DevUser = domain.User{UID: "dev-user-123", Email: "dev@local.test", DisplayName: "Dev User"}

// Remote talks to Firestore, Firebase Auth and Firebase Storage.
type Remote struct {
	Events   repository.EventRepository
	Blobs    repository.BlobRepository
	Profiles repository.ProfileRepository
	Identity repository.IdentityRepository

	// Tokens verifies the ID tokens sent with each request.
	Tokens repository.TokenVerifier

	Firestore *firestore.Client
}

func (*Remote) Name() string { return "remote" }
func (*Remote) isBacking()   {}

func (r *Remote) Close() error {
	if r.Firestore == nil {
		return nil
	}
	return r.Firestore.Close()
}

// Mock owns the in-memory state of dev mode. Each instance is independent.
type Mock struct {
	Events  *repository.MockEventRepository
	Blobs   *repository.MemoryBlobRepository
	DevUser domain.User
	DevRole domain.UserRole
}

func (*Mock) Name() string { return "mock" }
func (*Mock) isBacking()   {}
func (*Mock) Close() error { return nil }

// New picks the backing from cfg.DevMode.
func New(ctx context.Context, cfg config.Config) (Backing, error) {
	if cfg.DevMode {
		return NewMock(cfg, time.Now), nil
	}
	return NewRemote(ctx, cfg)
}

// NewMock seeds a fresh mock backing stamped with now().
func NewMock(cfg config.Config, now func() time.Time) *Mock {
	if now == nil {
		now = time.Now
	}
	role := domain.UserRole(cfg.DevRole)
	if role != domain.RoleReadonly {
		role = domain.RoleAdmin
	}
	return &Mock{
		Events:  repository.NewMockEventRepository(domain.SeedEvents(now()), now),
		Blobs:   repository.NewMemoryBlobRepository(now),
		DevUser: DevUser,
		DevRole: role,
	}
}

// NewRemote connects the Firebase clients described by cfg.
func NewRemote(ctx context.Context, cfg config.Config) (*Remote, error) {
	fsClient, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.DatabaseID)
	if err != nil {
		return nil, errors.Wrap(err, "NewRemote: failed to create firestore client")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.Bucket(),
	})
	if err != nil {
		_ = fsClient.Close()
		return nil, errors.Wrap(err, "NewRemote: failed to initialize firebase app")
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		_ = fsClient.Close()
		return nil, errors.Wrap(err, "NewRemote: failed to get auth client")
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		_ = fsClient.Close()
		return nil, errors.Wrap(err, "NewRemote: failed to get storage client")
	}
	bucket, err := storageClient.Bucket(cfg.Bucket())
	if err != nil {
		_ = fsClient.Close()
		return nil, errors.Wrap(err, "NewRemote: failed to open storage bucket")
	}

	toolkit, err := newIdentityToolkit(ctx, cfg)
	if err != nil {
		_ = fsClient.Close()
		return nil, err
	}

	return &Remote{
		Events:    repository.NewEventRepository(fsClient),
		Blobs:     repository.NewStorageBlobRepository(bucket, cfg.Bucket(), cfg.StorageDownloadBase()),
		Profiles:  repository.NewProfileRepository(fsClient),
		Identity:  repository.NewFirebaseIdentityRepository(toolkit, authClient),
		Tokens:    authClient,
		Firestore: fsClient,
	}, nil
}

func newIdentityToolkit(ctx context.Context, cfg config.Config) (*identitytoolkit.Service, error) {
	apiKey := cfg.APIKey
	opts := []option.ClientOption{}
	if cfg.AuthEmulatorHost != "" {
		// the emulator accepts any key but still requires one
		if apiKey == "" {
			apiKey = "fake-api-key"
		}
		host := strings.TrimSuffix(cfg.AuthEmulatorHost, "/")
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host
		}
		opts = append(opts, option.WithEndpoint(host+"/www.googleapis.com/identitytoolkit/v3/relyingparty/"))
	}
	if apiKey == "" {
		return nil, errors.New("newIdentityToolkit: FIREBASE_API_KEY is required for password sign-in")
	}
	opts = append(opts, option.WithAPIKey(apiKey))

	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "newIdentityToolkit: failed to create identity toolkit client")
	}
	return svc, nil
}

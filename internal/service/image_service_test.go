package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"talkmap/internal/backing"
	"talkmap/internal/domain"
	"talkmap/internal/logger"
	"talkmap/internal/service"
)

type MockBlobRepository struct {
	UploadFunc      func(ctx context.Context, scopeID, filename, contentType string, body io.Reader) (string, error)
	DeleteByURLFunc func(ctx context.Context, rawURL string) error
}

func (m *MockBlobRepository) Upload(ctx context.Context, scopeID, filename, contentType string, body io.Reader) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, scopeID, filename, contentType, body)
	}
	return "https://example.test/" + scopeID + "/" + filename, nil
}

func (m *MockBlobRepository) DeleteByURL(ctx context.Context, rawURL string) error {
	if m.DeleteByURLFunc != nil {
		return m.DeleteByURLFunc(ctx, rawURL)
	}
	return nil
}

func newImageService(t *testing.T, blobs *MockBlobRepository) *service.ImageService {
	t.Helper()
	svc, err := service.NewImageService(&backing.Remote{Blobs: blobs}, logger.Discard())
	if err != nil {
		t.Fatalf("NewImageService failed: %v", err)
	}
	return svc
}

func TestUploadImages_KeepsOrder(t *testing.T) {
	svc := newImageService(t, &MockBlobRepository{})

	urls, err := svc.UploadImages(context.Background(), "7", []service.Upload{
		{Filename: "a.png", Body: strings.NewReader("a")},
		{Filename: "b.png", Body: strings.NewReader("b")},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != 2 || !strings.HasSuffix(urls[0], "a.png") || !strings.HasSuffix(urls[1], "b.png") {
		t.Errorf("Unexpected urls %v", urls)
	}
	if svc.Progress() != 100 || svc.Uploading() {
		t.Errorf("Expected finished upload, got progress %d uploading %v", svc.Progress(), svc.Uploading())
	}
}

func TestUploadImages_StopsAtFirstFailure(t *testing.T) {
	svc := newImageService(t, &MockBlobRepository{
		UploadFunc: func(ctx context.Context, scopeID, filename, contentType string, body io.Reader) (string, error) {
			if filename == "broken.png" {
				return "", &domain.BlobError{Op: "upload", Err: errors.New("quota exceeded")}
			}
			return "https://example.test/" + filename, nil
		},
	})

	urls, err := svc.UploadImages(context.Background(), "7", []service.Upload{
		{Filename: "ok.png", Body: strings.NewReader("1")},
		{Filename: "broken.png", Body: strings.NewReader("2")},
		{Filename: "never.png", Body: strings.NewReader("3")},
	})

	var blobErr *domain.BlobError
	if !errors.As(err, &blobErr) {
		t.Fatalf("Expected BlobError, got %v", err)
	}
	if len(urls) != 1 {
		t.Errorf("Expected the one URL uploaded before the failure, got %v", urls)
	}
	if !strings.Contains(svc.Err(), "quota exceeded") {
		t.Errorf("Expected error to be recorded, got %q", svc.Err())
	}
}

func TestUploadImage_RequiresEventAndFilename(t *testing.T) {
	svc := newImageService(t, &MockBlobRepository{})

	var vErr *domain.ValidationError
	if _, err := svc.UploadImage(context.Background(), "", service.Upload{Filename: "a.png"}); !errors.As(err, &vErr) {
		t.Errorf("Expected ValidationError for missing event id, got %v", err)
	}
	if _, err := svc.UploadImage(context.Background(), "7", service.Upload{}); !errors.As(err, &vErr) {
		t.Errorf("Expected ValidationError for missing filename, got %v", err)
	}
}

func TestDeleteImage_PropagatesFailure(t *testing.T) {
	svc := newImageService(t, &MockBlobRepository{
		DeleteByURLFunc: func(ctx context.Context, rawURL string) error {
			return &domain.BlobError{Op: "delete", Err: errors.New("not allowed")}
		},
	})

	if err := svc.DeleteImage(context.Background(), "https://example.test/x.png"); err == nil {
		t.Fatal("Expected delete failure")
	}
	if svc.Err() == "" {
		t.Error("Expected error to be recorded")
	}
}

func TestImageService_MockBackingRoundTrip(t *testing.T) {
	mock := backing.NewMock(testConfig(), nil)
	svc, err := service.NewImageService(mock, logger.Discard())
	if err != nil {
		t.Fatalf("NewImageService failed: %v", err)
	}

	url, err := svc.UploadImage(context.Background(), "7", service.Upload{Filename: "slide.png", Body: strings.NewReader("data")})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if mock.Blobs.Len() != 1 {
		t.Fatalf("Expected 1 stored blob, got %d", mock.Blobs.Len())
	}
	if err := svc.DeleteImage(context.Background(), url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if mock.Blobs.Len() != 0 {
		t.Errorf("Expected blob to be removed, got %d", mock.Blobs.Len())
	}
}

package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"talkmap/internal/domain"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultDownloadBase is the host serving Firebase Storage download URLs
const DefaultDownloadBase = "https://firebasestorage.googleapis.com"

// BlobRepository stores event images and hands out fetchable URLs.
type BlobRepository interface {
	Upload(ctx context.Context, scopeID, filename, contentType string, body io.Reader) (string, error)
	DeleteByURL(ctx context.Context, rawURL string) error
}

// BlobPath is the object name of an image: events/{scopeID}/{unixMillis}-{filename}.
func BlobPath(scopeID, filename string, at time.Time) string {
	return fmt.Sprintf("events/%s/%d-%s", scopeID, at.UnixMilli(), path.Base(filename))
}

type storageBlobRepo struct {
	bucket       *storage.BucketHandle
	bucketName   string
	downloadBase string
	now          func() time.Time
}

// NewStorageBlobRepository uploads into a Firebase Storage bucket.
func NewStorageBlobRepository(bucket *storage.BucketHandle, bucketName, downloadBase string) BlobRepository {
	if downloadBase == "" {
		downloadBase = DefaultDownloadBase
	}
	return &storageBlobRepo{
		bucket:       bucket,
		bucketName:   bucketName,
		downloadBase: strings.TrimSuffix(downloadBase, "/"),
		now:          time.Now,
	}
}

func (r *storageBlobRepo) Upload(ctx context.Context, scopeID, filename, contentType string, body io.Reader) (string, error) {
	objectPath := BlobPath(scopeID, filename, r.now())
	token := uuid.New().String()

	w := r.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	// the token makes the object readable through the download URL
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", &domain.BlobError{Op: "upload", Err: errors.Wrapf(err, "Upload: cannot write object '%s'", objectPath)}
	}
	if err := w.Close(); err != nil {
		return "", &domain.BlobError{Op: "upload", Err: errors.Wrapf(err, "Upload: cannot finalize object '%s'", objectPath)}
	}
	return DownloadURL(r.downloadBase, r.bucketName, objectPath, token), nil
}

func (r *storageBlobRepo) DeleteByURL(ctx context.Context, rawURL string) error {
	objectPath, err := ObjectPathFromURL(rawURL, r.bucketName)
	if err != nil {
		return &domain.BlobError{Op: "delete", Err: err}
	}
	if err := r.bucket.Object(objectPath).Delete(ctx); err != nil {
		return &domain.BlobError{Op: "delete", Err: errors.Wrapf(err, "DeleteByURL: cannot delete object '%s'", objectPath)}
	}
	return nil
}

// DownloadURL builds a Firebase Storage download URL for objectPath.
func DownloadURL(base, bucket, objectPath, token string) string {
	u := fmt.Sprintf("%s/v0/b/%s/o/%s?alt=media", base, bucket, url.PathEscape(objectPath))
	if token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}

// ObjectPathFromURL extracts the object name from a Firebase download URL,
// a gs:// URL or a storage.googleapis.com URL of bucket.
func ObjectPathFromURL(rawURL, bucket string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "ObjectPathFromURL: invalid url")
	}

	switch {
	case u.Scheme == "gs":
		if u.Host != bucket {
			return "", fmt.Errorf("object belongs to bucket %q, not %q", u.Host, bucket)
		}
		return nonEmpty(strings.TrimPrefix(u.Path, "/"))

	case u.Host == "storage.googleapis.com":
		prefix := "/" + bucket + "/"
		if !strings.HasPrefix(u.Path, prefix) {
			return "", fmt.Errorf("object url %q is outside bucket %q", rawURL, bucket)
		}
		return nonEmpty(strings.TrimPrefix(u.Path, prefix))

	default:
		// Firebase download URLs escape the slashes of the object name
		marker := "/v0/b/" + bucket + "/o/"
		escaped := u.EscapedPath()
		idx := strings.Index(escaped, marker)
		if idx < 0 {
			return "", fmt.Errorf("unrecognised storage url %q", rawURL)
		}
		objectPath, err := url.PathUnescape(escaped[idx+len(marker):])
		if err != nil {
			return "", errors.Wrap(err, "ObjectPathFromURL: invalid object name")
		}
		return nonEmpty(objectPath)
	}
}

func nonEmpty(objectPath string) (string, error) {
	if objectPath == "" {
		return "", errors.New("empty object name")
	}
	return objectPath, nil
}

// MemoryBlobRepository keeps uploaded images in process memory.
type MemoryBlobRepository struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	now   func() time.Time
}

// MemoryBucket is the pseudo bucket name used in memory blob URLs.
const MemoryBucket = "memory"

func NewMemoryBlobRepository(now func() time.Time) *MemoryBlobRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryBlobRepository{blobs: make(map[string][]byte), now: now}
}

func (r *MemoryBlobRepository) Upload(_ context.Context, scopeID, filename, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", &domain.BlobError{Op: "upload", Err: err}
	}
	objectPath := BlobPath(scopeID, filename, r.now())

	r.mu.Lock()
	r.blobs[objectPath] = data
	r.mu.Unlock()

	return DownloadURL("memory://local", MemoryBucket, objectPath, uuid.New().String()), nil
}

// DeleteByURL removes the blob; unknown URLs are ignored.
func (r *MemoryBlobRepository) DeleteByURL(_ context.Context, rawURL string) error {
	objectPath, err := ObjectPathFromURL(rawURL, MemoryBucket)
	if err != nil {
		return nil
	}
	r.mu.Lock()
	delete(r.blobs, objectPath)
	r.mu.Unlock()
	return nil
}

// Open returns a reader over a stored blob.
func (r *MemoryBlobRepository) Open(rawURL string) (io.Reader, bool) {
	objectPath, err := ObjectPathFromURL(rawURL, MemoryBucket)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.blobs[objectPath]
	if !ok {
		return nil, false
	}
	return bytes.NewReader(data), true
}

// Len is the number of stored blobs.
func (r *MemoryBlobRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}

package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"talkmap/internal/backing"
	"talkmap/internal/domain"
	"talkmap/internal/logger"
	"talkmap/internal/repository"

	"github.com/sirupsen/logrus"
)

// Upload is one image file to store
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ImageService uploads and removes event images.
type ImageService struct {
	blobs repository.BlobRepository
	log   *logrus.Entry

	mu        sync.RWMutex
	uploading int
	progress  int
	err       string
}

func NewImageService(b backing.Backing, log *logrus.Entry) (*ImageService, error) {
	s := &ImageService{log: log.WithField(logger.FldBacking, b.Name())}
	switch b := b.(type) {
	case *backing.Remote:
		s.blobs = b.Blobs
	case *backing.Mock:
		s.blobs = b.Blobs
	default:
		return nil, fmt.Errorf("unsupported backing %T", b)
	}
	return s, nil
}

func (s *ImageService) Uploading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uploading > 0
}

// Progress is 0 while an upload runs and 100 once it finished.
func (s *ImageService) Progress() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

func (s *ImageService) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// UploadImage stores one file under the event and returns its URL.
func (s *ImageService) UploadImage(ctx context.Context, eventID string, file Upload) (string, error) {
	if eventID == "" || file.Filename == "" {
		err := domain.ErrValidation("event id and filename are required")
		s.record(err)
		return "", err
	}

	s.mu.Lock()
	s.uploading++
	s.progress = 0
	s.err = ""
	s.mu.Unlock()

	url, err := s.blobs.Upload(ctx, eventID, file.Filename, file.ContentType, file.Body)

	s.mu.Lock()
	s.uploading--
	if err != nil {
		s.err = err.Error()
	} else {
		s.progress = 100
	}
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).WithField(logger.FldEvent, eventID).Error("Image upload failed")
		return "", err
	}
	return url, nil
}

// UploadImages uploads files one after another. URLs keep the order of files;
// on failure the URLs uploaded so far are returned with the error.
func (s *ImageService) UploadImages(ctx context.Context, eventID string, files []Upload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.UploadImage(ctx, eventID, f)
		if err != nil {
			return urls, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// DeleteImage removes the blob behind url.
func (s *ImageService) DeleteImage(ctx context.Context, url string) error {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()

	if err := s.blobs.DeleteByURL(ctx, url); err != nil {
		s.record(err)
		s.log.WithError(err).Error("Image delete failed")
		return err
	}
	return nil
}

func (s *ImageService) record(err error) {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
}

package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"sync"

	"github.com/kendall-kelly/shower-configurator-api/utils"
)

// MockImageService is an in-memory ImageService for testing
type MockImageService struct {
	uploadedImages map[string][]byte // map of stored filename to file content
	limits         ImageLimits
	mu             sync.RWMutex
}

// NewMockImageService creates a new mock image service with the default upload limits
func NewMockImageService() *MockImageService {
	return &MockImageService{
		uploadedImages: make(map[string][]byte),
		limits:         ImageLimits{MaxBytes: utils.DefaultMaxFileSize},
	}
}

// SetAsMockForTesting sets this mock as the global image service instance for testing
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates the file exactly like the real backends and keeps it in memory
func (m *MockImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	img, err := prepareImage(fileHeader, m.limits)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.uploadedImages[img.Filename] = img.Content
	m.mu.Unlock()

	return utils.GetImageURL(img.Filename), nil
}

// ResolveImage returns a fake remote URL for a stored image
func (m *MockImageService) ResolveImage(ctx context.Context, filename string) (*StoredImage, error) {
	if !utils.IsSafeFilename(filename) {
		return nil, validationError("invalid filename")
	}

	m.mu.RLock()
	_, exists := m.uploadedImages[filename]
	m.mu.RUnlock()

	if !exists {
		return nil, notFoundError("image")
	}
	return &StoredImage{
		RemoteURL:   "https://test-bucket.s3.us-east-1.amazonaws.com/uploads/" + filename + "?mock=true",
		ContentType: utils.ContentTypeForExt(filepath.Ext(filename)),
	}, nil
}

// DeleteImage removes an image from mock storage
func (m *MockImageService) DeleteImage(ctx context.Context, imagePath string) error {
	filename := utils.FilenameFromURL(imagePath)
	if filename == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedImages, filename)
	m.mu.Unlock()
	return nil
}

// GetUploadedImages returns all uploaded images (for testing assertions)
func (m *MockImageService) GetUploadedImages() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent race conditions
	images := make(map[string][]byte, len(m.uploadedImages))
	for k, v := range m.uploadedImages {
		images[k] = v
	}
	return images
}

// ImageExists checks if an image exists in mock storage
func (m *MockImageService) ImageExists(filename string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedImages[filename]
	return exists
}

// Clear removes all images from mock storage
func (m *MockImageService) Clear() {
	m.mu.Lock()
	m.uploadedImages = make(map[string][]byte)
	m.mu.Unlock()
}

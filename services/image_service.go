package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/kendall-kelly/shower-configurator-api/config"
	"github.com/kendall-kelly/shower-configurator-api/utils"
	"go.uber.org/zap"
)

// StoredImage locates a stored image: either a file on local disk or a remote URL
type StoredImage struct {
	LocalPath   string
	RemoteURL   string
	ContentType string
}

// ImageService handles all image-related operations including upload, retrieval, and deletion
type ImageService interface {
	// UploadImage validates and stores an image file, returns its public path (/uploads/<name>)
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)

	// ResolveImage locates the stored image with the given filename
	ResolveImage(ctx context.Context, filename string) (*StoredImage, error)

	// DeleteImage removes the image behind a public path
	DeleteImage(ctx context.Context, imagePath string) error
}

// ImageLimits are the upload constraints shared by every backend
type ImageLimits struct {
	MaxBytes int64
	MaxWidth uint
}

var imageServiceInstance ImageService

// InitImageService builds the configured image backend and stores it as the process-wide instance
func InitImageService(ctx context.Context, cfg *config.Config) (ImageService, error) {
	limits := ImageLimits{MaxBytes: cfg.MaxUploadBytes, MaxWidth: cfg.ImageMaxWidth}

	switch cfg.ImageStorage {
	case "s3":
		s3Service, err := NewS3Service(ctx, cfg)
		if err != nil {
			return nil, err
		}
		imageServiceInstance = NewS3ImageService(s3Service, limits)
	case "local", "":
		imageServiceInstance = NewLocalImageService(cfg.UploadDir, limits)
	default:
		return nil, fmt.Errorf("unsupported image storage %q", cfg.ImageStorage)
	}

	zap.L().Info("Image storage initialized", zap.String("backend", cfg.ImageStorage))
	return imageServiceInstance, nil
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// LocalImageService stores images in a directory on local disk
type LocalImageService struct {
	dir    string
	limits ImageLimits
}

// NewLocalImageService creates a local disk backend rooted at dir
func NewLocalImageService(dir string, limits ImageLimits) *LocalImageService {
	if dir == "" {
		dir = utils.UploadDir
	}
	return &LocalImageService{dir: dir, limits: limits}
}

// UploadImage validates the file and writes it under a unique name
func (s *LocalImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	img, err := prepareImage(fileHeader, s.limits)
	if err != nil {
		return "", err
	}

	filename, err := utils.SaveImage(img, s.dir)
	if err != nil {
		return "", err
	}

	zap.L().Info("Image stored", zap.String("backend", "local"), zap.String("filename", filename))
	return utils.GetImageURL(filename), nil
}

// ResolveImage returns the local path of a stored image
func (s *LocalImageService) ResolveImage(ctx context.Context, filename string) (*StoredImage, error) {
	if !utils.IsSafeFilename(filename) {
		return nil, validationError("invalid filename")
	}

	fullPath := filepath.Join(s.dir, filename)
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return nil, notFoundError("image")
	}

	return &StoredImage{
		LocalPath:   fullPath,
		ContentType: utils.ContentTypeForExt(filepath.Ext(filename)),
	}, nil
}

// DeleteImage removes a stored file; paths outside the upload prefix are ignored
func (s *LocalImageService) DeleteImage(ctx context.Context, imagePath string) error {
	filename := utils.FilenameFromURL(imagePath)
	if filename == "" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
	limits    ImageLimits
}

// NewS3ImageService creates an S3 backend over s3Service
func NewS3ImageService(s3Service S3Interface, limits ImageLimits) *S3ImageService {
	return &S3ImageService{s3Service: s3Service, limits: limits}
}

// UploadImage validates the file and uploads it under uploads/<unique name>
func (s *S3ImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	img, err := prepareImage(fileHeader, s.limits)
	if err != nil {
		return "", err
	}

	if err := s.s3Service.PutObject(ctx, s3Key(img.Filename), img.Content, img.ContentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	zap.L().Info("Image stored", zap.String("backend", "s3"), zap.String("filename", img.Filename))
	return utils.GetImageURL(img.Filename), nil
}

// ResolveImage generates a presigned URL for a stored image
func (s *S3ImageService) ResolveImage(ctx context.Context, filename string) (*StoredImage, error) {
	if !utils.IsSafeFilename(filename) {
		return nil, validationError("invalid filename")
	}

	url, err := s.s3Service.GetPresignedURL(ctx, s3Key(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to generate image URL: %w", err)
	}

	return &StoredImage{
		RemoteURL:   url,
		ContentType: utils.ContentTypeForExt(filepath.Ext(filename)),
	}, nil
}

// DeleteImage deletes an image from S3
func (s *S3ImageService) DeleteImage(ctx context.Context, imagePath string) error {
	filename := utils.FilenameFromURL(imagePath)
	if filename == "" {
		return nil
	}

	if err := s.s3Service.DeleteObject(ctx, s3Key(filename)); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func s3Key(filename string) string {
	return "uploads/" + filename
}

// prepareImage runs upload validation and maps validation failures onto service errors
func prepareImage(fileHeader *multipart.FileHeader, limits ImageLimits) (*utils.PreparedImage, error) {
	img, err := utils.PrepareImage(fileHeader, limits.MaxBytes, limits.MaxWidth)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			return nil, &Error{Kind: KindValidation, Code: uploadErr.Code, Message: uploadErr.Message}
		}
		return nil, err
	}
	return img, nil
}

package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultMaxFileSize is 4MB in bytes
	DefaultMaxFileSize = 4 * 1024 * 1024
	// URLPrefix is the public path under which stored images are served
	URLPrefix = "/uploads/"
)

// AllowedImageExtensions lists the accepted upload extensions (lowercase, with dot)
var AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

var (
	// UploadDir is the directory where uploaded files are stored
	// Can be overridden for testing
	UploadDir = "./uploads"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// PreparedImage is a validated upload ready to be written to storage
type PreparedImage struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ValidateImageFile validates the uploaded file format and size.
// A maxSize of zero or less means DefaultMaxFileSize.
func ValidateImageFile(fileHeader *multipart.FileHeader, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	if fileHeader == nil || fileHeader.Filename == "" {
		return &FileUploadError{
			Code:    "NO_FILE",
			Message: "No file selected",
		}
	}

	// Check file size
	if fileHeader.Size > maxSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %s", formatSize(maxSize)),
		}
	}

	// Check file extension
	if !IsAllowedImage(fileHeader.Filename) {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", strings.Join(AllowedImageExtensions, ", ")),
		}
	}

	return nil
}

// IsAllowedImage reports whether filename has an accepted image extension (case-insensitive)
func IsAllowedImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// SanitizeFilename reduces an uploaded filename to a safe base name made of
// letters, digits, dots, dashes and underscores
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	cleaned := b.String()
	for strings.Contains(cleaned, "..") {
		cleaned = strings.ReplaceAll(cleaned, "..", ".")
	}
	cleaned = strings.TrimLeft(cleaned, "._")
	if cleaned == "" {
		cleaned = "image"
	}
	return cleaned
}

// UniqueFilename prefixes the sanitized name with a random hex token so that
// uploads of identically named files never collide
func UniqueFilename(original string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return token + "_" + SanitizeFilename(original)
}

// IsSafeFilename reports whether name is a plain file name with no path components
func IsSafeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}

// PrepareImage validates the upload, reads it, downscales it to maxWidth when
// requested and picks the stored filename
func PrepareImage(fileHeader *multipart.FileHeader, maxSize int64, maxWidth uint) (*PreparedImage, error) {
	if err := ValidateImageFile(fileHeader, maxSize); err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			zap.L().Warn("Failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	content = DownscaleImage(content, ext, maxWidth)

	return &PreparedImage{
		Filename:    UniqueFilename(fileHeader.Filename),
		ContentType: ContentTypeForExt(ext),
		Content:     content,
	}, nil
}

// SaveImage writes a prepared image into uploadDir and returns its filename
func SaveImage(img *PreparedImage, uploadDir string) (string, error) {
	// Create uploads directory if it doesn't exist
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fullPath := filepath.Join(uploadDir, img.Filename)
	if err := os.WriteFile(fullPath, img.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return img.Filename, nil
}

// ContentTypeForExt maps an image extension to its MIME type
func ContentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}

// GetImageURL returns the URL path for accessing the uploaded image
func GetImageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return URLPrefix + filename
}

// FilenameFromURL is the inverse of GetImageURL; it returns "" for paths outside URLPrefix
func FilenameFromURL(imagePath string) string {
	if !strings.HasPrefix(imagePath, URLPrefix) {
		return ""
	}
	name := strings.TrimPrefix(imagePath, URLPrefix)
	if !IsSafeFilename(name) {
		return ""
	}
	return name
}

func formatSize(bytes int64) string {
	if bytes%(1024*1024) == 0 {
		return fmt.Sprintf("%d MB", bytes/(1024*1024))
	}
	return fmt.Sprintf("%d bytes", bytes)
}

package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kendall-kelly/shower-configurator-api/tests/testutil"
	"github.com/kendall-kelly/shower-configurator-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageService_UploadResolveDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc := NewLocalImageService(dir, ImageLimits{MaxBytes: utils.DefaultMaxFileSize})

	content := testutil.PNGBytes(t, 4, 4)
	path, err := svc.UploadImage(ctx, testutil.FileHeader(t, "file", "shower.png", content))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, utils.URLPrefix))
	assert.True(t, strings.HasSuffix(path, "_shower.png"))

	filename := utils.FilenameFromURL(path)
	stored, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	resolved, err := svc.ResolveImage(ctx, filename)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, filename), resolved.LocalPath)
	assert.Empty(t, resolved.RemoteURL)
	assert.Equal(t, "image/png", resolved.ContentType)

	require.NoError(t, svc.DeleteImage(ctx, path))
	_, err = svc.ResolveImage(ctx, filename)
	requireKind(t, err, KindNotFound)

	require.NoError(t, svc.DeleteImage(ctx, path), "deleting twice is not an error")
	require.NoError(t, svc.DeleteImage(ctx, "https://elsewhere.example/x.png"))
}

func TestLocalImageService_SameNameTwice(t *testing.T) {
	ctx := context.Background()
	svc := NewLocalImageService(t.TempDir(), ImageLimits{})

	content := []byte("jpeg bytes")
	first, err := svc.UploadImage(ctx, testutil.FileHeader(t, "file", "photo.jpg", content))
	require.NoError(t, err)
	second, err := svc.UploadImage(ctx, testutil.FileHeader(t, "file", "photo.jpg", content))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for _, p := range []string{first, second} {
		_, err := svc.ResolveImage(ctx, utils.FilenameFromURL(p))
		assert.NoError(t, err)
	}
}

func TestLocalImageService_Rejections(t *testing.T) {
	ctx := context.Background()
	svc := NewLocalImageService(t.TempDir(), ImageLimits{MaxBytes: 8})

	_, err := svc.UploadImage(ctx, testutil.FileHeader(t, "file", "notes.txt", []byte("x")))
	requireKind(t, err, KindValidation)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "INVALID_FILE_FORMAT", svcErr.Code)

	_, err = svc.UploadImage(ctx, testutil.FileHeader(t, "file", "big.png", []byte("more than eight bytes")))
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "FILE_TOO_LARGE", svcErr.Code)

	_, err = svc.UploadImage(ctx, nil)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "NO_FILE", svcErr.Code)

	_, err = svc.ResolveImage(ctx, "../etc/passwd")
	requireKind(t, err, KindValidation)
}

func TestLocalImageService_DownscalesWideImages(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc := NewLocalImageService(dir, ImageLimits{MaxWidth: 10})

	original := testutil.PNGBytes(t, 40, 20)
	path, err := svc.UploadImage(ctx, testutil.FileHeader(t, "file", "wide.png", original))
	require.NoError(t, err)

	stored, err := os.ReadFile(filepath.Join(dir, utils.FilenameFromURL(path)))
	require.NoError(t, err)
	assert.NotEqual(t, original, stored)
}

func TestS3ImageService_WithMockClient(t *testing.T) {
	ctx := context.Background()
	s3 := NewMockS3Service()
	svc := NewS3ImageService(s3, ImageLimits{})

	content := []byte("gif bytes")
	path, err := svc.UploadImage(ctx, testutil.FileHeader(t, "file", "anim.gif", content))
	require.NoError(t, err)

	filename := utils.FilenameFromURL(path)
	key := "uploads/" + filename
	assert.Equal(t, content, s3.Objects()[key])
	assert.Equal(t, "image/gif", s3.ContentType(key))

	resolved, err := svc.ResolveImage(ctx, filename)
	require.NoError(t, err)
	assert.Equal(t, "https://test-bucket.s3.us-east-1.amazonaws.com/"+key+"?mock=true", resolved.RemoteURL)
	assert.Empty(t, resolved.LocalPath)

	require.NoError(t, svc.DeleteImage(ctx, path))
	assert.Empty(t, s3.Objects())

	_, err = svc.ResolveImage(ctx, filename)
	assert.Error(t, err)

	_, err = svc.ResolveImage(ctx, "a/b.png")
	requireKind(t, err, KindValidation)
}

func TestMockImageService(t *testing.T) {
	ctx := context.Background()
	mock := NewMockImageService()

	path, err := mock.UploadImage(ctx, testutil.FileHeader(t, "image", "door.jpeg", []byte("jpeg")))
	require.NoError(t, err)
	filename := utils.FilenameFromURL(path)
	assert.True(t, mock.ImageExists(filename))
	assert.Len(t, mock.GetUploadedImages(), 1)

	resolved, err := mock.ResolveImage(ctx, filename)
	require.NoError(t, err)
	assert.Contains(t, resolved.RemoteURL, "?mock=true")
	assert.Equal(t, "image/jpeg", resolved.ContentType)

	_, err = mock.ResolveImage(ctx, "missing.png")
	requireKind(t, err, KindNotFound)

	require.NoError(t, mock.DeleteImage(ctx, path))
	assert.False(t, mock.ImageExists(filename))

	_, err = mock.UploadImage(ctx, testutil.FileHeader(t, "image", "door.bmp", []byte("bmp")))
	requireKind(t, err, KindValidation)

	mock.Clear()
	assert.Empty(t, mock.GetUploadedImages())
}

func TestInitImageService(t *testing.T) {
	previous := GetImageService()
	t.Cleanup(func() { SetImageService(previous) })

	cfg := testutil.TestConfig(t.TempDir())
	svc, err := InitImageService(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &LocalImageService{}, svc)
	assert.Same(t, svc, GetImageService())

	cfg.ImageStorage = "ftp"
	_, err = InitImageService(context.Background(), cfg)
	assert.Error(t, err)
}

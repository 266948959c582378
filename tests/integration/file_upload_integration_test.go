package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"github.com/kendall-kelly/shower-configurator-api/services"
	"github.com/kendall-kelly/shower-configurator-api/tests/testutil"
	"github.com/kendall-kelly/shower-configurator-api/utils"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var uploadPath = regexp.MustCompile(`^/uploads/[0-9a-f]{32}_photo\.jpg$`)

// FileUploadIntegrationTestSuite covers image ingest through the HTTP surface
type FileUploadIntegrationTestSuite struct {
	apiSuite
	token string
}

func (s *FileUploadIntegrationTestSuite) SetupTest() {
	s.apiSuite.SetupTest()
	s.token = s.login()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 90, G: 140, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func (s *FileUploadIntegrationTestSuite) uploadPhoto(content []byte) string {
	body, contentType := testutil.MultipartFile(s.T(), "file", "photo.jpg", content, nil)
	w, resp := s.upload(http.MethodPost, "/api/upload-image", body, contentType, s.token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Require().True(resp.Success)
	return resp.ImagePath
}

func (s *FileUploadIntegrationTestSuite) TestSameFilenameTwiceYieldsDistinctPaths() {
	content := jpegBytes(s.T())

	first := s.uploadPhoto(content)
	second := s.uploadPhoto(content)

	s.Regexp(uploadPath, first)
	s.Regexp(uploadPath, second)
	s.NotEqual(first, second)

	for _, path := range []string{first, second} {
		w, _ := s.request(http.MethodGet, path, "", "")
		s.Equal(http.StatusOK, w.Code, path)
		s.Equal("image/jpeg", w.Header().Get("Content-Type"))
		s.Equal(content, w.Body.Bytes())

		_, err := os.Stat(filepath.Join(s.cfg.UploadDir, utils.FilenameFromURL(path)))
		s.NoError(err)
	}
}

func (s *FileUploadIntegrationTestSuite) TestUploadRequiresToken() {
	body, contentType := testutil.MultipartFile(s.T(), "file", "photo.jpg", jpegBytes(s.T()), nil)
	w, _ := s.upload(http.MethodPost, "/api/upload-image", body, contentType, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	entries, err := os.ReadDir(s.cfg.UploadDir)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *FileUploadIntegrationTestSuite) TestRejectedUploads() {
	body, contentType := testutil.MultipartFile(s.T(), "file", "notes.pdf", []byte("%PDF-1.4"), nil)
	w, resp := s.upload(http.MethodPost, "/api/upload-image", body, contentType, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_FILE_FORMAT", resp.Error.Code)

	body, contentType = testutil.MultipartFile(s.T(), "", "", nil, map[string]string{"description": "nothing"})
	w, resp = s.upload(http.MethodPost, "/api/upload-image", body, contentType, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("NO_FILE", resp.Error.Code)

	services.SetImageService(services.NewLocalImageService(s.cfg.UploadDir, services.ImageLimits{MaxBytes: 16}))
	body, contentType = testutil.MultipartFile(s.T(), "file", "photo.jpg", jpegBytes(s.T()), nil)
	w, resp = s.upload(http.MethodPost, "/api/upload-image", body, contentType, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("FILE_TOO_LARGE", resp.Error.Code)
}

func (s *FileUploadIntegrationTestSuite) TestShowerTypeImage() {
	showerTypeID := s.create("/api/shower-types", `{"name":"Walk-in"}`, s.token)

	body, contentType := testutil.MultipartFile(s.T(), "image", "photo.jpg", jpegBytes(s.T()), nil)
	w, resp := s.upload(http.MethodPost, fmt.Sprintf("/api/shower-types/%d/upload-image", showerTypeID), body, contentType, s.token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Regexp(uploadPath, resp.ImagePath)

	var showerType models.ShowerType
	s.Require().NoError(json.Unmarshal(resp.Data, &showerType))
	s.Require().NotNil(showerType.ImagePath)
	s.Equal(resp.ImagePath, *showerType.ImagePath)

	body, contentType = testutil.MultipartFile(s.T(), "image", "photo.jpg", jpegBytes(s.T()), nil)
	w, resp = s.upload(http.MethodPost, "/api/shower-types/999/upload-image", body, contentType, s.token)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", resp.Error.Code)
}

func (s *FileUploadIntegrationTestSuite) TestModelCreatedFromMultipartForm() {
	showerTypeID := s.create("/api/shower-types", `{"name":"Walk-in"}`, s.token)

	body, contentType := testutil.MultipartFile(s.T(), "image", "photo.jpg", jpegBytes(s.T()), map[string]string{
		"name":           "Walk-in 120",
		"description":    "Fixed panel",
		"shower_type_id": fmt.Sprint(showerTypeID),
	})
	w, resp := s.upload(http.MethodPost, "/api/models", body, contentType, s.token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var model models.Model
	s.Require().NoError(json.Unmarshal(resp.Data, &model))
	s.Equal("Walk-in 120", model.Name)
	s.Require().NotNil(model.ImagePath)
	s.Regexp(uploadPath, *model.ImagePath)

	w, _ = s.request(http.MethodGet, *model.ImagePath, "", "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *FileUploadIntegrationTestSuite) TestGalleryUpload() {
	body, contentType := testutil.MultipartFile(s.T(), "image", "photo.jpg", jpegBytes(s.T()), map[string]string{
		"description": "Finished bathroom",
	})
	w, resp := s.upload(http.MethodPost, "/api/gallery", body, contentType, s.token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var img models.GalleryImage
	s.Require().NoError(json.Unmarshal(resp.Data, &img))
	s.Regexp(uploadPath, img.ImagePath)
	s.Equal("Finished bathroom", img.Description)

	w, resp = s.request(http.MethodGet, "/api/gallery", "", "")
	s.Equal(http.StatusOK, w.Code)
	var list []models.GalleryImage
	s.Require().NoError(json.Unmarshal(resp.Data, &list))
	s.Len(list, 1)
}

func (s *FileUploadIntegrationTestSuite) TestFailedWritesKeepNoImage() {
	requests := []struct {
		method string
		path   string
		fields map[string]string
	}{
		{http.MethodPost, "/api/models", map[string]string{"name": "Ghost", "shower_type_id": "999"}},
		{http.MethodPut, "/api/models/999", map[string]string{"name": "Ghost"}},
		{http.MethodPut, "/api/gallery/999", map[string]string{"description": "Ghost"}},
	}
	for _, r := range requests {
		body, contentType := testutil.MultipartFile(s.T(), "image", "photo.jpg", jpegBytes(s.T()), r.fields)
		w, resp := s.upload(r.method, r.path, body, contentType, s.token)
		s.Equal(http.StatusNotFound, w.Code, r.method+" "+r.path)
		s.Equal("NOT_FOUND", resp.Error.Code)
	}

	entries, err := os.ReadDir(s.cfg.UploadDir)
	s.Require().NoError(err)
	s.Empty(entries)
	s.Zero(s.count(&models.Model{}))
}

func (s *FileUploadIntegrationTestSuite) TestDeletingGalleryImageRemovesFile() {
	body, contentType := testutil.MultipartFile(s.T(), "image", "photo.jpg", jpegBytes(s.T()), nil)
	w, resp := s.upload(http.MethodPost, "/api/gallery", body, contentType, s.token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var img models.GalleryImage
	s.Require().NoError(json.Unmarshal(resp.Data, &img))

	w, _ = s.request(http.MethodDelete, fmt.Sprintf("/api/gallery/%d", img.ID), "", s.token)
	s.Require().Equal(http.StatusOK, w.Code)

	w, _ = s.request(http.MethodGet, img.ImagePath, "", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func TestFileUploadIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FileUploadIntegrationTestSuite))
}

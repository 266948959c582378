package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/shower-configurator-api/config"
	"github.com/kendall-kelly/shower-configurator-api/routes"
	"github.com/kendall-kelly/shower-configurator-api/services"
	"github.com/kendall-kelly/shower-configurator-api/tests/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	adminUsername = "admin"
	adminPassword = "correct-horse"
)

// apiSuite serves the full router over a fresh in-memory database and local image storage
type apiSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    *config.Config
	db     *gorm.DB
}

// SetupTest runs before each test
func (s *apiSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(s.T())

	s.cfg, s.db = testutil.SetupTestApp(s.T())

	previous := services.GetImageService()
	s.T().Cleanup(func() { services.SetImageService(previous) })
	services.SetImageService(services.NewLocalImageService(s.cfg.UploadDir, services.ImageLimits{MaxBytes: s.cfg.MaxUploadBytes}))

	testutil.CreateAdmin(s.T(), s.db, adminUsername, adminPassword)
	s.router = routes.NewRouter(s.cfg, zap.NewNop())
}

// response is the common envelope of every JSON answer
type response struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Token     string          `json:"token"`
	ImagePath string          `json:"image_path"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *apiSuite) serve(req *http.Request, token string) (*httptest.ResponseRecorder, response) {
	if token != "" {
		req.Header.Set("Authorization", testutil.BearerHeader(token))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

// request sends a JSON request, authenticated when token is set
func (s *apiSuite) request(method, path, body, token string) (*httptest.ResponseRecorder, response) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req, token)
}

func (s *apiSuite) upload(method, path string, body io.Reader, contentType, token string) (*httptest.ResponseRecorder, response) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	return s.serve(req, token)
}

// login exchanges the suite admin's credentials for a token
func (s *apiSuite) login() string {
	w, resp := s.request(http.MethodPost, "/api/login", `{"username":"`+adminUsername+`","password":"`+adminPassword+`"}`, "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

// create posts body and returns the id of the created row
func (s *apiSuite) create(path, body, token string) uint {
	w, resp := s.request(http.MethodPost, path, body, token)
	s.Require().Equal(http.StatusCreated, w.Code, path+": "+w.Body.String())

	var row struct {
		ID uint `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &row))
	s.Require().NotZero(row.ID)
	return row.ID
}

func (s *apiSuite) count(model interface{}) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

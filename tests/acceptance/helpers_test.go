package acceptance

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
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

// serverSuite runs the complete API on a real HTTP listener
type serverSuite struct {
	suite.Suite
	server *httptest.Server
	cfg    *config.Config
	db     *gorm.DB
}

// SetupTest runs before each test
func (s *serverSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(s.T())

	s.cfg, s.db = testutil.SetupTestApp(s.T())

	previous := services.GetImageService()
	s.T().Cleanup(func() { services.SetImageService(previous) })
	services.SetImageService(services.NewLocalImageService(s.cfg.UploadDir, services.ImageLimits{MaxBytes: s.cfg.MaxUploadBytes}))

	s.server = httptest.NewServer(routes.NewRouter(s.cfg, zap.NewNop()))
	s.T().Cleanup(s.server.Close)
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Token     string          `json:"token"`
	ImagePath string          `json:"image_path"`
	Glass     json.RawMessage `json:"glass"`
	Hardware  json.RawMessage `json:"hardware"`
	Seal      json.RawMessage `json:"seal"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// call performs a request against the running server and decodes its JSON envelope
func (s *serverSuite) call(method, path string, body io.Reader, contentType, token string) (*http.Response, envelope) {
	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", testutil.BearerHeader(token))
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func (s *serverSuite) callJSON(method, path, body, token string) (*http.Response, envelope) {
	if body == "" {
		return s.call(method, path, nil, "", token)
	}
	return s.call(method, path, strings.NewReader(body), "application/json", token)
}

func (s *serverSuite) login(username, password string) string {
	testutil.CreateAdmin(s.T(), s.db, username, password)

	resp, env := s.callJSON(http.MethodPost, "/api/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().NotEmpty(env.Token)
	return env.Token
}

func (s *serverSuite) createdID(env envelope) uint {
	var row struct {
		ID uint `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &row))
	s.Require().NotZero(row.ID)
	return row.ID
}

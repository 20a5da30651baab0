package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/audioinfo/internal/config"
)

// testHelper bundles a router built from a test configuration.
type testHelper struct {
	Router   *gin.Engine
	Registry *prometheus.Registry
	Config   *config.Config
}

func newTestHelper(t *testing.T, maxSize int64) *testHelper {
	t.Helper()
	cfg := config.Default()
	cfg.Environment = "test"
	cfg.Server.AllowedOrigins = "http://localhost:5173"
	if maxSize > 0 {
		cfg.MaxUploadSize = maxSize
	}
	require.NoError(t, cfg.Validate())

	reg := prometheus.NewRegistry()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testHelper{
		Router:   SetupRouter(cfg, log, reg),
		Registry: reg,
		Config:   cfg,
	}
}

func (h *testHelper) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Router.ServeHTTP(w, req)
	return w
}

// postJSON sends body verbatim to /analyze-audio/.
func (h *testHelper) postJSON(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze-audio/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return h.do(req)
}

func (h *testHelper) postBase64(data []byte) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"audio": base64.StdEncoding.EncodeToString(data)})
	return h.postJSON(string(body))
}

// formPart is one file part of a multipart upload.
type formPart struct {
	field string
	data  []byte
}

// postFiles sends a multipart form with one part per entry in files.
func (h *testHelper) postFiles(t *testing.T, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	parts := make([]formPart, 0, len(files))
	for field, data := range files {
		parts = append(parts, formPart{field, data})
	}
	return h.postParts(t, parts...)
}

// postParts sends the parts in order, allowing repeated field names.
func (h *testHelper) postParts(t *testing.T, parts ...formPart) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		part, err := mw.CreateFormFile(p.field, p.field+".bin")
		require.NoError(t, err)
		_, err = part.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-binary-audio/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return h.do(req)
}

func decodeInfo(t *testing.T, w *httptest.ResponseRecorder) AudioInfo {
	t.Helper()
	var info AudioInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info), w.Body.String())
	return info
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body["error"]
}

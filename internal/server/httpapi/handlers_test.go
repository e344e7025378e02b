package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportclip/highlightd/internal/common"
	"github.com/sportclip/highlightd/internal/logging"
	"github.com/sportclip/highlightd/internal/server/analyzer"
	"github.com/sportclip/highlightd/internal/server/config"
	"github.com/sportclip/highlightd/internal/server/models"
	"github.com/sportclip/highlightd/internal/server/repositories/repomanager"
	"github.com/sportclip/highlightd/internal/server/services"
)

// contentProber parses the spooled file's content as a duration in seconds,
// letting tests choose the "video length" by upload body.
type contentProber struct{}

func (contentProber) Duration(ctx context.Context, videoPath string) (float64, error) {
	data, err := os.ReadFile(videoPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrorMediaUnreadable, err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not a duration", common.ErrorMediaUnreadable)
	}
	return duration, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.SpoolDir = t.TempDir()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	repos := repomanager.NewInMemoryRepositoryManager()

	accounts := services.NewAccountService(nil, repos, cfg)
	upload := services.NewUploadService(nil, repos, analyzer.NewRandomSampler(contentProber{}), nil, cfg, logger)
	query := services.NewQueryService(nil, repos, nil, logger)

	return NewServer(cfg.EndpointAddr, logger, accounts, upload, query, cfg.SecretKey, cfg.MaxUploadBytes)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doUpload(t *testing.T, h http.Handler, accountID, fileName, content, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if accountID != "" {
		require.NoError(t, mw.WriteField("accountId", accountID))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("video", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/videos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestEndToEndScenario(t *testing.T) {
	router := newTestServer(t).Router()

	// register alice
	rec := doJSON(t, router, http.MethodPost, "/api/register", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "alice", decodeBody(t, rec)["accountId"])

	// duplicate registration
	rec = doJSON(t, router, http.MethodPost, "/api/register", credentialsRequest{Username: "alice", Password: "pw1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// login with the right password
	rec = doJSON(t, router, http.MethodPost, "/api/login", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody(t, rec)
	assert.Equal(t, "alice", login["accountId"])
	assert.NotEmpty(t, login["accessToken"])

	// login with the wrong password
	rec = doJSON(t, router, http.MethodPost, "/api/login", credentialsRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// upload a 20-second video: 600 frames at 30 fps
	rec = doUpload(t, router, "alice", "match.mp4", "20", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var uploadResp struct {
		Highlights []models.HighlightInterval `json:"highlights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploadResp))
	require.Len(t, uploadResp.Highlights, 3)
	for _, iv := range uploadResp.Highlights {
		assert.GreaterOrEqual(t, iv.StartFrame, 1)
		assert.LessOrEqual(t, iv.EndFrame, 600)
		assert.GreaterOrEqual(t, iv.EndFrame-iv.StartFrame, 30)
		assert.LessOrEqual(t, iv.EndFrame-iv.StartFrame, 60)
	}

	// one record listed
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/highlights?accountId=alice", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listResp struct {
		Records []models.HighlightRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	require.Len(t, listResp.Records, 1)
	assert.Equal(t, "Highlights - match.mp4", listResp.Records[0].Title)

	// a 5-second video (150 frames) is too short, record count stays 1
	rec = doUpload(t, router, "alice", "short.mp4", "5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/highlights?accountId=alice", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Records, 1)
}

func TestRegisterValidation(t *testing.T) {
	router := newTestServer(t).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/register", credentialsRequest{Username: "", Password: "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadMissingAccount(t *testing.T) {
	router := newTestServer(t).Router()

	rec := doUpload(t, router, "ghost", "match.mp4", "20", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "unknown account")
}

func TestUploadMissingFile(t *testing.T) {
	router := newTestServer(t).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/register", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doUpload(t, router, "alice", "", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "no video file")
}

func TestUploadUnreadableMedia(t *testing.T) {
	router := newTestServer(t).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/register", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doUpload(t, router, "alice", "broken.mp4", "not a number", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUploadWithBearerToken(t *testing.T) {
	router := newTestServer(t).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/register", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/login", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["accessToken"].(string)

	// no explicit accountId field; the token identifies the account
	rec = doUpload(t, router, "", "match.mp4", "20", token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestInvalidBearerTokenRejected(t *testing.T) {
	router := newTestServer(t).Router()

	rec := doUpload(t, router, "alice", "match.mp4", "20", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListUnknownAccount(t *testing.T) {
	router := newTestServer(t).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/highlights?accountId=ghost", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMissingAccountID(t *testing.T) {
	router := newTestServer(t).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/highlights", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshFlow(t *testing.T) {
	router := newTestServer(t).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/register", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/login", credentialsRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	refreshToken := decodeBody(t, rec)["refreshToken"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/refresh", refreshRequest{RefreshToken: refreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["accessToken"])

	// rotated: the old refresh token no longer works
	rec = doJSON(t, router, http.MethodPost, "/api/refresh", refreshRequest{RefreshToken: refreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestServer(t).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

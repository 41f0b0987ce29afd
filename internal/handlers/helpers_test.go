// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go_4_vocab_review/internal/config"
	"go_4_vocab_review/internal/handlers"
	"go_4_vocab_review/internal/model"
	"go_4_vocab_review/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode      int
	ExpectedErrorCode string
}

// testConfig はテスト用の最小限の設定を返します。
func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = ":0"
	cfg.Database.Driver = config.DriverMemory
	cfg.Store.Capacity = config.DefaultStoreCapacity
	cfg.Review = config.ReviewConfig{LexicalSlots: 5, TopicSlots: 1}
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.CORS.AllowedMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	return cfg
}

// newTestServer は本番と同じルーターで httptest.Server を立てます。
func newTestServer(t *testing.T, svc service.CompanionService, health handlers.HealthCheck) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handlers.NewRouter(testLogger, testConfig(), svc, health))
	t.Cleanup(server.Close)
	return server
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch")

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	if expectations.ExpectedErrorCode != "" {
		verifyErrorResponse(t, respBodyBytes, expectations.ExpectedErrorCode)
	}
	return respBodyBytes
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()

	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "Error response body not valid JSON: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code)
	assert.NotEmpty(t, errResp.Error.Message)
}

func decodeBody[T any](t *testing.T, bodyBytes []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(bodyBytes, &v), "Failed to decode body: %s", string(bodyBytes))
	return v
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"savaan_backend/internal/app"
	"savaan_backend/internal/config"
	"savaan_backend/internal/logger"
	"savaan_backend/internal/otp"
	"savaan_backend/internal/repositories"
)

// TestServer runs the full HTTP stack over the in-memory store, so the tests
// exercise exactly what production serves without a database.
type TestServer struct {
	Server *httptest.Server
	Repo   repositories.UserRepository
	Issuer *otp.Issuer
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := testConfig()
	logger.Init(cfg.Server.Env)

	repo := repositories.NewMemoryUserRepository()
	issuer := otp.NewIssuer(cfg.OTP.TTL, cfg.OTP.ResendCooldown)
	router, _ := app.SetupRouter(cfg, repo, issuer)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &TestServer{Server: srv, Repo: repo, Issuer: issuer}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour
	cfg.OTP.TTL = 10 * time.Minute
	// No cooldown so tests can reissue codes freely.
	cfg.OTP.ResendCooldown = 0
	return cfg
}

// SendRequest performs an HTTP call against the test server and returns the
// response plus the decoded JSON body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	decoded := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response body %q: %v", raw, err)
		}
	}
	return res, decoded
}

// RegisterPayload returns a complete valid registration body. Callers tweak
// individual fields per test.
func RegisterPayload(suffix string) map[string]interface{} {
	return map[string]interface{}{
		"mobile":       "98765432" + suffix,
		"name":         "Ravi Kumar",
		"email":        "ravi.kumar" + suffix + "@gmail.com",
		"password":     "Secret@1",
		"gender":       "Male",
		"dob":          "1990-05-15",
		"aadhar":       "1234567890" + suffix,
		"pan":          "ABCDE12" + suffix + "F",
		"department":   "Education",
		"departmentId": "DEPT-" + suffix,
		"jobDescription": "Teacher",
		"block":          "Central",
		"post":           "Senior Teacher",
		"jobAddress":     "School Road 1",
		"pinCode":        "800001",
		"district":       "Patna",
		"firstNominee": map[string]interface{}{
			"name":      "Sita Kumar",
			"relation":  "Spouse",
			"mobile":    "9123456789",
			"bankName":  "SBI",
			"accountNo": "123456789012",
			"ifsc":      "SBIN0001234",
			"branch":    "Patna Main",
		},
		"homeAddress":  "Home Street 5",
		"homeDistrict": "Patna",
		"homePinCode":  "800002",
	}
}

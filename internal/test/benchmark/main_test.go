package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

// TestConfig holds the benchmark target settings
type TestConfig struct {
	BaseURL     string `json:"base_url"`
	AdminUser   string `json:"admin_user"`
	AdminPass   string `json:"admin_pass"`
	Concurrency int    `json:"concurrency"`
	Requests    int    `json:"requests"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
}

var (
	config          TestConfig
	authToken       string
	serverAvailable bool
)

func TestMain(m *testing.M) {
	if err := loadConfig(); err != nil {
		fmt.Printf("failed to load benchmark config: %v\n", err)
		os.Exit(1)
	}

	serverAvailable = probeServer()
	if serverAvailable {
		if err := getAuthToken(); err != nil {
			fmt.Printf("failed to obtain auth token: %v\n", err)
			serverAvailable = false
		}
	}

	os.Exit(m.Run())
}

// loadConfig reads test_config.json when present, otherwise uses defaults
func loadConfig() error {
	config = TestConfig{
		BaseURL:     "http://localhost:8080/api",
		AdminUser:   "admin",
		AdminPass:   "admin123!",
		Concurrency: 10,
		Requests:    100,
	}

	data, err := os.ReadFile("test_config.json")
	if err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse test_config.json: %v", err)
		}
	}

	return nil
}

// probeServer checks whether a server is reachable at the configured URL
func probeServer() bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(config.BaseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// getAuthToken signs in as the admin and stores the bearer token
func getAuthToken() error {
	body, err := json.Marshal(loginRequest{
		Username: config.AdminUser,
		Password: config.AdminPass,
	})
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(config.BaseURL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return err
	}
	if login.Data.Token == "" {
		return fmt.Errorf("login did not return a token: %s", login.Message)
	}

	authToken = login.Data.Token
	return nil
}

func requireServer(t *testing.T) {
	t.Helper()
	if !serverAvailable {
		t.Skip("no server reachable at " + config.BaseURL)
	}
}

func TestResidentList(t *testing.T) {
	requireServer(t)

	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/residents")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("resident listing: success rate %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

func TestDocumentList(t *testing.T) {
	requireServer(t)

	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/documents")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("document listing: success rate %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

func TestDocumentTypeList(t *testing.T) {
	requireServer(t)

	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/document-types")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("document type listing: success rate %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

func TestDashboard(t *testing.T) {
	requireServer(t)

	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/dashboard")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("dashboard: success rate %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

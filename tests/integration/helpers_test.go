//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

type question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   string `json:"category"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

func makeRequest(t *testing.T, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, baseURL()+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func expectError(t *testing.T, resp *http.Response, status int, message string) {
	t.Helper()
	if resp.StatusCode != status {
		resp.Body.Close()
		t.Fatalf("expected %d, got %d", status, resp.StatusCode)
	}
	var env errorEnvelope
	decodeBody(t, resp, &env)
	if env.Success || env.Error != status || env.Message != message {
		t.Fatalf("unexpected error envelope: %+v", env)
	}
}

// createQuestion stores a uniquely worded question and returns its text.
func createQuestion(t *testing.T, categoryID int) string {
	t.Helper()
	text := fmt.Sprintf("integration question %d", time.Now().UnixNano())
	resp := makeRequest(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   text,
		"answer":     "integration answer",
		"difficulty": 2,
		"category":   categoryID,
	})
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("create question: unexpected status %d", resp.StatusCode)
	}
	var out struct {
		Success bool `json:"success"`
	}
	decodeBody(t, resp, &out)
	if !out.Success {
		t.Fatal("create question did not report success")
	}
	return text
}

// findQuestion searches for text and returns the single match.
func findQuestion(t *testing.T, text string) question {
	t.Helper()
	resp := makeRequest(t, http.MethodPost, "/questions", map[string]string{"searchTerm": text})
	var out struct {
		Questions      []question `json:"questions"`
		TotalQuestions int        `json:"totalQuestions"`
	}
	decodeBody(t, resp, &out)
	if out.TotalQuestions != 1 || len(out.Questions) != 1 {
		t.Fatalf("expected exactly one match for %q, got %d", text, out.TotalQuestions)
	}
	return out.Questions[0]
}

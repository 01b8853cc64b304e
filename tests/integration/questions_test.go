//go:build integration
// +build integration

package integration

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestCategoriesSeeded(t *testing.T) {
	resp := makeRequest(t, http.MethodGet, "/categories", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
	var out struct {
		Categories map[string]string `json:"categories"`
	}
	decodeBody(t, resp, &out)

	if out.Categories["1"] != "Science" {
		t.Fatalf("expected category 1 to be Science, got %q", out.Categories["1"])
	}
	if len(out.Categories) < 6 {
		t.Fatalf("expected at least 6 categories, got %d", len(out.Categories))
	}
}

func TestCreateSearchDeleteFlow(t *testing.T) {
	text := createQuestion(t, 1)

	created := findQuestion(t, text)
	if created.Category != "Science" {
		t.Fatalf("expected category type Science, got %q", created.Category)
	}

	resp := makeRequest(t, http.MethodGet, "/categories/1/questions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list by category: unexpected status %d", resp.StatusCode)
	}
	var byCategory struct {
		TotalQuestions  int    `json:"totalQuestions"`
		CurrentCategory string `json:"currentCategory"`
	}
	decodeBody(t, resp, &byCategory)
	if byCategory.TotalQuestions < 1 || byCategory.CurrentCategory != "Science" {
		t.Fatalf("unexpected category listing: %+v", byCategory)
	}

	path := fmt.Sprintf("/questions/%d", created.ID)
	resp = makeRequest(t, http.MethodDelete, path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: unexpected status %d", resp.StatusCode)
	}
	var deleted struct {
		Deleted int `json:"deleted"`
	}
	decodeBody(t, resp, &deleted)
	if deleted.Deleted != created.ID {
		t.Fatalf("expected deleted id %d, got %d", created.ID, deleted.Deleted)
	}

	expectError(t, makeRequest(t, http.MethodDelete, path, nil), http.StatusNotFound, "resource not found")
}

func TestPageOutOfRange(t *testing.T) {
	expectError(t, makeRequest(t, http.MethodGet, "/questions?page=100000", nil), http.StatusNotFound, "resource not found")
}

func TestCreateMissingFields(t *testing.T) {
	resp := makeRequest(t, http.MethodPost, "/questions", map[string]interface{}{
		"question": "no answer given",
		"category": 1,
	})
	expectError(t, resp, http.StatusBadRequest, "bad request")
}

func TestMethodNotAllowed(t *testing.T) {
	expectError(t, makeRequest(t, http.MethodPatch, "/questions/1", nil), http.StatusMethodNotAllowed, "method not allowed")
}

func TestExportCSV(t *testing.T) {
	text := createQuestion(t, 2)

	resp := makeRequest(t, http.MethodGet, "/questions/export?format=csv&category=2", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: unexpected status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(raw), text) {
		t.Fatalf("export does not contain %q", text)
	}
}

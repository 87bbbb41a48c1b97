package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestAssetServerServesFiles(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "Paatham")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(folder, "Single(Rs_150).jpg"), []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	server := NewAssetServer(dir)

	req := httptest.NewRequest(http.MethodGet, "/Paatham/Single(Rs_150).jpg", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Body.String() != "jpeg-bytes" {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if cc := rr.Header().Get("Cache-Control"); cc == "" {
		t.Fatalf("missing Cache-Control header")
	}
}

func TestAssetServerRejectsDirectoriesAndTraversal(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Paatham"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	server := NewAssetServer(dir)

	for _, path := range []string{"/", "/Paatham/", "/../etc/passwd"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want 404", path, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/Paatham/x.jpg", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want 405", rr.Code)
	}
}

package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
)

// AssetServer serves the product image tree from disk. Directory listings
// are disabled and unknown paths fall through to 404 so the client's
// image-error callback fires and the placeholder takes over.
type AssetServer struct {
	root  http.Dir
	files http.Handler
}

// NewAssetServer constructs a static file server rooted at dir.
func NewAssetServer(dir string) *AssetServer {
	root := http.Dir(dir)
	return &AssetServer{root: root, files: http.FileServer(root)}
}

func (s *AssetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	clean := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if clean == "." || strings.HasPrefix(clean, "..") {
		http.NotFound(w, r)
		return
	}
	f, err := s.root.Open(clean)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	info, err := f.Stat()
	f.Close()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	// Product images are immutable: price changes rename the file.
	w.Header().Set("Cache-Control", "public, max-age=86400")
	s.files.ServeHTTP(w, r)
}

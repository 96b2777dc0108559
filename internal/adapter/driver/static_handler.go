package driver

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// StaticHandler serves the page's static assets from a filesystem.
// Directories are not listed.
type StaticHandler struct {
	fileSystem fs.FS
	fileServer http.Handler
}

// NewStaticHandler creates a new handler serving files from fsys.
func NewStaticHandler(fsys fs.FS) *StaticHandler {
	return &StaticHandler{
		fileSystem: fsys,
		fileServer: http.FileServer(http.FS(fsys)),
	}
}

// ServeHTTP serves a static file if it exists, otherwise 404.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Strip leading slash for fs.Stat
	filePath := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")

	info, err := fs.Stat(h.fileSystem, filePath)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	// Assets are not content-hashed, so they are cached briefly.
	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.fileServer.ServeHTTP(w, r)
}

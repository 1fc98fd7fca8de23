package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// serveUpload serves files from the legacy local uploads directory.
// Records created before the object-store migration still reference
// /uploads/<name> URLs.
func (h *Handler) serveUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}

	// images are embedded cross-origin by the frontend
	w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
	http.ServeFile(w, r, filepath.Join(h.uploadsDir, filepath.Clean("/"+name)))
}

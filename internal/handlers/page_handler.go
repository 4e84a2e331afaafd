package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/common"
)

// PageHandler serves the single-page front end
type PageHandler struct {
	logger    arbor.ILogger
	webDir    string
	templates *template.Template
}

// NewPageHandler parses index.html from webDir. A missing template is logged and
// the index route then answers 404; the API keeps working.
func NewPageHandler(webDir string, logger arbor.ILogger) *PageHandler {
	dir := findWebDir(webDir)
	h := &PageHandler{
		logger: logger,
		webDir: dir,
	}

	templates, err := template.ParseFiles(filepath.Join(dir, "index.html"))
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("Front end template not found")
		return h
	}
	h.templates = templates
	return h
}

// findWebDir returns the configured dir if it exists, otherwise the first common location that does
func findWebDir(configured string) string {
	dirs := []string{
		configured,
		"./web",     // Running from project root
		"../web",    // Running from bin/
		"../../web", // Running from deeper location
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err == nil {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return configured
}

// IndexHandler renders index.html
func (h *PageHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if h.templates == nil {
		WriteError(w, http.StatusNotFound, msgResourceNotFound)
		return
	}

	data := map[string]interface{}{
		"Version": common.GetVersion(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error().
			Err(err).
			Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// StaticFileHandler serves static files (CSS, JS, images) from webDir/static
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	staticDir := filepath.Join(h.webDir, "static")

	path := strings.TrimPrefix(r.URL.Path, "/static/")
	fullPath := filepath.Join(staticDir, filepath.FromSlash(path))

	// Prevent directory traversal
	rel, err := filepath.Rel(staticDir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		WriteError(w, http.StatusNotFound, msgResourceNotFound)
		return
	}

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		WriteError(w, http.StatusNotFound, msgResourceNotFound)
		return
	}

	http.ServeFile(w, r, fullPath)
}

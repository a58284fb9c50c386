package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/stylepub/internal/version"
)

const readmePage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>README</title></head>
<body>
%s
</body>
</html>`

// handleReadme renders the README as HTML.
func (s *Server) handleReadme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := os.ReadFile(s.opts.ReadmePath)
	if err != nil {
		http.Error(w, "README not found", http.StatusNotFound)
		return
	}

	var rendered bytes.Buffer
	if err := goldmark.Convert(body, &rendered); err != nil {
		http.Error(w, "failed to render README", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, readmePage, rendered.String())
}

type fileEntry struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Dir   bool   `json:"dir"`
}

// handleFiles lists the docs directory with humanized titles.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := os.ReadDir(s.opts.DocsDir)
	if err != nil {
		http.Error(w, "docs directory not readable", http.StatusInternalServerError)
		return
	}

	titleCaser := cases.Title(language.English)
	files := make([]fileEntry, 0, len(entries))
	for _, entry := range entries {
		files = append(files, fileEntry{
			Name:  entry.Name(),
			Title: humanizeTitle(titleCaser, entry.Name()),
			Dir:   entry.IsDir(),
		})
	}

	writeJSON(w, http.StatusOK, files)
}

// humanizeTitle turns a file name like "color-palette.html" into "Color Palette".
func humanizeTitle(caser cases.Caser, name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return caser.String(base)
}

type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// handleHealth handles the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		Version:       version.Version,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

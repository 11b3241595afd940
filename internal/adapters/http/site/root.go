// Package site serves the embedded front end and the root redirect.
package site

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"
)

// Error constants
var (
	ErrServe = errors.New("static site serve failed")
)

// IndexPath is where GET / sends browsers.
const IndexPath = "/static/index.html"

// started stands in for the modification time of embedded files, which
// embed.FS reports as zero.
var started = time.Now()

// Register attaches the root redirect and /static/ routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	h := NewRootHandler()
	mux.HandleFunc("GET /{$}", h.HandleRoot)
	mux.HandleFunc("GET /static/{path...}", h.HandleStatic)
}

// RootHandler serves the landing redirect and embedded assets.
type RootHandler struct {
	files fs.FS
}

// NewRootHandler creates a new root handler over the embedded assets.
func NewRootHandler() *RootHandler {
	return &RootHandler{files: FS()}
}

// HandleRoot handles GET / by redirecting to the landing page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// HandleStatic handles GET /static/{path...}. Unlike http.FileServer it
// serves index.html under its own name instead of redirecting to the directory.
func (h *RootHandler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("path")
	if name == "" {
		name = "index.html"
	}
	if !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	f, err := h.files.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, info.Name(), started, rs)
}

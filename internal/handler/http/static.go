package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

const indexFile = "index.html"

// serveShell serves the application shell from staticDir. /index.html is
// answered directly instead of being redirected to / the way
// [http.FileServer] does, so both asset URLs cache as 200 responses.
func (h *Handler) serveShell() http.HandlerFunc {
	files := http.FileServer(http.Dir(h.staticDir))

	return func(w http.ResponseWriter, r *http.Request) {
		if path.Clean(r.URL.Path) != "/"+indexFile {
			files.ServeHTTP(w, r)
			return
		}

		f, err := os.Open(filepath.Join(h.staticDir, indexFile))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			http.Error(w, "error reading shell", http.StatusInternalServerError)
			return
		}

		http.ServeContent(w, r, indexFile, info.ModTime(), f)
	}
}

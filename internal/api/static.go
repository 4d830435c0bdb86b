// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package api

import (
	"net/http"
	"path"
	"strings"
)

// staticRoot is the on-disk directory holding the frontend bundle.
const staticRoot = "./web"

// serveStaticOrIndex serves files from the web directory, falling back to
// index.html for unknown paths so the single-page frontend handles its own
// routing. Directory listings are never served.
func (router *Router) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	p := path.Clean(r.URL.Path)
	if strings.Contains(p, "..") {
		http.NotFound(w, r)
		return
	}
	if p == "/" {
		http.ServeFile(w, r, staticRoot+"/index.html")
		return
	}

	f, err := http.Dir(staticRoot).Open(p)
	if err != nil {
		http.ServeFile(w, r, staticRoot+"/index.html")
		return
	}
	info, err := f.Stat()
	closeErr := f.Close()
	if err != nil || closeErr != nil || info.IsDir() {
		http.ServeFile(w, r, staticRoot+"/index.html")
		return
	}

	http.ServeFile(w, r, staticRoot+p)
}

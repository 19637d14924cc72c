package server

import (
	"net/http"
	"strconv"
	"sync/atomic"

	"flo.znkr.io/tabdiff/report"
	"github.com/rs/zerolog"
)

type handler struct {
	site atomic.Pointer[report.Site]
	log  zerolog.Logger
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s := h.site.Load()

	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	doc := s.Doc(req.URL.EscapedPath())
	if doc == nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		if req.Method == http.MethodGet {
			w.Write([]byte("not found"))
		}
		h.log.Debug().Str("path", req.URL.EscapedPath()).Msg("not found")
		return
	}

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return
	}

	if _, err := w.Write(doc.Data); err != nil {
		h.log.Warn().Err(err).Str("path", doc.Path).Msg("failed to write response")
	}
}

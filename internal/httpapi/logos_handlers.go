package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/render"
)

type LogosHandler struct {
	Logos    LogoSource
	Renderer *atomic.Pointer[render.Renderer]
}

// Get serves a cached logo. Anything it cannot serve redirects to the
// placeholder so an <img> never breaks.
func (h LogosHandler) Get(w http.ResponseWriter, r *http.Request) {
	placeholder := h.Renderer.Load().Assets().Placeholder
	if h.Logos == nil {
		http.Redirect(w, r, placeholder, http.StatusFound)
		return
	}

	key := mux.Vars(r)["key"]
	lg, err := h.Logos.Get(r.Context(), key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error().Str("request_id", RequestIDFrom(r.Context())).Str("key", key).Err(err).Msg("logo lookup failed")
		}
		http.Redirect(w, r, placeholder, http.StatusFound)
		return
	}

	ct := lg.ContentType
	if ct == "" {
		ct = "image/*"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(lg.Bytes)))
	w.Header().Set("Cache-Control", "public, max-age=604800")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(lg.Bytes)
}

package httpapi

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"iranconnect-web/internal/config"
	"iranconnect-web/internal/events"
)

type ConfigHandler struct {
	Deps
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.cfg())
}

// Put decodes a config over the live one, validates it, saves it and
// swaps it in together with a renderer for the new site settings.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	incoming := h.cfg()
	if err := decodeJSON(w, r, &incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	normalized, vr := config.NormalizeAndValidate(incoming)
	if !vr.OK() {
		// structured errors so a client can show them next to fields
		WriteErrorDetails(w, r, http.StatusBadRequest, "invalid_config", "config validation failed", vr)
		return
	}

	pages, err := h.BuildRenderer(normalized)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_config", err.Error())
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusBadRequest, "save_failed", err.Error())
		return
	}

	saved, err := h.LoadCfg()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but reload failed: "+err.Error())
		return
	}
	h.CfgVal.Store(saved)
	h.Renderer.Store(pages)

	log.Info().Str("request_id", RequestIDFrom(r.Context())).Str("path", h.UserCfgPath).Msg("config saved")
	h.Hub.Emit(RequestIDFrom(r.Context()), events.ConfigSaved, vr)
	WriteJSON(w, http.StatusOK, saved)
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	_, vr := config.NormalizeAndValidate(h.cfg())
	WriteJSON(w, http.StatusOK, vr)
}

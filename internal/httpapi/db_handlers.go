package httpapi

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type DBHandler struct {
	DB Checkpointer
}

func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		WriteError(w, r, http.StatusNotImplemented, "not_supported", "the configured store has no write-ahead log")
		return
	}

	busy, frames, done, err := h.DB.Checkpoint(r.Context())
	if err != nil {
		log.Error().Str("request_id", RequestIDFrom(r.Context())).Err(err).Msg("checkpoint failed")
		WriteError(w, r, http.StatusInternalServerError, "checkpoint_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"busy": busy, "log_frames": frames, "checkpointed": done})
}

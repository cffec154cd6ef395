package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/events"
	"iranconnect-web/internal/render"
	"iranconnect-web/internal/sanitize"
	"iranconnect-web/internal/seed"
)

const maxImportBytes = 4 << 20

type JobsHandler struct {
	Deps
}

// jobDTO is the API shape of a job. Description is already sanitized.
type jobDTO struct {
	ID           domain.JobID `json:"id"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Location     string       `json:"location"`
	Type         string       `json:"type"`
	Skills       []string     `json:"skills"`
	Salary       string       `json:"salary"`
	Tags         []domain.Tag `json:"tags"`
	Description  string       `json:"description"`
	Excerpt      string       `json:"excerpt"`
	Requirements []string     `json:"requirements"`
	LogoURL      string       `json:"logo_url"`
	Link         string       `json:"link,omitempty"`
	URL          string       `json:"url"`
}

func (h JobsHandler) toDTO(j domain.Job) jobDTO {
	return jobDTO{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Type:         j.EmploymentType,
		Skills:       nonNil(j.Skills),
		Salary:       j.Salary,
		Tags:         nonNilTags(j.Tags),
		Description:  string(sanitize.Description(j.Description)),
		Excerpt:      sanitize.Text(j.Description),
		Requirements: nonNil(j.Requirements),
		LogoURL:      h.pages().Assets().Logo(j.LogoRef),
		Link:         j.ApplyURL,
		URL:          render.DetailURL(j.ID),
	}
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_province", "unknown province "+f.Province)
		return
	}

	jobs, err := h.Jobs.FetchJobs(r.Context(), f)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	out := make([]jobDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, h.toDTO(j))
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": out, "count": len(out), "filter": f})
}

func (h JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := domain.JobID(mux.Vars(r)["id"])
	j, err := h.Jobs.FetchJobByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, h.toDTO(j))
}

// Create upserts one record. A missing id gets a fresh one.
func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var j domain.Job
	if err := decodeJSON(w, r, &j); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	j = j.Normalized()
	if j.ID == "" {
		j.ID = domain.JobID(uuid.NewString())
	}
	if err := j.Validate(); err != nil {
		h.storeError(w, r, err)
		return
	}

	if h.Importer != nil {
		if _, err := h.Importer.Import(r.Context(), []domain.Job{j}); err != nil {
			h.storeError(w, r, err)
			return
		}
	} else if err := h.Jobs.UpsertJob(r.Context(), j); err != nil {
		h.storeError(w, r, err)
		return
	}

	saved, err := h.Jobs.FetchJobByID(r.Context(), j.ID)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.JobUpserted, map[string]any{"id": saved.ID})
	WriteJSON(w, http.StatusOK, h.toDTO(saved))
}

// Import upserts every record of a YAML seed document. Nothing is written
// unless the whole document parses and validates.
func (h JobsHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	jobs, err := seed.Parse(r.Body)
	if err != nil {
		if _, ok := domain.IsMalformed(err); ok {
			h.storeError(w, r, err)
			return
		}
		WriteError(w, r, http.StatusBadRequest, "invalid_yaml", "invalid seed document: "+err.Error())
		return
	}

	im := h.Importer
	if im == nil {
		im = &seed.Importer{Store: h.Jobs}
	}
	res, err := im.Import(r.Context(), jobs)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.JobsImported, res)
	WriteJSON(w, http.StatusOK, res)
}

func (h JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := domain.JobID(mux.Vars(r)["id"])
	if err := h.Jobs.DeleteJob(r.Context(), id); err != nil {
		h.storeError(w, r, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.JobDeleted, map[string]any{"id": id})
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}

func (h JobsHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if m, ok := domain.IsMalformed(err); ok {
		WriteErrorDetails(w, r, http.StatusBadRequest, "malformed_record", m.Error(), m)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "job not found")
		return
	}
	log.Error().
		Str("request_id", RequestIDFrom(r.Context())).
		Str("path", r.URL.Path).
		Err(err).
		Msg("job store failed")
	WriteError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilTags(t []domain.Tag) []domain.Tag {
	if t == nil {
		return []domain.Tag{}
	}
	return t
}

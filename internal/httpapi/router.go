package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"iranconnect-web/internal/render"
)

// NewRouter wires every route behind the standard middleware chain.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()

	// Pages
	ph := PagesHandler{Deps: d}
	r.HandleFunc("/", ph.Landing).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/jobs", ph.Listing).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/jobs/{id}", ph.Details).Methods(http.MethodGet, http.MethodHead)

	// Assets
	lh := LogosHandler{Logos: d.Logos, Renderer: d.Renderer}
	r.HandleFunc("/logo/{key}", lh.Get).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(render.Static()))),
	).Methods(http.MethodGet, http.MethodHead)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", HealthHandler{}.Health).Methods(http.MethodGet)

	// Jobs
	jh := JobsHandler{Deps: d}
	api.HandleFunc("/jobs", jh.List).Methods(http.MethodGet)
	api.Handle("/jobs", LocalOnly(http.HandlerFunc(jh.Create))).Methods(http.MethodPost)
	api.Handle("/jobs/import", LocalOnly(http.HandlerFunc(jh.Import))).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}", jh.Get).Methods(http.MethodGet)
	api.Handle("/jobs/{id}", LocalOnly(http.HandlerFunc(jh.Delete))).Methods(http.MethodDelete)

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	api.HandleFunc("/events", eh.ServeSSE).Methods(http.MethodGet)

	// Config
	ch := ConfigHandler{Deps: d}
	api.HandleFunc("/config", ch.Get).Methods(http.MethodGet)
	api.Handle("/config", LocalOnly(http.HandlerFunc(ch.Put))).Methods(http.MethodPut)
	api.HandleFunc("/config/validate", ch.Validate).Methods(http.MethodGet)

	// DB
	dh := DBHandler{DB: d.DB}
	api.Handle("/db/checkpoint", LocalOnly(http.HandlerFunc(dh.Checkpoint))).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(ph.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler

	return Chain(r, RequestID, AccessLog, Recover)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}

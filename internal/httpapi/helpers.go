package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"iranconnect-web/internal/domain"
)

const maxBodyBytes = 1 << 20

var errUnknownProvince = errors.New("unknown province")

// filterFromQuery reads q, location and province. An unknown province slug
// is an error so callers can answer for it instead of listing nothing.
func filterFromQuery(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	f := domain.Filter{
		Query:    strings.TrimSpace(q.Get("q")),
		Location: strings.TrimSpace(q.Get("location")),
		Province: strings.ToLower(strings.TrimSpace(q.Get("province"))),
	}
	if f.Province != "" {
		if _, ok := domain.LookupProvince(f.Province); !ok {
			return f, errUnknownProvince
		}
	}
	return f, nil
}

// decodeJSON decodes exactly one JSON value from the body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after JSON value")
	}
	return nil
}

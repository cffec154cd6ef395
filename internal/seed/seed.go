// Package seed loads job records from YAML files and imports them into a
// job store.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"iranconnect-web/internal/domain"
)

//go:embed jobs.yml
var defaultJobs []byte

type file struct {
	Jobs []domain.Job `yaml:"jobs"`
}

// Default returns the records bundled with the binary.
func Default() ([]domain.Job, error) {
	jobs, err := Parse(bytes.NewReader(defaultJobs))
	if err != nil {
		return nil, fmt.Errorf("default seed: %w", err)
	}
	return jobs, nil
}

func ParseFile(path string) ([]domain.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	jobs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return jobs, nil
}

// Parse decodes a seed document. Records without an id get a random one.
// It fails on unknown fields, duplicate ids and the first invalid record.
func Parse(r io.Reader) ([]domain.Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	out := make([]domain.Job, 0, len(f.Jobs))
	seen := make(map[domain.JobID]int, len(f.Jobs))
	for i, j := range f.Jobs {
		j = j.Normalized()
		if j.ID == "" {
			j.ID = domain.JobID(uuid.NewString())
		}
		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		if prev, dup := seen[j.ID]; dup {
			return nil, fmt.Errorf("jobs[%d]: id %q already used by jobs[%d]", i, j.ID, prev)
		}
		seen[j.ID] = i
		out = append(out, j)
	}
	return out, nil
}

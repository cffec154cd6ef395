package main

import (
	"fmt"
	"os"

	"iranconnect-web/internal/httpapi"
	"iranconnect-web/internal/seed"
)

// check validates the config, the templates it feeds and the seed
// records without touching the store.
func (a *app) check(files []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if _, err := httpapi.NewRenderer(cfg); err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	if len(files) == 0 {
		jobs, err := a.seedJobs(cfg)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintf(os.Stdout, "config ok, %d seed records ok\n", len(jobs))
		return nil
	}
	for _, f := range files {
		jobs, err := seed.ParseFile(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		fmt.Fprintf(os.Stdout, "%s: %d records ok\n", f, len(jobs))
	}
	return nil
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"iranconnect-web/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSeedIfEmptySqlite(t *testing.T) {
	dir := t.TempDir()
	a := &app{dataDir: dir, cfgPath: writeConfig(t, dir, "logos:\n  enabled: false\n")}

	cfg, err := a.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	b, err := a.openBackend(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if b.db == nil || b.logos == nil {
		t.Fatal("sqlite backend missing db or logos")
	}

	ctx := context.Background()
	im := a.importer(cfg, b)
	if im.Logos != nil {
		t.Error("logo fetcher wired while logos are disabled")
	}
	for range 2 {
		if err := a.seedIfEmpty(ctx, cfg, b, im); err != nil {
			t.Fatal(err)
		}
	}
	n, err := b.jobs.(counter).Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("count = %d after seeding twice, want 3", n)
	}
}

func TestMemoryBackendHasNoLogos(t *testing.T) {
	dir := t.TempDir()
	a := &app{dataDir: dir, cfgPath: writeConfig(t, dir, "store:\n  driver: memory\n")}
	cfg, err := a.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	b, err := a.openBackend(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if b.db != nil || b.logos != nil {
		t.Error("memory backend exposes sqlite pieces")
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if im := a.importer(cfg, b); im.Logos != nil {
		t.Error("memory backend got a logo fetcher")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	a := &app{dataDir: dir, cfgPath: writeConfig(t, dir, "app:\n  port: 0\n")}
	if _, err := a.loadConfig(); err == nil {
		t.Fatal("invalid port accepted")
	}
}

func TestConfigPathBootstraps(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvPort, "")
	a := &app{dataDir: dir}
	p, err := a.configPath()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Errorf("config not written: %v", err)
	}
	if err := a.check(nil); err != nil {
		t.Errorf("check on bootstrapped dir: %v", err)
	}
}

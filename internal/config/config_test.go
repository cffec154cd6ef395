package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg, v := NormalizeAndValidate(Default())
	if !v.OK() {
		t.Fatalf("default config errors: %v", v.Errors)
	}
	if cfg.App.Port != 8080 || cfg.Store.Driver != "sqlite" || cfg.Listing.FeaturedCount != 3 {
		t.Fatalf("unexpected defaults: %+v", cfg.App)
	}
	if len(cfg.Site.QuickLinks) == 0 || cfg.Site.Contact.Email == "" {
		t.Fatal("site defaults missing")
	}
}

func TestEnsureUserConfigAndLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	if path != filepath.Join(dir, "config.yml") {
		t.Fatalf("path = %q", path)
	}

	if err := os.WriteFile(path, []byte("app:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if again, err := EnsureUserConfig(dir); err != nil || again != path {
		t.Fatalf("second EnsureUserConfig = %q, %v", again, err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 9090 {
		t.Fatalf("port = %d", cfg.App.Port)
	}
	if cfg.App.Host != "127.0.0.1" || cfg.Site.Name == "" {
		t.Fatal("defaults not kept under a partial file")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("app:\n  prot: 1\n")); err == nil {
		t.Fatal("unknown key accepted")
	}

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("logos:\n  alow_hosts: [example.com]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "alow_hosts") {
		t.Fatalf("Load with a typo'd key = %v", err)
	}

	cfg, err := Parse(nil)
	if err != nil || cfg.App.Port != 8080 {
		t.Fatalf("empty document = %+v, %v", cfg.App, err)
	}
}

func TestValidationFindsProblems(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Store.Driver = "postgres"
	cfg.Log.Level = "loud"
	cfg.Site.Nav = append(cfg.Site.Nav, Link{Label: "x", Href: "javascript:alert(1)"})
	cfg.Assets.Placeholder = "//cdn/x.svg"

	_, v := NormalizeAndValidate(cfg)
	if v.OK() || len(v.Errors) != 5 {
		t.Fatalf("errors = %v", v.Errors)
	}
}

func TestNormalizeAllowHosts(t *testing.T) {
	cfg := Default()
	cfg.Logos.AllowHosts = []string{" Example.com", "example.com", "", "cdn.example.org"}
	out, _ := NormalizeAndValidate(cfg)
	if strings.Join(out.Logos.AllowHosts, ",") != "example.com,cdn.example.org" {
		t.Fatalf("allow_hosts = %v", out.Logos.AllowHosts)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{EnvHost: "0.0.0.0", EnvPort: "3000", EnvLogLevel: "debug"}
	if err := ApplyEnv(&cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:3000" || cfg.Log.Level != "debug" {
		t.Fatalf("addr %q level %q", cfg.Addr(), cfg.Log.Level)
	}

	env[EnvPort] = "eighty"
	if err := ApplyEnv(&cfg, func(k string) string { return env[k] }); err == nil {
		t.Fatal("bad port accepted")
	}
}

func TestSaveAtomicKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("app:\n  port: 1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.App.Port = 4321
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}
	got, err := Load(path)
	if err != nil || got.App.Port != 4321 {
		t.Fatalf("reloaded port %d, %v", got.App.Port, err)
	}
	bak, err := os.ReadFile(path + ".bak")
	if err != nil || !strings.Contains(string(bak), "1234") {
		t.Fatalf("backup = %q, %v", bak, err)
	}

	cfg.App.Port = -1
	if err := SaveAtomic(path, cfg); err == nil {
		t.Fatal("invalid config saved")
	}
}

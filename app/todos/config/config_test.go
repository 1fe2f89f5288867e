package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrazmi/todos/app/todos/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TODOS_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := config.Load("TODOS")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Server.Port != ":8080" {
		t.Errorf("Expected port ':8080', got '%s'", cfg.Server.Port)
	}
	if cfg.Server.EnableDebug {
		t.Error("Expected debug to be off")
	}
	if cfg.Server.ShutdownTimeout != 20*time.Second {
		t.Errorf("Expected shutdown timeout 20s, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "INFO" {
		t.Errorf("Expected log level 'INFO', got '%s'", cfg.Log.Level)
	}
	if len(cfg.CORS.Origins) != 0 {
		t.Errorf("Expected no CORS origins, got %v", cfg.CORS.Origins)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.toml")
	data := `
[server]
port = ":9090"
enable_debug = true
write_timeout = "5s"

[web.default_headers]
X-Frame-Options = "DENY"

[log]
level = "DEBUG"

[cors]
origins = ["http://localhost:3000"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TODOS_CONFIG", path)
	t.Setenv("TODOS_PORT", ":7070")
	t.Setenv("TODOS_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.Load("TODOS")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Server.Port != ":7070" {
		t.Errorf("Expected env to override port, got '%s'", cfg.Server.Port)
	}
	if !cfg.Server.EnableDebug {
		t.Error("Expected debug from the file")
	}
	if cfg.Server.WriteTimeout != 5*time.Second {
		t.Errorf("Expected write timeout 5s, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected default read timeout 30s, got %s", cfg.Server.ReadTimeout)
	}
	if got := cfg.Web.DefaultHeaders["X-Frame-Options"]; got != "DENY" {
		t.Errorf("Expected default header 'DENY', got '%s'", got)
	}
	if cfg.Log.Level != "DEBUG" {
		t.Errorf("Expected log level 'DEBUG', got '%s'", cfg.Log.Level)
	}
	if len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[0] != "http://a.test" || cfg.CORS.Origins[1] != "http://b.test" {
		t.Errorf("Expected env origins, got %v", cfg.CORS.Origins)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.toml")
	if err := os.WriteFile(path, []byte("[server]\nprot = \":1\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TODOS_CONFIG", path)

	if _, err := config.Load("TODOS"); err == nil {
		t.Fatal("Expected an error for an unknown key")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BEATBOX_CONFIG", "BEATBOX_MEDIA_DIR", "BEATBOX_ICON_DIR", "BEATBOX_ART_ADDR", "BEATBOX_LOAD_TIMEOUT", "BEATBOX_BUS_NAME"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beatbox.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestNewAppConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewAppConfig(zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GetMediaDir() != defaultMediaDir {
		t.Errorf("mediaDir: expected %s, got %s", defaultMediaDir, cfg.GetMediaDir())
	}
	if cfg.GetIconDir() != defaultMediaDir {
		t.Errorf("iconDir should default to mediaDir, got %s", cfg.GetIconDir())
	}
	if cfg.GetArtAddr() != defaultArtAddr {
		t.Errorf("artAddr: expected %s, got %s", defaultArtAddr, cfg.GetArtAddr())
	}
	if cfg.GetLoadTimeout() != defaultLoadTimeout {
		t.Errorf("loadTimeout: expected %s, got %s", defaultLoadTimeout, cfg.GetLoadTimeout())
	}
	if cfg.GetBusName() != defaultBusName {
		t.Errorf("busName: expected %s, got %s", defaultBusName, cfg.GetBusName())
	}
}

func TestNewAppConfig_Sources(t *testing.T) {
	tests := []struct {
		name          string
		withFile      bool
		file          string
		env           map[string]string
		expectedError string
		check         func(*testing.T, *AppConfig)
	}{
		{
			name: "File Values Applied",
			file: "media_dir: /srv/media\nicon_dir: /srv/icons\nload_timeout: 2s\nbus_name: box\n",
			check: func(t *testing.T, c *AppConfig) {
				if c.GetMediaDir() != "/srv/media" || c.GetIconDir() != "/srv/icons" {
					t.Errorf("unexpected dirs: %s %s", c.GetMediaDir(), c.GetIconDir())
				}
				if c.GetLoadTimeout() != 2*time.Second {
					t.Errorf("expected 2s, got %s", c.GetLoadTimeout())
				}
				if c.GetBusName() != "box" {
					t.Errorf("expected box, got %s", c.GetBusName())
				}
			},
		},
		{
			name: "Env Overrides File",
			file: "media_dir: /srv/media\nload_timeout: 2s\n",
			env:  map[string]string{"BEATBOX_MEDIA_DIR": "/opt/media", "BEATBOX_LOAD_TIMEOUT": "750ms"},
			check: func(t *testing.T, c *AppConfig) {
				if c.GetMediaDir() != "/opt/media" {
					t.Errorf("expected env media dir, got %s", c.GetMediaDir())
				}
				if c.GetLoadTimeout() != 750*time.Millisecond {
					t.Errorf("expected 750ms, got %s", c.GetLoadTimeout())
				}
			},
		},
		{
			name: "Empty Art Addr Disables Server",
			file: "art_addr: \"\"\n",
			check: func(t *testing.T, c *AppConfig) {
				if c.GetArtAddr() != "" {
					t.Errorf("expected empty art addr, got %s", c.GetArtAddr())
				}
			},
		},
		{
			name:     "Empty File Keeps Defaults",
			withFile: true,
			check: func(t *testing.T, c *AppConfig) {
				if c.GetMediaDir() != defaultMediaDir {
					t.Errorf("expected default media dir, got %s", c.GetMediaDir())
				}
			},
		},
		{
			name:          "Error - Unknown Key",
			file:          "media_dir: /srv\nvolume: 11\n",
			expectedError: "failed to parse config file",
		},
		{
			name:          "Error - Bad Timeout In Env",
			env:           map[string]string{"BEATBOX_LOAD_TIMEOUT": "soon"},
			expectedError: "invalid load timeout",
		},
		{
			name:          "Error - Non Positive Timeout",
			file:          "load_timeout: 0s\n",
			expectedError: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.withFile || tt.file != "" {
				t.Setenv("BEATBOX_CONFIG", writeFile(t, tt.file))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := NewAppConfig(zap.NewNop())

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestNewAppConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BEATBOX_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := NewAppConfig(zap.NewNop()); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("BEATBOX_TEST_ROOT", "/data")

	tests := []struct {
		input    string
		expected string
	}{
		{"~/music", filepath.Join(home, "music")},
		{"$BEATBOX_TEST_ROOT/music", "/data/music"},
		{"/abs/music", "/abs/music"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.expected {
			t.Errorf("expandPath(%s): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

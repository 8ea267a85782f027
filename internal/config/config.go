package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	defaultMediaDir    = "./media"
	defaultArtAddr     = "127.0.0.1:8765"
	defaultLoadTimeout = 5 * time.Second
	defaultBusName     = "beatbox"
)

// fileConfig mirrors the optional YAML configuration file
type fileConfig struct {
	MediaDir    string  `yaml:"media_dir"`
	IconDir     string  `yaml:"icon_dir"`
	ArtAddr     *string `yaml:"art_addr"`
	LoadTimeout string  `yaml:"load_timeout"`
	BusName     string  `yaml:"bus_name"`
}

// AppConfig holds application configuration
type AppConfig struct {
	logger      *zap.Logger
	mediaDir    string
	iconDir     string
	artAddr     string
	loadTimeout time.Duration
	busName     string
}

// NewAppConfig creates a new application configuration instance.
// Values come from the YAML file named by BEATBOX_CONFIG (if any), then
// environment variables, then defaults.
func NewAppConfig(logger *zap.Logger) (*AppConfig, error) {
	cfg := &AppConfig{
		logger:      logger,
		mediaDir:    defaultMediaDir,
		artAddr:     defaultArtAddr,
		loadTimeout: defaultLoadTimeout,
		busName:     defaultBusName,
	}

	if path := os.Getenv("BEATBOX_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.mediaDir = expandPath(cfg.mediaDir)
	if cfg.iconDir == "" {
		cfg.iconDir = cfg.mediaDir
	}
	cfg.iconDir = expandPath(cfg.iconDir)

	logger.Info("Configuration loaded",
		zap.String("mediaDir", cfg.mediaDir),
		zap.String("iconDir", cfg.iconDir),
		zap.String("artAddr", cfg.artAddr),
		zap.Duration("loadTimeout", cfg.loadTimeout),
		zap.String("busName", cfg.busName))

	return cfg, nil
}

func (c *AppConfig) applyFile(path string) error {
	fd, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer fd.Close()

	d := yaml.NewDecoder(fd)
	d.KnownFields(true)
	var fc fileConfig
	if err := d.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.MediaDir != "" {
		c.mediaDir = fc.MediaDir
	}
	if fc.IconDir != "" {
		c.iconDir = fc.IconDir
	}
	if fc.ArtAddr != nil {
		c.artAddr = *fc.ArtAddr
	}
	if fc.LoadTimeout != "" {
		timeout, err := parseTimeout(fc.LoadTimeout)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		c.loadTimeout = timeout
	}
	if fc.BusName != "" {
		c.busName = fc.BusName
	}
	return nil
}

func (c *AppConfig) applyEnv() error {
	if v := os.Getenv("BEATBOX_MEDIA_DIR"); v != "" {
		c.mediaDir = v
	}
	if v := os.Getenv("BEATBOX_ICON_DIR"); v != "" {
		c.iconDir = v
	}
	// An explicitly empty BEATBOX_ART_ADDR disables the artwork server
	if v, ok := os.LookupEnv("BEATBOX_ART_ADDR"); ok {
		c.artAddr = v
	}
	if v := os.Getenv("BEATBOX_LOAD_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("BEATBOX_LOAD_TIMEOUT: %w", err)
		}
		c.loadTimeout = d
	}
	if v := os.Getenv("BEATBOX_BUS_NAME"); v != "" {
		c.busName = v
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid load timeout %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("load timeout must be positive, got %s", d)
	}
	return d, nil
}

// expandPath expands environment variables and a leading ~
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// GetMediaDir returns the directory holding the audio resources
func (c *AppConfig) GetMediaDir() string {
	return c.mediaDir
}

// GetIconDir returns the directory holding the icon resources
func (c *AppConfig) GetIconDir() string {
	return c.iconDir
}

// GetArtAddr returns the artwork server listen address
func (c *AppConfig) GetArtAddr() string {
	return c.artAddr
}

// GetLoadTimeout returns the bound applied to source loading
func (c *AppConfig) GetLoadTimeout() time.Duration {
	return c.loadTimeout
}

// GetBusName returns the MPRIS player name suffix
func (c *AppConfig) GetBusName() string {
	return c.busName
}

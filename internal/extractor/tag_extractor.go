package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/zap"
)

// audioExtensions lists the resource extensions probed for a track, in order
var audioExtensions = []string{".mp3", ".wav"}

// ErrResourceNotFound is returned when no audio resource exists for an identifier
var ErrResourceNotFound = errors.New("audio resource not found")

// TagExtractor reads metadata from <mediaDir>/<id>.<ext> and the icon from <iconDir>/ic_<id>.png
type TagExtractor struct {
	logger   *zap.Logger
	mediaDir string
	iconDir  string
	icon     IconConfig
}

// NewTagExtractor creates a metadata extractor rooted at the configured resource directories
func NewTagExtractor(logger *zap.Logger, cfg domain.Config) *TagExtractor {
	return &TagExtractor{
		logger:   logger,
		mediaDir: cfg.GetMediaDir(),
		iconDir:  cfg.GetIconDir(),
		icon:     IconConfig{Size: defaultIconSize},
	}
}

// Extract returns the metadata for a track identifier
func (e *TagExtractor) Extract(ctx context.Context, id string) (domain.TrackMetadata, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrackMetadata{}, err
	}

	source, err := e.resolveSource(id)
	if err != nil {
		return domain.TrackMetadata{}, err
	}

	meta := domain.TrackMetadata{ID: id, Source: source}

	f, err := os.Open(source)
	if err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	switch {
	case err == nil:
		meta.Title = strings.TrimSpace(m.Title())
		meta.Artist = strings.TrimSpace(m.Artist())
		if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
			meta.Artwork = pic.Data
			meta.ArtworkMIME = pic.MIMEType
		}
	case errors.Is(err, tag.ErrNoTagsFound):
		e.logger.Debug("Track has no tags", zap.String("id", id), zap.String("source", source))
	default:
		return domain.TrackMetadata{}, fmt.Errorf("failed to read tags of %s: %w", source, err)
	}

	// Fallback: use the identifier as title
	if !meta.HasContent() {
		meta.Title = id
	}

	meta.Icon = e.loadIcon(id)

	e.logger.Debug("Track metadata extracted",
		zap.String("id", id),
		zap.String("title", meta.Title),
		zap.String("artist", meta.Artist),
		zap.Int("artworkBytes", len(meta.Artwork)),
		zap.Int("iconBytes", len(meta.Icon)))

	return meta, nil
}

// resolveSource finds the audio resource file for an identifier
func (e *TagExtractor) resolveSource(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid track identifier %q", id)
	}
	for _, ext := range audioExtensions {
		candidate := filepath.Join(e.mediaDir, id+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrResourceNotFound, id, e.mediaDir)
}

// loadIcon reads and renders ic_<id>.png, returning nil when the resource is absent or unusable
func (e *TagExtractor) loadIcon(id string) []byte {
	path := filepath.Join(e.iconDir, "ic_"+id+".png")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			e.logger.Warn("Failed to read icon", zap.String("path", path), zap.Error(err))
		}
		return nil
	}

	icon, err := renderIcon(data, e.icon)
	if err != nil {
		e.logger.Warn("Failed to render icon", zap.String("path", path), zap.Error(err))
		return nil
	}
	return icon
}

// Package catalog holds the track metadata extracted at startup and derives
// the browse tree served to the host.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/zap"
)

const (
	// RootID is the identifier of the browse root
	RootID = "root"
	// SingleID is the track shown directly under the root
	SingleID = "music"
	// FolderID is the browsable folder holding the instrument tracks
	FolderID = "Music instruments"
)

// instruments is the navigation order of the folder and of skip
var instruments = []string{
	"guitar",
	"accordion",
	"drums",
	"mic",
	"violin",
	"piano",
}

var (
	// ErrBuild marks a catalog that could not be built
	ErrBuild = errors.New("catalog build failed")
	// ErrInconsistent marks an identifier missing from the catalog
	ErrInconsistent = errors.New("catalog lookup inconsistency")
)

// Catalog is read-only after Build and safe for concurrent use
type Catalog struct {
	single      string
	instruments []string
	entries     map[string]domain.TrackMetadata
}

// Build extracts every track once, the single track first then the
// instruments in order. Any extraction failure aborts the build.
func Build(ctx context.Context, logger *zap.Logger, ext domain.Extractor) (*Catalog, error) {
	c := &Catalog{
		single:      SingleID,
		instruments: append([]string(nil), instruments...),
		entries:     make(map[string]domain.TrackMetadata, len(instruments)+1),
	}

	ids := append([]string{c.single}, c.instruments...)
	for _, id := range ids {
		meta, err := ext.Extract(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: track %q: %w", ErrBuild, id, err)
		}
		// Entries are keyed by the requested identifier
		meta.ID = id
		c.entries[id] = meta
	}

	logger.Info("Catalog built",
		zap.Int("tracks", len(c.entries)),
		zap.Strings("instruments", c.instruments))

	return c, nil
}

// New builds the catalog with a background context, for use as an fx constructor
func New(logger *zap.Logger, ext domain.Extractor) (*Catalog, error) {
	return Build(context.Background(), logger, ext)
}

// Lookup returns the metadata of a track
func (c *Catalog) Lookup(id string) (domain.TrackMetadata, error) {
	meta, ok := c.entries[id]
	if !ok {
		return domain.TrackMetadata{}, fmt.Errorf("%w: %q", ErrInconsistent, id)
	}
	return meta, nil
}

// ListChildren returns the browse items under parentID.
// Unknown parents and leaves have no children.
func (c *Catalog) ListChildren(parentID string) ([]domain.BrowseItem, error) {
	switch parentID {
	case RootID:
		single, err := c.item(c.single)
		if err != nil {
			return nil, err
		}
		folder := domain.BrowseItem{
			ID:        FolderID,
			Title:     FolderID,
			Browsable: true,
		}
		// The folder borrows the first instrument's icon
		if len(c.instruments) > 0 {
			if first, err := c.Lookup(c.instruments[0]); err == nil {
				folder.Icon = first.Icon
			}
		}
		return []domain.BrowseItem{single, folder}, nil

	case FolderID:
		items := make([]domain.BrowseItem, 0, len(c.instruments))
		for _, id := range c.instruments {
			it, err := c.item(id)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		return items, nil

	default:
		return []domain.BrowseItem{}, nil
	}
}

func (c *Catalog) item(id string) (domain.BrowseItem, error) {
	meta, err := c.Lookup(id)
	if err != nil {
		return domain.BrowseItem{}, err
	}
	return domain.BrowseItem{
		ID:       meta.ID,
		Title:    meta.Title,
		Subtitle: meta.Artist,
		Icon:     meta.Icon,
		Playable: true,
	}, nil
}

// Root returns the browse root identifier
func (c *Catalog) Root() string {
	return RootID
}

// Single returns the identifier of the non-instrument track
func (c *Catalog) Single() string {
	return c.single
}

// Instruments returns a copy of the instrument order
func (c *Catalog) Instruments() []string {
	return append([]string(nil), c.instruments...)
}

// IsInstrument reports whether id is part of the instrument cycle
func (c *Catalog) IsInstrument(id string) bool {
	return c.indexOf(id) >= 0
}

// Neighbor returns the instrument step positions away from id, wrapping at
// both ends. It reports false when id is not an instrument.
func (c *Catalog) Neighbor(id string, step int) (string, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return "", false
	}
	n := len(c.instruments)
	next := ((idx+step)%n + n) % n
	return c.instruments[next], true
}

func (c *Catalog) indexOf(id string) int {
	for i, inst := range c.instruments {
		if inst == id {
			return i
		}
	}
	return -1
}

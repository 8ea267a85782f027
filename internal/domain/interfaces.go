package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/smartnsoft/beatbox/internal/domain Extractor,Player,PlayerFactory,Publisher

// Extractor reads the metadata of a track resource
type Extractor interface {
	// Extract returns the metadata for the given identifier.
	// A failure is fatal for catalog construction.
	Extract(ctx context.Context, id string) (TrackMetadata, error)
}

// Player is an opaque audio playback capability.
// One instance plays one source; switching source means releasing it and
// building a new one.
type Player interface {
	// Load attaches the audio source
	Load(ctx context.Context, source string) error

	// Prepare decodes the source and readies the output
	Prepare(ctx context.Context) error

	// Start begins or resumes playback
	Start() error

	// Pause holds playback at the current position
	Pause() error

	// IsPlaying reports whether audio is currently being produced
	IsPlaying() bool

	// Release frees every resource held by the player.
	// The player must not be used afterwards.
	Release() error
}

// PlayerFactory constructs fresh Player instances
type PlayerFactory interface {
	NewPlayer() (Player, error)
}

// Publisher receives state and metadata publications for the host
type Publisher interface {
	// PublishMetadata announces the track now selected
	PublishMetadata(meta TrackMetadata)

	// PublishState announces a playback state transition
	PublishState(state PlaybackState)
}

// Config defines the interface for application configuration
type Config interface {
	// GetMediaDir returns the directory holding <id>.mp3 resources
	GetMediaDir() string

	// GetIconDir returns the directory holding ic_<id>.png resources
	GetIconDir() string

	// GetArtAddr returns the listen address of the artwork server, empty disables it
	GetArtAddr() string

	// GetLoadTimeout bounds source loading
	GetLoadTimeout() time.Duration

	// GetBusName returns the MPRIS player name suffix
	GetBusName() string
}

package domain

import (
	"strings"
	"time"
)

// Phase is the lifecycle phase of the active player
type Phase int

const (
	// PhaseIdle means no track is loaded
	PhaseIdle Phase = iota
	// PhasePlaying means the loaded track is audible
	PhasePlaying
	// PhasePaused means the loaded track is held at its position
	PhasePaused
)

// String returns the MPRIS PlaybackStatus name of the phase
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

// Action is a bitmask of transport controls valid for the current track
type Action uint32

const (
	ActionPlayPause Action = 1 << iota
	ActionSkipNext
	ActionSkipPrevious

	// ActionSkip groups both skip directions
	ActionSkip = ActionSkipNext | ActionSkipPrevious
)

// Has reports whether every bit of other is set in a
func (a Action) Has(other Action) bool {
	return a&other == other
}

func (a Action) String() string {
	if a == 0 {
		return "none"
	}
	var names []string
	if a.Has(ActionPlayPause) {
		names = append(names, "play_pause")
	}
	if a.Has(ActionSkipNext) {
		names = append(names, "skip_next")
	}
	if a.Has(ActionSkipPrevious) {
		names = append(names, "skip_previous")
	}
	return strings.Join(names, "|")
}

// TrackMetadata describes one catalog entry. Values are built once by the
// extractor and never mutated afterwards.
type TrackMetadata struct {
	// ID is the stable track identifier (also the resource name)
	ID string
	// Title from the embedded tags, may be empty
	Title string
	// Artist from the embedded tags, may be empty
	Artist string
	// Artwork is the embedded picture, nil when the file carries none
	Artwork []byte
	// ArtworkMIME is the MIME type of Artwork
	ArtworkMIME string
	// Icon is the PNG icon derived from the ic_<id> resource
	Icon []byte
	// Source is the path of the audio resource handed to the player
	Source string
}

// HasContent reports whether any displayable field is populated
func (m TrackMetadata) HasContent() bool {
	return m.Title != "" || m.Artist != "" || len(m.Artwork) > 0
}

// BrowseItem is one node of the browse tree as shown to the host
type BrowseItem struct {
	ID        string
	Title     string
	Subtitle  string
	Icon      []byte
	Browsable bool
	Playable  bool
}

// PlaybackState is the published playback snapshot
type PlaybackState struct {
	// Current is the selected track identifier, empty before the first play command
	Current string
	// Phase of the active player
	Phase Phase
	// Actions derived from Current
	Actions Action
	// Position is the elapsed time baseline at UpdatedAt
	Position time.Duration
	// Rate is the playback speed
	Rate float64
	// UpdatedAt is when the state was computed
	UpdatedAt time.Time
}

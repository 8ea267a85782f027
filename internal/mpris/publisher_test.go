package mpris

import (
	"sync"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/zap"
)

// recordingStore keeps the last value set for each property
type recordingStore struct {
	mu     sync.Mutex
	values map[string]interface{}
	sets   int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{values: make(map[string]interface{})}
}

func (s *recordingStore) SetMust(iface, property string, v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[iface+"."+property] = v
	s.sets++
}

func (s *recordingStore) Introspection(string) []introspect.Property { return nil }

func (s *recordingStore) get(property string) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[ifacePlayer+"."+property]
}

type artFunc func(id string) string

func (f artFunc) ArtURL(id string) string { return f(id) }

func TestPublisher_PublishState(t *testing.T) {
	tests := []struct {
		name     string
		state    domain.PlaybackState
		expected map[string]interface{}
	}{
		{
			name: "Playing Instrument",
			state: domain.PlaybackState{
				Current: "guitar",
				Phase:   domain.PhasePlaying,
				Actions: domain.ActionPlayPause | domain.ActionSkip,
				Rate:    1,
			},
			expected: map[string]interface{}{
				"PlaybackStatus": "Playing",
				"CanPlay":        true,
				"CanPause":       true,
				"CanGoNext":      true,
				"CanGoPrevious":  true,
				"Rate":           1.0,
				"Position":       int64(0),
			},
		},
		{
			name: "Paused Single Track",
			state: domain.PlaybackState{
				Current:  "music",
				Phase:    domain.PhasePaused,
				Actions:  domain.ActionPlayPause,
				Position: 1500 * time.Millisecond,
				Rate:     1,
			},
			expected: map[string]interface{}{
				"PlaybackStatus": "Paused",
				"CanGoNext":      false,
				"CanGoPrevious":  false,
				"Position":       int64(1500000),
			},
		},
		{
			name:  "Idle After Failure",
			state: domain.PlaybackState{Current: "drums", Phase: domain.PhaseIdle, Actions: domain.ActionPlayPause | domain.ActionSkip, Rate: 1},
			expected: map[string]interface{}{
				"PlaybackStatus": "Stopped",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newRecordingStore()
			p := NewPublisher(zap.NewNop(), nil)
			p.bind(store)

			p.PublishState(tt.state)

			for prop, want := range tt.expected {
				if got := store.get(prop); got != want {
					t.Errorf("%s: expected %v (%T), got %v (%T)", prop, want, want, got, got)
				}
			}
		})
	}
}

func TestPublisher_PublishMetadata(t *testing.T) {
	art := artFunc(func(id string) string {
		if id == "guitar" {
			return "http://127.0.0.1:8765/art/guitar"
		}
		return ""
	})

	tests := []struct {
		name     string
		meta     domain.TrackMetadata
		expected map[string]interface{}
		absent   []string
	}{
		{
			name: "Full Metadata",
			meta: domain.TrackMetadata{ID: "guitar", Title: "Guitar", Artist: "Smart&Soft", Source: "/media/guitar.mp3"},
			expected: map[string]interface{}{
				"mpris:trackid": dbus.ObjectPath("/org/beatbox/track/guitar"),
				"xesam:title":   "Guitar",
				"mpris:artUrl":  "http://127.0.0.1:8765/art/guitar",
				"xesam:url":     "file:///media/guitar.mp3",
			},
		},
		{
			name:     "Title Only",
			meta:     domain.TrackMetadata{ID: "mic", Title: "mic"},
			expected: map[string]interface{}{"xesam:title": "mic"},
			absent:   []string{"xesam:artist", "mpris:artUrl", "xesam:url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newRecordingStore()
			p := NewPublisher(zap.NewNop(), art)
			p.bind(store)

			p.PublishMetadata(tt.meta)

			m, ok := store.get("Metadata").(map[string]dbus.Variant)
			if !ok {
				t.Fatalf("Metadata is not a variant map: %T", store.get("Metadata"))
			}
			for key, want := range tt.expected {
				v, ok := m[key]
				if !ok {
					t.Errorf("%s: missing", key)
					continue
				}
				if v.Value() != want {
					t.Errorf("%s: expected %v, got %v", key, want, v.Value())
				}
			}
			for _, key := range tt.absent {
				if _, ok := m[key]; ok {
					t.Errorf("%s: expected to be omitted", key)
				}
			}
			if tt.meta.Artist != "" {
				artists, _ := m["xesam:artist"].Value().([]string)
				if len(artists) != 1 || artists[0] != tt.meta.Artist {
					t.Errorf("xesam:artist: expected [%s], got %v", tt.meta.Artist, artists)
				}
			}
		})
	}
}

func TestPublisher_BuffersUntilBound(t *testing.T) {
	p := NewPublisher(zap.NewNop(), nil)

	p.PublishMetadata(domain.TrackMetadata{ID: "drums", Title: "Drums"})
	p.PublishMetadata(domain.TrackMetadata{ID: "mic", Title: "Mic"})
	p.PublishState(domain.PlaybackState{Current: "mic", Phase: domain.PhasePaused, Actions: domain.ActionPlayPause, Rate: 1})

	store := newRecordingStore()
	p.bind(store)

	m, _ := store.get("Metadata").(map[string]dbus.Variant)
	if got := m["xesam:title"].Value(); got != "Mic" {
		t.Errorf("expected latest metadata to be flushed, got %v", got)
	}
	if got := store.get("PlaybackStatus"); got != "Paused" {
		t.Errorf("expected pending state to be flushed, got %v", got)
	}

	// Nothing is replayed on a second bind
	again := newRecordingStore()
	p.bind(again)
	if again.sets != 0 {
		t.Errorf("expected no replay, got %d sets", again.sets)
	}
}

func TestPublisher_UnbindBuffersAgain(t *testing.T) {
	store := newRecordingStore()
	p := NewPublisher(zap.NewNop(), nil)
	p.bind(store)
	p.unbind()

	p.PublishState(domain.PlaybackState{Phase: domain.PhasePlaying})

	if store.sets != 0 {
		t.Errorf("unbound publisher wrote %d properties", store.sets)
	}
}

func TestTrackPath(t *testing.T) {
	tests := []struct {
		id       string
		expected dbus.ObjectPath
	}{
		{"guitar", "/org/beatbox/track/guitar"},
		{"Music instruments", "/org/beatbox/track/Music_instruments"},
		{"a-b.c", "/org/beatbox/track/a_b_c"},
		{"", noTrack},
	}

	for _, tt := range tests {
		got := trackPath(tt.id)
		if got != tt.expected {
			t.Errorf("trackPath(%q): expected %s, got %s", tt.id, tt.expected, got)
		}
		if !got.IsValid() {
			t.Errorf("trackPath(%q): %s is not a valid object path", tt.id, got)
		}
	}
}

func TestPropertyMap(t *testing.T) {
	props := propertyMap(identity)

	if v := props[ifaceRoot]["Identity"].Value; v != identity {
		t.Errorf("Identity: expected %s, got %v", identity, v)
	}
	if props[ifacePlayer]["Position"].Emit != prop.EmitFalse {
		t.Error("Position must not emit change signals")
	}
	if props[ifacePlayer]["PlaybackStatus"].Emit != prop.EmitTrue {
		t.Error("PlaybackStatus must emit change signals")
	}
	if v := props[ifacePlayer]["CanControl"].Value; v != true {
		t.Errorf("CanControl: expected true, got %v", v)
	}
	if v := props[ifacePlayer]["CanSeek"].Value; v != false {
		t.Errorf("CanSeek: expected false, got %v", v)
	}
	for iface, values := range props {
		for name, p := range values {
			if p.Writable {
				t.Errorf("%s.%s should be read-only", iface, name)
			}
		}
	}
}

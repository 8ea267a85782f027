package mpris

import (
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/zap"
)

// Publisher turns controller publications into Player property updates.
// Publications made before the bus is bound are kept (latest of each kind)
// and flushed on bind.
type Publisher struct {
	logger *zap.Logger
	art    ArtResolver

	mu           sync.Mutex
	store        PropertyStore
	pendingMeta  *domain.TrackMetadata
	pendingState *domain.PlaybackState
}

// NewPublisher creates an unbound publisher
func NewPublisher(logger *zap.Logger, art ArtResolver) *Publisher {
	return &Publisher{
		logger: logger,
		art:    art,
	}
}

// PublishMetadata implements domain.Publisher
func (p *Publisher) PublishMetadata(meta domain.TrackMetadata) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store == nil {
		p.pendingMeta = &meta
		return
	}
	p.setMetadata(meta)
}

// PublishState implements domain.Publisher
func (p *Publisher) PublishState(state domain.PlaybackState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store == nil {
		p.pendingState = &state
		return
	}
	p.setState(state)
}

func (p *Publisher) bind(store PropertyStore) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.store = store
	if p.pendingMeta != nil {
		p.setMetadata(*p.pendingMeta)
		p.pendingMeta = nil
	}
	if p.pendingState != nil {
		p.setState(*p.pendingState)
		p.pendingState = nil
	}
}

func (p *Publisher) unbind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store = nil
}

func (p *Publisher) setMetadata(meta domain.TrackMetadata) {
	p.store.SetMust(ifacePlayer, "Metadata", p.metadataMap(meta))
	p.logger.Debug("Published metadata", zap.String("id", meta.ID), zap.String("title", meta.Title))
}

func (p *Publisher) setState(state domain.PlaybackState) {
	p.store.SetMust(ifacePlayer, "PlaybackStatus", state.Phase.String())
	p.store.SetMust(ifacePlayer, "CanPlay", state.Actions.Has(domain.ActionPlayPause))
	p.store.SetMust(ifacePlayer, "CanPause", state.Actions.Has(domain.ActionPlayPause))
	p.store.SetMust(ifacePlayer, "CanGoNext", state.Actions.Has(domain.ActionSkipNext))
	p.store.SetMust(ifacePlayer, "CanGoPrevious", state.Actions.Has(domain.ActionSkipPrevious))
	p.store.SetMust(ifacePlayer, "Rate", state.Rate)
	p.store.SetMust(ifacePlayer, "Position", state.Position.Microseconds())

	p.logger.Debug("Published state",
		zap.String("current", state.Current),
		zap.Stringer("phase", state.Phase),
		zap.Stringer("actions", state.Actions))
}

func (p *Publisher) metadataMap(meta domain.TrackMetadata) map[string]dbus.Variant {
	m := map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(trackPath(meta.ID)),
	}
	if meta.Title != "" {
		m["xesam:title"] = dbus.MakeVariant(meta.Title)
	}
	if meta.Artist != "" {
		m["xesam:artist"] = dbus.MakeVariant([]string{meta.Artist})
	}
	if meta.Source != "" {
		m["xesam:url"] = dbus.MakeVariant("file://" + meta.Source)
	}
	if p.art != nil {
		if u := p.art.ArtURL(meta.ID); u != "" {
			m["mpris:artUrl"] = dbus.MakeVariant(u)
		}
	}
	return m
}

// initialProperties is the property table exported at start
func initialProperties(identity string) map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		ifaceRoot: {
			"Identity":            identity,
			"CanQuit":             false,
			"CanRaise":            false,
			"HasTrackList":        false,
			"SupportedUriSchemes": []string{},
			"SupportedMimeTypes":  []string{"audio/mpeg", "audio/wav"},
		},
		ifacePlayer: {
			"PlaybackStatus": domain.PhaseIdle.String(),
			"Metadata":       map[string]dbus.Variant{"mpris:trackid": dbus.MakeVariant(noTrack)},
			"Rate":           1.0,
			"MinimumRate":    1.0,
			"MaximumRate":    1.0,
			"Position":       int64(0),
			"CanGoNext":      false,
			"CanGoPrevious":  false,
			"CanPlay":        false,
			"CanPause":       false,
			"CanSeek":        false,
			"CanControl":     true,
		},
	}
}

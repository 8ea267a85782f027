package mpris

import (
	"context"
	"time"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// invoker runs one transport command against the commander with a bounded wait
type invoker struct {
	logger    *zap.Logger
	commander Commander
	timeout   time.Duration
}

func (v *invoker) call(name string, fn func(ctx context.Context) error) *dbus.Error {
	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		v.logger.Warn("Transport command failed", zap.String("method", name), zap.Error(err))
		return toDBusError(err)
	}
	return nil
}

// rootObject implements org.mpris.MediaPlayer2
type rootObject struct {
	*invoker
}

// Raise is accepted and ignored
func (o *rootObject) Raise() *dbus.Error { return nil }

// Quit is accepted and ignored
func (o *rootObject) Quit() *dbus.Error { return nil }

// playerObject implements org.mpris.MediaPlayer2.Player
type playerObject struct {
	*invoker
}

// playerMethodNames maps Go method names to their D-Bus member names
var playerMethodNames = map[string]string{"SeekBy": "Seek"}

func (o *playerObject) Play() *dbus.Error {
	return o.call("Play", o.commander.Play)
}

func (o *playerObject) Pause() *dbus.Error {
	return o.call("Pause", o.commander.Pause)
}

func (o *playerObject) PlayPause() *dbus.Error {
	return o.call("PlayPause", o.commander.TogglePlayPause)
}

// Stop holds the track; there is no stopped-but-loaded state
func (o *playerObject) Stop() *dbus.Error {
	return o.call("Stop", o.commander.Pause)
}

func (o *playerObject) Next() *dbus.Error {
	return o.call("Next", o.commander.SkipToNext)
}

func (o *playerObject) Previous() *dbus.Error {
	return o.call("Previous", o.commander.SkipToPrevious)
}

// SeekBy is exported as Seek, see playerMethodNames
func (o *playerObject) SeekBy(offset int64) *dbus.Error {
	return errNotSupported
}

func (o *playerObject) SetPosition(trackID dbus.ObjectPath, position int64) *dbus.Error {
	return errNotSupported
}

func (o *playerObject) OpenUri(uri string) *dbus.Error {
	return errNotSupported
}

// browseEntry is the wire form of a browse item, signature (sssbb)
type browseEntry struct {
	ID        string
	Title     string
	Subtitle  string
	Browsable bool
	Playable  bool
}

// browserObject implements org.beatbox.MediaBrowser
type browserObject struct {
	*invoker
	browser Browser
}

func (o *browserObject) GetRoot() (string, *dbus.Error) {
	return o.browser.Root(), nil
}

func (o *browserObject) LoadChildren(parentID string) ([]browseEntry, *dbus.Error) {
	items, err := o.browser.ListChildren(parentID)
	if err != nil {
		o.logger.Error("Failed to list children", zap.String("parent", parentID), zap.Error(err))
		return nil, toDBusError(err)
	}
	entries := make([]browseEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, browseEntry{
			ID:        it.ID,
			Title:     it.Title,
			Subtitle:  it.Subtitle,
			Browsable: it.Browsable,
			Playable:  it.Playable,
		})
	}
	return entries, nil
}

func (o *browserObject) PlayFromId(id string) *dbus.Error {
	return o.call("PlayFromId", func(ctx context.Context) error {
		return o.commander.PlayFromID(ctx, id)
	})
}

func (o *browserObject) PlayFromSearch(query string) *dbus.Error {
	return o.call("PlayFromSearch", func(ctx context.Context) error {
		return o.commander.PlayFromSearch(ctx, query)
	})
}

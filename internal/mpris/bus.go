// Package mpris exposes the playback controller on the D-Bus session bus
// through the MPRIS interfaces plus a browse extension.
package mpris

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/smartnsoft/beatbox/internal/catalog"
	"github.com/smartnsoft/beatbox/internal/domain"
)

const (
	objectPath = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	busPrefix  = "org.mpris.MediaPlayer2."

	ifaceRoot    = "org.mpris.MediaPlayer2"
	ifacePlayer  = "org.mpris.MediaPlayer2.Player"
	ifaceBrowser = "org.beatbox.MediaBrowser"

	trackPrefix = "/org/beatbox/track/"
	noTrack     = dbus.ObjectPath("/org/mpris/MediaPlayer2/TrackList/NoTrack")
)

// Bus is the part of a session bus connection the server uses.
// *dbus.Conn satisfies it.
//
//go:generate mockgen -destination=mocks/mpris_mock.go -package=mocks github.com/smartnsoft/beatbox/internal/mpris Bus,PropertyStore,Commander
type Bus interface {
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	ExportWithMap(v interface{}, mapping map[string]string, path dbus.ObjectPath, iface string) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	ReleaseName(name string) (dbus.ReleaseNameReply, error)
	Close() error
}

// PropertyStore holds the exported properties. *prop.Properties satisfies it.
type PropertyStore interface {
	SetMust(iface, property string, v interface{})
	Introspection(iface string) []introspect.Property
}

// Commander receives the transport commands
type Commander interface {
	PlayFromID(ctx context.Context, id string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	TogglePlayPause(ctx context.Context) error
	SkipToNext(ctx context.Context) error
	SkipToPrevious(ctx context.Context) error
	PlayFromSearch(ctx context.Context, query string) error
}

// Browser is the browse tree source
type Browser interface {
	Root() string
	ListChildren(parentID string) ([]domain.BrowseItem, error)
}

// ArtResolver maps a track to the URL of its picture
type ArtResolver interface {
	ArtURL(id string) string
}

func dialSession() (Bus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func exportProperties(bus Bus, props prop.Map) (PropertyStore, error) {
	conn, ok := bus.(*dbus.Conn)
	if !ok {
		return nil, fmt.Errorf("cannot export properties on %T", bus)
	}
	exported, err := prop.Export(conn, objectPath, props)
	if err != nil {
		return nil, err
	}
	return exported, nil
}

var errNotSupported = dbus.NewError("org.freedesktop.DBus.Error.NotSupported",
	[]interface{}{"operation not supported"})

// toDBusError maps controller errors to D-Bus errors
func toDBusError(err error) *dbus.Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, catalog.ErrInconsistent) {
		return dbus.NewError(ifaceBrowser+".Error.UnknownId", []interface{}{err.Error()})
	}
	return dbus.MakeFailedError(err)
}

// trackPath builds the mpris:trackid of id. Object paths only allow
// [A-Za-z0-9_] in elements.
func trackPath(id string) dbus.ObjectPath {
	if id == "" {
		return noTrack
	}
	b := []byte(id)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			b[i] = '_'
		}
	}
	return dbus.ObjectPath(trackPrefix + string(b))
}

package mpris

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const identity = "BeatBox"

// Server owns the D-Bus name and the exported MPRIS objects
type Server struct {
	logger    *zap.Logger
	busName   string
	invoker   *invoker
	browser   Browser
	publisher *Publisher

	// replaced in tests
	dial        func() (Bus, error)
	exportProps func(Bus, prop.Map) (PropertyStore, error)

	mu      sync.Mutex
	bus     Bus
	running bool
}

// NewServer creates a server that is not yet on the bus
func NewServer(
	logger *zap.Logger,
	cfg domain.Config,
	commander Commander,
	browser Browser,
	publisher *Publisher,
) *Server {
	return &Server{
		logger:  logger,
		busName: busPrefix + cfg.GetBusName(),
		invoker: &invoker{
			logger:    logger,
			commander: commander,
			// a command may wait for a full track load
			timeout: cfg.GetLoadTimeout() + 2*time.Second,
		},
		browser:     browser,
		publisher:   publisher,
		dial:        dialSession,
		exportProps: exportProperties,
	}
}

// BusName returns the well-known name claimed on start
func (s *Server) BusName() string {
	return s.busName
}

// Start connects to the session bus, exports the objects and claims the name
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	bus, err := s.dial()
	if err != nil {
		s.logger.Error("Failed to connect to session bus", zap.Error(err))
		return fmt.Errorf("session bus connection failed: %w", err)
	}

	store, err := s.export(bus)
	if err != nil {
		return multierr.Append(err, bus.Close())
	}

	reply, err := bus.RequestName(s.busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return multierr.Append(fmt.Errorf("failed to request name %s: %w", s.busName, err), bus.Close())
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return multierr.Append(fmt.Errorf("bus name %s already taken", s.busName), bus.Close())
	}

	s.bus = bus
	s.running = true
	s.publisher.bind(store)
	s.logger.Info("MPRIS server started", zap.String("name", s.busName))
	return nil
}

func (s *Server) export(bus Bus) (PropertyStore, error) {
	root := &rootObject{invoker: s.invoker}
	player := &playerObject{invoker: s.invoker}
	browser := &browserObject{invoker: s.invoker, browser: s.browser}

	for iface, obj := range map[string]interface{}{
		ifaceRoot:    root,
		ifaceBrowser: browser,
	} {
		if err := bus.Export(obj, objectPath, iface); err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", iface, err)
		}
	}
	if err := bus.ExportWithMap(player, playerMethodNames, objectPath, ifacePlayer); err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", ifacePlayer, err)
	}

	store, err := s.exportProps(bus, propertyMap(identity))
	if err != nil {
		return nil, fmt.Errorf("failed to export properties: %w", err)
	}

	node := &introspect.Node{
		Name: string(objectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{Name: ifaceRoot, Methods: introspect.Methods(root), Properties: store.Introspection(ifaceRoot)},
			{Name: ifacePlayer, Methods: renameMethods(introspect.Methods(player), playerMethodNames), Properties: store.Introspection(ifacePlayer)},
			{Name: ifaceBrowser, Methods: introspect.Methods(browser)},
		},
	}
	if err := bus.Export(introspect.NewIntrospectable(node), objectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return nil, fmt.Errorf("failed to export introspection: %w", err)
	}
	return store, nil
}

// renameMethods applies an export mapping to introspected methods
func renameMethods(methods []introspect.Method, mapping map[string]string) []introspect.Method {
	for i, m := range methods {
		if name, ok := mapping[m.Name]; ok {
			methods[i].Name = name
		}
	}
	return methods
}

// Stop releases the name and closes the connection
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false
	s.publisher.unbind()

	var err error
	if _, relErr := s.bus.ReleaseName(s.busName); relErr != nil {
		s.logger.Warn("Failed to release bus name", zap.Error(relErr))
		err = multierr.Append(err, relErr)
	}
	if cerr := s.bus.Close(); cerr != nil {
		s.logger.Warn("Failed to close D-Bus connection", zap.Error(cerr))
		err = multierr.Append(err, cerr)
	}
	s.bus = nil

	s.logger.Info("MPRIS server shutdown complete")
	return err
}

// propertyMap builds the exported property table. Position changes are not
// signalled, clients poll it.
func propertyMap(identity string) prop.Map {
	props := prop.Map{}
	for iface, values := range initialProperties(identity) {
		props[iface] = make(map[string]*prop.Prop, len(values))
		for name, v := range values {
			emit := prop.EmitTrue
			if name == "Position" {
				emit = prop.EmitFalse
			}
			props[iface][name] = &prop.Prop{Value: v, Writable: false, Emit: emit}
		}
	}
	return props
}

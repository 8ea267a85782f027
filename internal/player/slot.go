package player

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrLoad marks a source that could not be loaded or prepared
	ErrLoad = errors.New("failed to load source")
	// ErrNotLoaded is returned when controlling a player with no prepared source
	ErrNotLoaded = errors.New("no source loaded")
)

// Slot owns the single live Player. Replacing the player always releases
// the previous instance before the next one is constructed.
type Slot struct {
	logger  *zap.Logger
	factory domain.PlayerFactory

	mu      sync.Mutex
	current domain.Player
	source  string
}

// NewSlot creates an empty player slot
func NewSlot(logger *zap.Logger, factory domain.PlayerFactory) *Slot {
	return &Slot{
		logger:  logger,
		factory: factory,
	}
}

// Replace releases the live player, then builds, loads and prepares a new
// one for source. On failure the slot is left empty and every partially
// built player has been released.
func (s *Slot) Replace(ctx context.Context, source string) (domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.releaseLocked()

	p, newErr := s.factory.NewPlayer()
	if newErr != nil {
		return nil, multierr.Append(fmt.Errorf("%w: %s: %w", ErrLoad, source, newErr), err)
	}

	if loadErr := p.Load(ctx, source); loadErr != nil {
		return nil, multierr.Combine(fmt.Errorf("%w: %s: %w", ErrLoad, source, loadErr), p.Release(), err)
	}
	if prepErr := p.Prepare(ctx); prepErr != nil {
		return nil, multierr.Combine(fmt.Errorf("%w: %s: %w", ErrLoad, source, prepErr), p.Release(), err)
	}

	if err != nil {
		// The old instance is dropped even when its release failed
		s.logger.Warn("Previous player released with error", zap.Error(err))
	}

	s.current = p
	s.source = source
	s.logger.Debug("Player replaced", zap.String("source", source))
	return p, nil
}

// Current returns the live player, nil when the slot is empty
func (s *Slot) Current() domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Source returns the source of the live player
func (s *Slot) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Release frees the live player and empties the slot
func (s *Slot) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releaseLocked()
}

func (s *Slot) releaseLocked() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Release()
	s.current = nil
	s.source = ""
	if err != nil {
		return fmt.Errorf("failed to release player: %w", err)
	}
	return nil
}

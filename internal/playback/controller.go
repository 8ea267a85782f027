package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/zap"
)

// ErrNotRunning is returned for commands submitted while the loop is stopped
var ErrNotRunning = errors.New("playback controller is not running")

// Library is the catalog view the controller needs
type Library interface {
	Lookup(id string) (domain.TrackMetadata, error)
	Neighbor(id string, step int) (string, bool)
	Single() string
}

// PlayerSlot owns the live player
type PlayerSlot interface {
	Replace(ctx context.Context, source string) (domain.Player, error)
	Current() domain.Player
	Release() error
}

type commandKind int

const (
	cmdPlayFromID commandKind = iota
	cmdPlay
	cmdPause
	cmdTogglePlayPause
	cmdSkipNext
	cmdSkipPrevious
	cmdPlayFromSearch
	cmdSnapshot
)

func (k commandKind) String() string {
	switch k {
	case cmdPlayFromID:
		return "play_from_id"
	case cmdPlay:
		return "play"
	case cmdPause:
		return "pause"
	case cmdTogglePlayPause:
		return "play_pause"
	case cmdSkipNext:
		return "skip_next"
	case cmdSkipPrevious:
		return "skip_previous"
	case cmdPlayFromSearch:
		return "play_from_search"
	default:
		return "snapshot"
	}
}

type command struct {
	kind  commandKind
	arg   string
	reply chan result
}

type result struct {
	state domain.PlaybackState
	err   error
}

// Controller maps transport commands to player actions.
// Commands are applied one at a time, in arrival order, by a single loop
// goroutine that owns the PlaybackState.
type Controller struct {
	logger      *zap.Logger
	library     Library
	slot        PlayerSlot
	publisher   domain.Publisher
	loadTimeout time.Duration
	now         func() time.Time

	commands chan command

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewController creates a stopped controller
func NewController(
	logger *zap.Logger,
	cfg domain.Config,
	lib Library,
	slot PlayerSlot,
	pub domain.Publisher,
) *Controller {
	return &Controller{
		logger:      logger,
		library:     lib,
		slot:        slot,
		publisher:   pub,
		loadTimeout: cfg.GetLoadTimeout(),
		now:         time.Now,
		commands:    make(chan command),
	}
}

// Start launches the command loop in a goroutine.
// It returns immediately (non-blocking).
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true

	go c.runLoop(loopCtx, c.done)

	c.logger.Info("Playback controller started")
	return nil
}

// Stop ends the command loop and releases the player
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	c.cancel()
	done := c.done
	c.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := c.slot.Release(); err != nil {
		c.logger.Error("Failed to release player", zap.Error(err))
		return err
	}

	c.logger.Info("Playback controller stopped")
	return nil
}

func (c *Controller) runLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	state := domain.PlaybackState{Phase: domain.PhaseIdle, Rate: 1}

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-c.commands:
			var err error
			state, err = c.apply(ctx, state, cmd)
			cmd.reply <- result{state: state, err: err}
		}
	}
}

// submit hands cmd to the loop and waits for it to be applied
func (c *Controller) submit(ctx context.Context, kind commandKind, arg string) (domain.PlaybackState, error) {
	c.mu.Lock()
	running, done := c.running, c.done
	c.mu.Unlock()
	if !running {
		return domain.PlaybackState{}, ErrNotRunning
	}

	cmd := command{kind: kind, arg: arg, reply: make(chan result, 1)}

	select {
	case c.commands <- cmd:
	case <-done:
		return domain.PlaybackState{}, ErrNotRunning
	case <-ctx.Done():
		return domain.PlaybackState{}, ctx.Err()
	}

	// Once accepted the command is always applied; the caller may stop waiting
	select {
	case r := <-cmd.reply:
		return r.state, r.err
	case <-ctx.Done():
		return domain.PlaybackState{}, ctx.Err()
	}
}

// PlayFromID selects a track and starts it
func (c *Controller) PlayFromID(ctx context.Context, id string) error {
	_, err := c.submit(ctx, cmdPlayFromID, id)
	return err
}

// Play resumes the current track
func (c *Controller) Play(ctx context.Context) error {
	_, err := c.submit(ctx, cmdPlay, "")
	return err
}

// Pause holds the current track
func (c *Controller) Pause(ctx context.Context) error {
	_, err := c.submit(ctx, cmdPause, "")
	return err
}

// TogglePlayPause pauses when playing and plays otherwise
func (c *Controller) TogglePlayPause(ctx context.Context) error {
	_, err := c.submit(ctx, cmdTogglePlayPause, "")
	return err
}

// SkipToNext moves to the following instrument
func (c *Controller) SkipToNext(ctx context.Context) error {
	_, err := c.submit(ctx, cmdSkipNext, "")
	return err
}

// SkipToPrevious moves to the preceding instrument
func (c *Controller) SkipToPrevious(ctx context.Context) error {
	_, err := c.submit(ctx, cmdSkipPrevious, "")
	return err
}

// PlayFromSearch resumes the current track. The query is not interpreted.
func (c *Controller) PlayFromSearch(ctx context.Context, query string) error {
	_, err := c.submit(ctx, cmdPlayFromSearch, query)
	return err
}

// Snapshot returns the current playback state
func (c *Controller) Snapshot(ctx context.Context) (domain.PlaybackState, error) {
	return c.submit(ctx, cmdSnapshot, "")
}

package playback

import (
	"context"

	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/zap"
)

// AllowedActions returns the transport controls valid while current is selected
func AllowedActions(single, current string) domain.Action {
	if current == single {
		return domain.ActionPlayPause
	}
	return domain.ActionPlayPause | domain.ActionSkip
}

// apply runs one command against state and returns the next state
func (c *Controller) apply(ctx context.Context, state domain.PlaybackState, cmd command) (domain.PlaybackState, error) {
	c.logger.Debug("Applying command",
		zap.Stringer("command", cmd.kind),
		zap.String("arg", cmd.arg),
		zap.String("current", state.Current),
		zap.Stringer("phase", state.Phase))

	switch cmd.kind {
	case cmdPlayFromID:
		return c.playFromID(ctx, state, cmd.arg)
	case cmdPlay, cmdPlayFromSearch:
		return c.play(state), nil
	case cmdPause:
		return c.pause(state), nil
	case cmdTogglePlayPause:
		if p := c.slot.Current(); p != nil && p.IsPlaying() {
			return c.pause(state), nil
		}
		return c.play(state), nil
	case cmdSkipNext:
		return c.skip(ctx, state, 1)
	case cmdSkipPrevious:
		return c.skip(ctx, state, -1)
	default:
		return state, nil
	}
}

// playFromID replaces the player with one playing id
func (c *Controller) playFromID(ctx context.Context, state domain.PlaybackState, id string) (domain.PlaybackState, error) {
	meta, err := c.library.Lookup(id)
	if err != nil {
		c.logger.Error("Requested track is not in the catalog", zap.String("id", id), zap.Error(err))
		return state, err
	}

	state.Current = id
	c.publisher.PublishMetadata(meta)

	loadCtx, cancel := context.WithTimeout(ctx, c.loadTimeout)
	defer cancel()

	p, err := c.slot.Replace(loadCtx, meta.Source)
	if err != nil {
		c.logger.Error("Failed to load track",
			zap.String("id", id),
			zap.String("source", meta.Source),
			zap.Error(err))
		return c.publish(state, domain.PhaseIdle), nil
	}

	if err := p.Start(); err != nil {
		c.logger.Error("Failed to start track", zap.String("id", id), zap.Error(err))
		if relErr := c.slot.Release(); relErr != nil {
			c.logger.Warn("Failed to release player", zap.Error(relErr))
		}
		return c.publish(state, domain.PhaseIdle), nil
	}

	c.logger.Info("Playing track", zap.String("id", id), zap.String("title", meta.Title))
	return c.publish(state, domain.PhasePlaying), nil
}

// play starts the live player unless it is already producing audio.
// A stream that drained on its own is not playing, whatever the last
// published phase says.
func (c *Controller) play(state domain.PlaybackState) domain.PlaybackState {
	if state.Current == "" {
		return state
	}
	p := c.slot.Current()
	if p == nil || p.IsPlaying() {
		return state
	}
	if err := p.Start(); err != nil {
		c.logger.Error("Failed to resume playback", zap.String("id", state.Current), zap.Error(err))
		return state
	}
	return c.publish(state, domain.PhasePlaying)
}

// pause holds the live player. It is a no-op once Paused or Idle has been
// published and the player is silent.
func (c *Controller) pause(state domain.PlaybackState) domain.PlaybackState {
	p := c.slot.Current()
	if p == nil {
		return state
	}
	if !p.IsPlaying() && state.Phase != domain.PhasePlaying {
		return state
	}
	if err := p.Pause(); err != nil {
		c.logger.Error("Failed to pause playback", zap.String("id", state.Current), zap.Error(err))
		return state
	}
	return c.publish(state, domain.PhasePaused)
}

// skip moves step positions through the instrument cycle and plays the
// result, resuming playback even from Paused
func (c *Controller) skip(ctx context.Context, state domain.PlaybackState, step int) (domain.PlaybackState, error) {
	if state.Phase == domain.PhaseIdle {
		return state, nil
	}
	next, ok := c.library.Neighbor(state.Current, step)
	if !ok {
		return state, nil
	}
	return c.playFromID(ctx, state, next)
}

// publish moves state to phase with a zero position baseline and announces it
func (c *Controller) publish(state domain.PlaybackState, phase domain.Phase) domain.PlaybackState {
	state.Phase = phase
	state.Actions = AllowedActions(c.library.Single(), state.Current)
	state.Position = 0
	state.Rate = 1
	state.UpdatedAt = c.now()

	c.publisher.PublishState(state)
	return state
}

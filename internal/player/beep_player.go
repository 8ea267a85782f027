package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	extMP3 = ".mp3"
	extWAV = ".wav"

	resampleQuality = 4
)

// Output is the audio sink the player queues its stream on
type Output interface {
	// Init readies the device, it is called before every Play and must be idempotent
	Init() error
	// SampleRate is the rate streams must be resampled to
	SampleRate() beep.SampleRate
	// Play queues a streamer for mixing
	Play(s beep.Streamer)
	// Lock and Unlock guard streamers queued with Play
	Lock()
	Unlock()
}

// SpeakerOutput plays through the process-wide beep speaker
type SpeakerOutput struct {
	rate beep.SampleRate
	once sync.Once
	err  error
}

// NewSpeakerOutput creates a speaker output at 44.1kHz. The device is opened lazily.
func NewSpeakerOutput() *SpeakerOutput {
	return &SpeakerOutput{rate: beep.SampleRate(44100)}
}

func (o *SpeakerOutput) Init() error {
	o.once.Do(func() {
		o.err = speaker.Init(o.rate, o.rate.N(100*time.Millisecond))
	})
	return o.err
}

func (o *SpeakerOutput) SampleRate() beep.SampleRate { return o.rate }
func (o *SpeakerOutput) Play(s beep.Streamer)        { speaker.Play(s) }
func (o *SpeakerOutput) Lock()                       { speaker.Lock() }
func (o *SpeakerOutput) Unlock()                     { speaker.Unlock() }

// BeepFactory builds BeepPlayers sharing one output
type BeepFactory struct {
	logger *zap.Logger
	out    Output
}

// NewBeepFactory creates a player factory writing to out
func NewBeepFactory(logger *zap.Logger, out Output) *BeepFactory {
	return &BeepFactory{logger: logger, out: out}
}

// NewPlayer returns a fresh, unloaded player
func (f *BeepFactory) NewPlayer() (domain.Player, error) {
	return &BeepPlayer{logger: f.logger, out: f.out}, nil
}

// BeepPlayer decodes one mp3 or wav source and plays it on an Output
type BeepPlayer struct {
	logger *zap.Logger
	out    Output

	file     *os.File
	source   string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	finished atomic.Bool
	released bool
}

// Load opens the source file
func (p *BeepPlayer) Load(ctx context.Context, source string) error {
	if p.released {
		return fmt.Errorf("player already released")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case extMP3, extWAV:
	default:
		return fmt.Errorf("unsupported source format: %s", source)
	}

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	p.file = f
	p.source = source
	return nil
}

type decoded struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	err      error
}

// Prepare decodes the source and queues it, paused, on the output.
// Decoding is abandoned when ctx ends first.
func (p *BeepPlayer) Prepare(ctx context.Context) error {
	if p.file == nil {
		return ErrNotLoaded
	}

	result := make(chan decoded, 1)
	go func(f *os.File, ext string) {
		var d decoded
		if ext == extMP3 {
			d.streamer, d.format, d.err = mp3.Decode(f)
		} else {
			d.streamer, d.format, d.err = wav.Decode(f)
		}
		result <- d
	}(p.file, strings.ToLower(filepath.Ext(p.source)))

	var d decoded
	select {
	case d = <-result:
	case <-ctx.Done():
		// Close whatever the decoder produces once it returns
		go func() {
			if late := <-result; late.err == nil {
				late.streamer.Close()
			}
		}()
		return fmt.Errorf("decoding %s: %w", p.source, ctx.Err())
	}
	if d.err != nil {
		return fmt.Errorf("failed to decode %s: %w", p.source, d.err)
	}
	p.streamer = d.streamer
	p.format = d.format

	if err := p.out.Init(); err != nil {
		return fmt.Errorf("failed to initialise output: %w", err)
	}
	p.queue(true)

	p.logger.Debug("Source prepared",
		zap.String("source", p.source),
		zap.Int("sampleRate", int(d.format.SampleRate)),
		zap.Int("channels", d.format.NumChannels))
	return nil
}

// queue wraps the decoded stream in a fresh Ctrl and hands it to the output
func (p *BeepPlayer) queue(paused bool) {
	var s beep.Streamer = p.streamer
	if rate := p.out.SampleRate(); p.format.SampleRate != rate {
		s = beep.Resample(resampleQuality, p.format.SampleRate, rate, s)
	}

	p.finished.Store(false)
	p.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(s, beep.Callback(func() { p.finished.Store(true) })),
		Paused:   paused,
	}
	p.out.Play(p.ctrl)
}

// Start begins or resumes playback. A stream that reached its end is
// rewound and queued again.
func (p *BeepPlayer) Start() error {
	if p.ctrl == nil {
		return ErrNotLoaded
	}
	if !p.finished.Load() {
		return p.setPaused(false)
	}

	// The mixer drops the drained Ctrl once its streamer is gone
	p.out.Lock()
	p.ctrl.Streamer = nil
	err := p.streamer.Seek(0)
	p.out.Unlock()
	if err != nil {
		return fmt.Errorf("failed to rewind %s: %w", p.source, err)
	}

	p.queue(false)
	return nil
}

// Pause holds playback
func (p *BeepPlayer) Pause() error {
	return p.setPaused(true)
}

func (p *BeepPlayer) setPaused(paused bool) error {
	if p.ctrl == nil {
		return ErrNotLoaded
	}
	p.out.Lock()
	p.ctrl.Paused = paused
	p.out.Unlock()
	return nil
}

// IsPlaying reports whether the stream is unpaused and not yet drained
func (p *BeepPlayer) IsPlaying() bool {
	if p.ctrl == nil || p.finished.Load() {
		return false
	}
	p.out.Lock()
	defer p.out.Unlock()
	return !p.ctrl.Paused
}

// Release detaches the stream from the output and closes the source
func (p *BeepPlayer) Release() error {
	if p.released {
		return nil
	}
	p.released = true

	if p.ctrl != nil {
		p.out.Lock()
		// A Ctrl without streamer is drained and dropped by the mixer
		p.ctrl.Streamer = nil
		p.out.Unlock()
		p.ctrl = nil
	}

	var err error
	if p.streamer != nil {
		err = multierr.Append(err, p.streamer.Close())
		p.streamer = nil
	}
	if p.file != nil {
		// Decoders close the file with the streamer; a second close only reports os.ErrClosed
		if cerr := p.file.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			err = multierr.Append(err, cerr)
		}
		p.file = nil
	}
	return err
}

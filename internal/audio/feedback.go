package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sink receives finished streamers. Play must not block.
type Sink interface {
	Play(s beep.Streamer)
	Close() error
}

type nopSink struct{}

func (nopSink) Play(beep.Streamer) {}
func (nopSink) Close() error       { return nil }

// NopSink discards everything.
func NopSink() Sink { return nopSink{} }

// SpeakerSink mixes tones onto the system speaker.
type SpeakerSink struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// NewSpeakerSink opens the speaker. Callers fall back to NopSink on error.
func NewSpeakerSink() (*SpeakerSink, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &SpeakerSink{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *SpeakerSink) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *SpeakerSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}

// Feedback plays the game's tones when enabled.
type Feedback struct {
	sink    Sink
	enabled atomic.Bool
}

func NewFeedback(sink Sink, enabled bool) *Feedback {
	if sink == nil {
		sink = NopSink()
	}
	f := &Feedback{sink: sink}
	f.enabled.Store(enabled)
	return f
}

func (f *Feedback) Enabled() bool { return f.enabled.Load() }

func (f *Feedback) SetEnabled(v bool) { f.enabled.Store(v) }

func (f *Feedback) Success() { f.play(SuccessTones) }
func (f *Feedback) Fail()    { f.play(FailTones) }
func (f *Feedback) Click()   { f.play(ClickTones) }

func (f *Feedback) play(tones []Tone) {
	if f == nil || !f.enabled.Load() {
		return
	}
	f.sink.Play(Sequence(tones, SampleRate))
}

func (f *Feedback) Close() error {
	if f == nil {
		return nil
	}
	return f.sink.Close()
}

package player

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

type State string

const (
	StateIdle         State = "Idle"
	StatePlaying      State = "Playing"
	StatePaused       State = "Paused"
	StateDisconnected State = "Disconnected"
)

// Filter is an audio filter applied to the whole session.
type Filter string

const (
	FilterNone      Filter = "none"
	FilterBassboost Filter = "bassboost"
	FilterNightcore Filter = "nightcore"
)

// allowedFilters is the user-facing set accepted by ParseFilter.
var allowedFilters = []string{"bassboost", "nightcore", "clear"}

// ParseFilter maps a user-supplied filter name (case-insensitive) to a
// Filter. "clear" resets to FilterNone.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(name) {
	case "bassboost":
		return FilterBassboost, nil
	case "nightcore":
		return FilterNightcore, nil
	case "clear":
		return FilterNone, nil
	default:
		return "", fmt.Errorf("unknown filter %q, available: %s", name, strings.Join(allowedFilters, ", "))
	}
}

const (
	MinVolume     = 0
	MaxVolume     = 100
	DefaultVolume = 100
)

var (
	ErrNothingPlaying = errors.New("no track is currently playing")
	ErrVolumeRange    = fmt.Errorf("volume must be between %d and %d", MinVolume, MaxVolume)
	ErrDisconnected   = errors.New("session is disconnected")
)

// Backend is the slice of the streaming backend a session drives. All
// calls are guild-scoped; the backend performs the actual audio work and
// reports track lifecycle back through asynchronous events.
type Backend interface {
	Play(ctx context.Context, guildID string, t Track) error
	Pause(ctx context.Context, guildID string, paused bool) error
	Stop(ctx context.Context, guildID string) error
	SetVolume(ctx context.Context, guildID string, level int) error
	SetFilter(ctx context.Context, guildID string, f Filter) error
	Destroy(ctx context.Context, guildID string) error
}

// Session owns playback state for a single guild: the current track, the
// queue, volume, active filter and the control-surface message reference.
// All state mutations are serialized through the session mutex; sessions
// of different guilds are fully independent.
//
// A session is event-reactive: it never times tracks itself. A dedicated
// goroutine dequeues the next track, issues the backend play command and
// then blocks until the backend's track-ended notification arrives.
type Session struct {
	guildID string
	backend Backend
	queue   *Queue

	mu            sync.Mutex
	state         State
	current       *Track
	volume        int
	filter        Filter
	textChannelID string
	ctrlChannelID string
	ctrlMessageID string

	trackEnd  chan struct{}
	cancel    context.CancelFunc
	closeOnce sync.Once
	onClose   func()
}

// NewSession creates a session for the guild. onClose runs exactly once
// when the session is torn down (used to drop it from the registry).
func NewSession(guildID, textChannelID string, backend Backend, onClose func()) *Session {
	return &Session{
		guildID:       guildID,
		textChannelID: textChannelID,
		backend:       backend,
		queue:         NewQueue(),
		state:         StateIdle,
		volume:        DefaultVolume,
		filter:        FilterNone,
		trackEnd:      make(chan struct{}, 1),
		onClose:       onClose,
	}
}

// Start launches the playback loop. Call once, after registration.
func (s *Session) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	go s.run(ctx)
}

// run is the playback loop: dequeue, play, wait for track end, repeat.
// It exits when the queue is closed or the session context is cancelled.
func (s *Session) run(ctx context.Context) {
	for {
		track, err := s.queue.DequeueWait(ctx)
		if err != nil {
			return
		}

		s.mu.Lock()
		t := track
		s.current = &t
		s.state = StatePlaying
		s.mu.Unlock()

		if err := s.backend.Play(ctx, s.guildID, track); err != nil {
			log.Printf("[ERR] [%s] Failed to start track %q: %v", s.guildID, track.Title, err)
			s.mu.Lock()
			s.current = nil
			if s.state != StateDisconnected {
				s.state = StateIdle
			}
			s.mu.Unlock()
			continue
		}

		select {
		case <-s.trackEnd:
			// State was settled by HandleTrackEnd; just advance.
		case <-ctx.Done():
			return
		}
	}
}

// Play queues a track for playback. It reports whether the track landed
// behind one that is already playing (callers use this to pick between a
// "now playing" and an "added to queue" response).
func (s *Session) Play(t Track) (queued bool) {
	s.mu.Lock()
	queued = s.state == StatePlaying || s.state == StatePaused
	s.mu.Unlock()

	s.queue.Enqueue(t)
	return queued
}

// TogglePause flips between Playing and Paused. Returns the resulting
// paused flag, or ErrNothingPlaying outside those two states.
func (s *Session) TogglePause(ctx context.Context) (paused bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePlaying:
		if err := s.backend.Pause(ctx, s.guildID, true); err != nil {
			return false, err
		}
		s.state = StatePaused
		return true, nil
	case StatePaused:
		if err := s.backend.Pause(ctx, s.guildID, false); err != nil {
			return false, err
		}
		s.state = StatePlaying
		return false, nil
	default:
		return false, ErrNothingPlaying
	}
}

// Skip stops the current track. The backend answers with a track-ended
// notification, which advances the queue through the playback loop.
func (s *Session) Skip(ctx context.Context) error {
	s.mu.Lock()
	active := s.state == StatePlaying || s.state == StatePaused
	s.mu.Unlock()

	if !active {
		if s.queue.Empty() {
			return ErrNothingPlaying
		}
		// Between tracks the loop is already dequeuing the next one, and a
		// backend stop with nothing playing emits no track-ended event.
		return nil
	}
	return s.backend.Stop(ctx, s.guildID)
}

// SetVolume applies a volume level in [MinVolume, MaxVolume]. Out-of-range
// levels are rejected with ErrVolumeRange and leave the session untouched.
func (s *Session) SetVolume(ctx context.Context, level int) error {
	if level < MinVolume || level > MaxVolume {
		return ErrVolumeRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return ErrDisconnected
	}
	if err := s.backend.SetVolume(ctx, s.guildID, level); err != nil {
		return err
	}
	s.volume = level
	return nil
}

// SetFilter applies one of the named audio filters. Unknown names are
// rejected before anything reaches the backend.
func (s *Session) SetFilter(ctx context.Context, name string) (Filter, error) {
	f, err := ParseFilter(name)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return "", ErrDisconnected
	}
	if err := s.backend.SetFilter(ctx, s.guildID, f); err != nil {
		return "", err
	}
	s.filter = f
	return f, nil
}

// HandleTrackStart records the backend-confirmed current track. Events
// arriving after teardown are dropped.
func (s *Session) HandleTrackStart(t Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return
	}
	s.current = &t
	s.state = StatePlaying
}

// HandleTrackEnd signals the playback loop that the backend finished a
// track. Notifications arrive at-least-once, so the ended track is matched
// against the session's current one: the first delivery settles it and a
// redelivery, arriving when nothing is current or after the loop has moved
// on to the next track, is dropped instead of advancing the queue a second
// time. An empty playback handle matches whichever track is current. The
// signal itself is buffered so an event racing the loop between play and
// wait is not lost.
func (s *Session) HandleTrackEnd(t Track) {
	s.mu.Lock()
	if s.current == nil || (t.Encoded != "" && s.current.Encoded != t.Encoded) {
		s.mu.Unlock()
		return
	}
	s.current = nil
	if s.state != StateDisconnected {
		s.state = StateIdle
	}
	s.mu.Unlock()

	select {
	case s.trackEnd <- struct{}{}:
	default:
	}
}

// Close tears the session down: terminal state, queue closed (waking any
// DequeueWait), playback loop cancelled, backend player destroyed and the
// registry callback fired. Idempotent; every operation afterwards must go
// through a fresh session.
func (s *Session) Close(ctx context.Context) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.state = StateDisconnected
		s.current = nil
		cancel := s.cancel
		s.mu.Unlock()

		s.queue.Close()
		if cancel != nil {
			cancel()
		}
		if err := s.backend.Destroy(ctx, s.guildID); err != nil {
			log.Printf("[WARN] [%s] Failed to destroy backend player: %v", s.guildID, err)
		}
		if s.onClose != nil {
			s.onClose()
		}
	})
}

func (s *Session) GuildID() string { return s.guildID }

func (s *Session) Queue() *Queue { return s.queue }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentTrack returns the track the session believes is playing, if any.
func (s *Session) CurrentTrack() (Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Track{}, false
	}
	return *s.current, true
}

func (s *Session) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *Session) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// TextChannelID is the session's home channel for control-surface messages.
func (s *Session) TextChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textChannelID
}

// SetTextChannel moves the session's home channel (the original bot follows
// whichever channel the latest play command came from).
func (s *Session) SetTextChannel(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textChannelID = channelID
}

// SwapControlMessage records the freshly rendered control-surface message
// and returns the previous reference, if any, so the caller can delete it.
// Only the most recent reference is authoritative.
func (s *Session) SwapControlMessage(channelID, messageID string) (prevChannelID, prevMessageID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prevChannelID, prevMessageID = s.ctrlChannelID, s.ctrlMessageID
	ok = prevMessageID != ""
	s.ctrlChannelID, s.ctrlMessageID = channelID, messageID
	return prevChannelID, prevMessageID, ok
}

// TakeControlMessage clears and returns the control-surface reference.
func (s *Session) TakeControlMessage() (channelID, messageID string, ok bool) {
	return s.SwapControlMessage("", "")
}

package sequencer

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/rounds/internal/model"
)

// ErrInvalidConfiguration reports a workout that cannot be run.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Sequencer is the countdown state machine for one workout session.
//
// It never schedules anything itself: the host calls Tick once per second
// while Running is true. All calls must come from one goroutine.
type Sequencer struct {
	cfg       model.Workout
	phase     Phase
	remaining int
	running   bool
	elapsed   int
	completed bool

	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(Event)
}

// Validate checks a workout plan. Zero warmup and zero rest are valid.
func Validate(cfg model.Workout) error {
	switch {
	case cfg.RoundSeconds <= 0:
		return fmt.Errorf("%w: round length must be > 0 seconds, got %d", ErrInvalidConfiguration, cfg.RoundSeconds)
	case cfg.Rounds < 1:
		return fmt.Errorf("%w: rounds must be >= 1, got %d", ErrInvalidConfiguration, cfg.Rounds)
	case cfg.WarmupSeconds < 0:
		return fmt.Errorf("%w: warmup must be >= 0 seconds, got %d", ErrInvalidConfiguration, cfg.WarmupSeconds)
	case cfg.RestSeconds < 0:
		return fmt.Errorf("%w: rest must be >= 0 seconds, got %d", ErrInvalidConfiguration, cfg.RestSeconds)
	}
	return nil
}

// New returns a paused sequencer positioned at the first phase.
func New(cfg model.Workout) (*Sequencer, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	s := &Sequencer{cfg: cfg}
	s.restart(false)
	return s, nil
}

// Subscribe registers fn for every event. Listeners run synchronously,
// before the triggering call returns. The returned func removes fn.
func (s *Sequencer) Subscribe(fn func(Event)) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Start resumes the countdown. No-op when running or finished.
func (s *Sequencer) Start() {
	if s.running || s.phase.Kind == Finished {
		return
	}
	s.running = true
}

// Pause stops the countdown. No-op when not running.
func (s *Sequencer) Pause() {
	if !s.running {
		return
	}
	s.running = false
}

// Toggle pauses a running sequencer and starts a paused one.
func (s *Sequencer) Toggle() {
	if s.running {
		s.Pause()
		return
	}
	s.Start()
}

// Tick consumes one second. It does nothing unless running, so a stale
// timer callback after Pause or Reset cannot change state.
func (s *Sequencer) Tick() {
	if !s.running || s.phase.Kind == Finished {
		return
	}
	if s.remaining > 0 {
		s.remaining--
		s.elapsed++
	}
	s.settle()
}

// Skip ends the current phase immediately and reports whether the
// workout is finished. Skipping a finished workout changes nothing.
func (s *Sequencer) Skip() bool {
	if s.phase.Kind == Finished {
		return true
	}
	s.advance(true)
	s.settle()
	return s.phase.Kind == Finished
}

// Reset starts a new session with the current plan.
func (s *Sequencer) Reset(autostart bool) {
	s.restart(autostart)
}

// Reconfigure starts a new session with cfg. On error the current
// session is left untouched.
func (s *Sequencer) Reconfigure(cfg model.Workout, autostart bool) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	s.cfg = cfg
	s.restart(autostart)
	return nil
}

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase { return s.phase }

// Remaining returns the seconds left in the current phase.
func (s *Sequencer) Remaining() int { return s.remaining }

// Running reports whether the countdown is advancing.
func (s *Sequencer) Running() bool { return s.running }

// Finished reports whether the workout is over.
func (s *Sequencer) Finished() bool { return s.phase.Kind == Finished }

// Config returns the plan of the current session.
func (s *Sequencer) Config() model.Workout { return s.cfg }

// Elapsed returns the seconds counted down by Tick this session.
// Skipped time is not included.
func (s *Sequencer) Elapsed() int { return s.elapsed }

// RoundsCompleted returns the number of rounds that have ended.
func (s *Sequencer) RoundsCompleted() int {
	switch s.phase.Kind {
	case Active:
		return s.phase.Round - 1
	case Rest:
		return s.phase.Round
	case Finished:
		return s.cfg.Rounds
	default:
		return 0
	}
}

// Label returns the display text for the current phase. It is empty
// once finished.
func (s *Sequencer) Label() string {
	switch s.phase.Kind {
	case Warmup:
		return "Get Ready"
	case Rest:
		return "Rest"
	case Active:
		return fmt.Sprintf("Round %d/%d", s.phase.Round, s.cfg.Rounds)
	default:
		return ""
	}
}

func (s *Sequencer) restart(autostart bool) {
	s.elapsed = 0
	s.completed = false
	if s.cfg.WarmupSeconds > 0 {
		s.phase = Phase{Kind: Warmup}
		s.remaining = s.cfg.WarmupSeconds
	} else {
		s.phase = Phase{Kind: Active, Round: 1}
		s.remaining = s.cfg.RoundSeconds
	}
	s.running = autostart
}

// settle resolves zero-length phases so callers only observe a phase
// with time left, or Finished.
func (s *Sequencer) settle() {
	for s.remaining == 0 && s.phase.Kind != Finished {
		s.advance(false)
	}
}

func (s *Sequencer) advance(skipped bool) {
	from := s.phase
	switch from.Kind {
	case Warmup:
		s.enter(Phase{Kind: Active, Round: 1}, s.cfg.RoundSeconds)
	case Active:
		if from.Round < s.cfg.Rounds {
			s.enter(Phase{Kind: Rest, Round: from.Round}, s.cfg.RestSeconds)
		} else {
			s.enter(Phase{Kind: Finished}, 0)
			s.running = false
		}
	case Rest:
		s.enter(Phase{Kind: Active, Round: from.Round + 1}, s.cfg.RoundSeconds)
	default:
		return
	}

	s.emit(Event{Type: PhaseChanged, From: from, To: s.phase, Seconds: s.remaining, Skipped: skipped})
	if s.phase.Kind == Finished && !s.completed {
		s.completed = true
		s.emit(Event{Type: Completed, From: from, To: s.phase, Skipped: skipped})
	}
}

func (s *Sequencer) enter(p Phase, seconds int) {
	s.phase = p
	s.remaining = seconds
}

func (s *Sequencer) emit(ev Event) {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := append([]listener(nil), s.listeners...)
	for _, l := range snapshot {
		l.fn(ev)
	}
}

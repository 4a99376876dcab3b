package sequencer

import (
	"sync"
	"time"

	"go-voicings/debug"
	"go-voicings/rhythm"
	"go-voicings/voicing"
)

const (
	defaultInterval  = 25 * time.Millisecond
	defaultLookAhead = 100 * time.Millisecond

	// startDelay gives the first click room to be scheduled ahead of time.
	startDelay = 50 * time.Millisecond
)

// Options tune the scheduler loop. Zero fields take defaults.
type Options struct {
	// Interval between scheduling passes.
	Interval time.Duration
	// LookAhead is how far past Now each pass schedules.
	LookAhead time.Duration
	// AfterFunc defers highlight updates until their step sounds.
	AfterFunc func(d time.Duration, f func())
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = defaultInterval
	}
	if o.LookAhead <= 0 {
		o.LookAhead = defaultLookAhead
	}
	if o.AfterFunc == nil {
		o.AfterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	return o
}

// Scheduler plays a Sequence against a Clock, handing every beat to an
// Output slightly ahead of time.
type Scheduler struct {
	clock Clock
	out   Output
	opts  Options

	mu        sync.Mutex
	seq       Sequence
	state     State
	pattern   rhythm.Pattern
	rhythm    string
	metronome bool

	cursor   int              // next step to schedule
	nextTime time.Duration    // clock time of cursor
	prev     *voicing.Voicing // voicing on the previous scheduled beat
	gen      uint64           // bumped on every transport change
	stopChan chan struct{}

	onStep func(step int)

	// Notify the UI of state changes
	UpdateChan chan struct{}
}

// NewScheduler creates a stopped scheduler over an empty sequence.
func NewScheduler(clock Clock, out Output, opts Options) *Scheduler {
	return &Scheduler{
		clock:      clock,
		out:        out,
		opts:       opts.withDefaults(),
		seq:        NewSequence(),
		state:      State{Tempo: DefaultTempo, Step: IdleStep},
		pattern:    rhythm.Quarter,
		rhythm:     "quarter",
		cursor:     -CountInBeats,
		UpdateChan: make(chan struct{}, 1),
	}
}

// OnStep registers a callback invoked when a step starts sounding.
func (s *Scheduler) OnStep(f func(step int)) {
	s.mu.Lock()
	s.onStep = f
	s.mu.Unlock()
}

// State returns a snapshot of the transport.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.Repeat != nil {
		r := *st.Repeat
		st.Repeat = &r
	}
	return st
}

// Sequence returns a copy of the current sequence.
func (s *Scheduler) Sequence() Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Clone()
}

// SetSequence replaces the sequence. Playback continues from the cursor.
func (s *Scheduler) SetSequence(seq Sequence) {
	s.mu.Lock()
	s.seq = seq.Clone().padded()
	s.mu.Unlock()
	s.notify()
}

// UpdateSequence edits the live sequence in place.
func (s *Scheduler) UpdateSequence(fn func(seq Sequence)) {
	s.mu.Lock()
	fn(s.seq)
	s.mu.Unlock()
	s.notify()
}

// Play starts from the count-in, or resumes when paused.
func (s *Scheduler) Play() {
	s.mu.Lock()
	if s.state.Playing {
		s.mu.Unlock()
		return
	}
	if s.state.Paused {
		if r := s.state.Repeat; r != nil && s.cursor >= 0 && !r.Contains(s.cursor) {
			s.cursor = r.Start
		}
		debug.Log("sched", "resume at %d", s.cursor)
	} else {
		s.cursor = -CountInBeats
		s.prev = nil
		debug.Log("sched", "play tempo=%d", s.state.Tempo)
	}
	s.state.Playing = true
	s.state.Paused = false
	s.gen++
	s.nextTime = s.clock.Now() + startDelay
	stop := make(chan struct{})
	s.stopChan = stop
	s.mu.Unlock()

	s.pass()
	go s.loop(stop)
	s.notify()
}

// Pause halts scheduling and keeps the cursor.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	if !s.state.Playing {
		s.mu.Unlock()
		return
	}
	s.halt()
	s.state.Paused = true
	debug.Log("sched", "pause at %d", s.cursor)
	s.mu.Unlock()
	s.notify()
}

// Resume continues a paused transport. It does nothing otherwise.
func (s *Scheduler) Resume() {
	if s.State().Paused {
		s.Play()
	}
}

// Toggle flips between playing and paused.
func (s *Scheduler) Toggle() {
	if s.State().Playing {
		s.Pause()
	} else {
		s.Play()
	}
}

// Stop halts scheduling and resets to the count-in.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.halt()
	s.state.Paused = false
	s.state.Step = IdleStep
	s.cursor = -CountInBeats
	s.prev = nil
	debug.Log("sched", "stop")
	s.mu.Unlock()
	s.notify()
}

func (s *Scheduler) halt() {
	if s.stopChan != nil {
		close(s.stopChan)
		s.stopChan = nil
	}
	s.state.Playing = false
	s.gen++
}

// Seek moves the cursor while paused. Returns false in any other state.
func (s *Scheduler) Seek(step int) bool {
	s.mu.Lock()
	if !s.state.Paused {
		s.mu.Unlock()
		return false
	}
	step = min(max(step, 0), max(len(s.seq)-1, 0))
	s.cursor = step
	s.state.Step = step
	s.prev = nil
	s.mu.Unlock()
	s.notify()
	return true
}

// SetTempo clamps and applies bpm from the next scheduled beat on.
func (s *Scheduler) SetTempo(bpm int) int {
	bpm = ClampTempo(bpm)
	s.mu.Lock()
	s.state.Tempo = bpm
	s.mu.Unlock()
	s.notify()
	return bpm
}

// SetRepeat restricts looping to [start, end].
func (s *Scheduler) SetRepeat(start, end int) Range {
	r := NewRange(start, end)
	s.mu.Lock()
	s.state.Repeat = &r
	s.mu.Unlock()
	s.notify()
	return r
}

func (s *Scheduler) ClearRepeat() {
	s.mu.Lock()
	s.state.Repeat = nil
	s.mu.Unlock()
	s.notify()
}

// SetRhythm selects a named comping pattern.
func (s *Scheduler) SetRhythm(name string) error {
	p, err := rhythm.Lookup(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pattern = p
	s.rhythm = name
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetPattern installs a custom comping pattern.
func (s *Scheduler) SetPattern(p rhythm.Pattern) {
	s.mu.Lock()
	s.pattern = p
	s.rhythm = "custom"
	s.mu.Unlock()
	s.notify()
}

func (s *Scheduler) Rhythm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rhythm
}

// SetMetronome toggles clicks under the chords.
func (s *Scheduler) SetMetronome(on bool) {
	s.mu.Lock()
	s.metronome = on
	s.mu.Unlock()
	s.notify()
}

func (s *Scheduler) Metronome() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metronome
}

// LoopBounds returns the steps playback wraps between.
func (s *Scheduler) LoopBounds() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loopBounds()
}

func (s *Scheduler) loopBounds() (int, int) {
	if r := s.state.Repeat; r != nil {
		return r.Start, r.End
	}
	return 0, s.seq.ContentEnd()
}

func (s *Scheduler) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.pass()
		}
	}
}

type pending struct {
	step int
	at   time.Duration
}

// pass schedules every beat that starts inside the look-ahead window.
func (s *Scheduler) pass() {
	s.mu.Lock()
	if !s.state.Playing {
		s.mu.Unlock()
		return
	}
	now := s.clock.Now()
	horizon := now + s.opts.LookAhead
	st := stepper{out: s.out, pattern: s.pattern, metronome: s.metronome, prev: s.prev}

	var due []pending
	for s.nextTime < horizon {
		beat := BeatDuration(s.state.Tempo)
		st.dispatch(s.seq, s.cursor, s.nextTime, beat)
		due = append(due, pending{step: s.cursor, at: s.nextTime})
		s.nextTime += beat
		s.advance()
	}
	s.prev = st.prev
	gen := s.gen
	s.mu.Unlock()

	debug.LogEvery(100, "sched", "pass scheduled=%d", len(due))
	for _, p := range due {
		step := p.step
		s.opts.AfterFunc(max(p.at-now, 0), func() { s.highlight(gen, step) })
	}
}

func (s *Scheduler) advance() {
	start, end := s.loopBounds()
	if s.cursor < 0 {
		s.cursor++
		if s.cursor == 0 {
			s.cursor = start
		}
		return
	}
	s.cursor++
	if s.cursor > end {
		s.cursor = start
	}
}

// highlight runs when a scheduled step starts sounding. Callbacks left over
// from before a pause or stop are ignored.
func (s *Scheduler) highlight(gen uint64, step int) {
	s.mu.Lock()
	if !s.state.Playing || s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.state.Step = step
	onStep := s.onStep
	s.mu.Unlock()

	if onStep != nil {
		onStep(step)
	}
	s.notify()
}

func (s *Scheduler) notify() {
	select {
	case s.UpdateChan <- struct{}{}:
	default:
	}
}

// stepper turns one beat into Output calls.
type stepper struct {
	out       Output
	pattern   rhythm.Pattern
	metronome bool
	prev      *voicing.Voicing
}

func (st *stepper) dispatch(seq Sequence, step int, at, beat time.Duration) {
	if step < 0 {
		st.click(at, step == -CountInBeats)
		return
	}
	if st.metronome {
		st.click(at, step%StepsPerMeasure == 0)
	}

	current := seq.At(step)
	if current == nil {
		st.prev = nil
		return
	}
	for _, tr := range rhythm.Triggers(st.pattern, step, current, st.prev) {
		st.chord(at+scale(beat, tr.Offset), current.Positions, scale(beat, tr.Duration))
	}
	st.prev = current
}

// A failing output costs one event, never the loop.
func (st *stepper) chord(at time.Duration, positions []voicing.FretPosition, dur time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			debug.Log("sched", "chord at %v dropped: %v", at, r)
		}
	}()
	st.out.PlayChord(at, positions, dur)
}

func (st *stepper) click(at time.Duration, accent bool) {
	defer func() {
		if r := recover(); r != nil {
			debug.Log("sched", "click at %v dropped: %v", at, r)
		}
	}()
	st.out.PlayClick(at, accent)
}

func scale(beat time.Duration, f float64) time.Duration {
	return time.Duration(float64(beat) * f)
}

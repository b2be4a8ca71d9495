// Package console runs a workout as plain line output.
package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/verte-zerg/rounds/internal/model"
	"github.com/verte-zerg/rounds/internal/sequencer"
	"github.com/verte-zerg/rounds/internal/stats"
)

// Runner drives a sequencer from a tick channel and prints one line per
// phase.
type Runner struct {
	out    io.Writer
	now    func() time.Time
	colors map[sequencer.Kind]*color.Color
	err    error
}

// New returns a Runner writing to out. Colors are only emitted when
// useColor is set.
func New(out io.Writer, useColor bool) *Runner {
	r := &Runner{
		out: out,
		now: time.Now,
		colors: map[sequencer.Kind]*color.Color{
			sequencer.Warmup:   color.New(color.FgYellow, color.Bold),
			sequencer.Active:   color.New(color.FgRed, color.Bold),
			sequencer.Rest:     color.New(color.FgBlue, color.Bold),
			sequencer.Finished: color.New(color.FgGreen, color.Bold),
		},
	}
	for _, c := range r.colors {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Run starts seq and ticks it once per value received on ticks until the
// workout finishes or ctx is done. The returned record describes the
// session either way; on cancellation the error is ctx.Err().
func (r *Runner) Run(ctx context.Context, seq *sequencer.Sequencer, ticks <-chan time.Time) (model.SessionRecord, error) {
	rec := model.SessionRecord{
		StartedAt: r.now(),
		Workout:   seq.Config(),
	}
	unsubscribe := seq.Subscribe(func(ev sequencer.Event) {
		switch {
		case ev.Type == sequencer.Completed:
			r.printf(sequencer.Finished, "%s  Workout complete\n", stats.FormatClock(seq.Elapsed()))
		case ev.Type == sequencer.PhaseChanged && ev.Seconds > 0:
			r.printPhase(seq)
		}
	})
	defer unsubscribe()

	r.printPhase(seq)
	seq.Start()
	for !seq.Finished() {
		select {
		case <-ctx.Done():
			seq.Pause()
			r.finishRecord(&rec, seq)
			return rec, ctx.Err()
		case <-ticks:
			seq.Tick()
		}
		if r.err != nil {
			r.finishRecord(&rec, seq)
			return rec, fmt.Errorf("failed to write output: %w", r.err)
		}
	}
	r.finishRecord(&rec, seq)
	return rec, nil
}

func (r *Runner) finishRecord(rec *model.SessionRecord, seq *sequencer.Sequencer) {
	rec.EndedAt = r.now()
	rec.RoundsCompleted = seq.RoundsCompleted()
	rec.Completed = seq.Finished()
	rec.CountedSeconds = seq.Elapsed()
}

func (r *Runner) printPhase(seq *sequencer.Sequencer) {
	r.printf(seq.Phase().Kind, "%s  %-10s %s\n",
		stats.FormatClock(seq.Elapsed()), seq.Label(), stats.FormatClock(seq.Remaining()))
}

func (r *Runner) printf(kind sequencer.Kind, format string, args ...any) {
	if r.err != nil {
		return
	}
	c, ok := r.colors[kind]
	if !ok {
		_, r.err = fmt.Fprintf(r.out, format, args...)
		return
	}
	_, r.err = c.Fprintf(r.out, format, args...)
}

package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/rounds/internal/model"
	"github.com/verte-zerg/rounds/internal/sequencer"
)

// PlanStep is one observable phase of a workout.
type PlanStep struct {
	Phase   sequencer.Phase
	Label   string
	Seconds int
	StartAt int
}

// Plan lists the phases a workout will go through. Zero-length phases
// are never observed and are left out.
func Plan(w model.Workout) ([]PlanStep, error) {
	seq, err := sequencer.New(w)
	if err != nil {
		return nil, err
	}
	var steps []PlanStep
	offset := 0
	for !seq.Finished() {
		steps = append(steps, PlanStep{
			Phase:   seq.Phase(),
			Label:   seq.Label(),
			Seconds: seq.Remaining(),
			StartAt: offset,
		})
		offset += seq.Remaining()
		seq.Skip()
	}
	return steps, nil
}

// RenderPlan prints the phase list and total length of a workout.
func RenderPlan(w io.Writer, workout model.Workout) error {
	steps, err := Plan(workout)
	if err != nil {
		return err
	}
	headers := []string{"#", "Phase", "Length", "Starts"}
	rows := make([][]string, 0, len(steps))
	for i, step := range steps {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			step.Label,
			FormatClock(step.Seconds),
			FormatClock(step.StartAt),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "\nTotal Training Length: %s\n", FormatTotal(workout.TotalSeconds()))
	return err
}

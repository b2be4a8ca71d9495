// Package main provides the CLI entrypoint for rounds.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/rounds/internal/config"
	"github.com/verte-zerg/rounds/internal/console"
	"github.com/verte-zerg/rounds/internal/historyui"
	"github.com/verte-zerg/rounds/internal/model"
	"github.com/verte-zerg/rounds/internal/sequencer"
	"github.com/verte-zerg/rounds/internal/stats"
	"github.com/verte-zerg/rounds/internal/store"
	"github.com/verte-zerg/rounds/internal/tui"
)

const (
	defaultWarmup = "5s"
	defaultRound  = "3m"
	defaultRest   = "1m"
	defaultRounds = 3
)

var (
	workoutWarmup string
	workoutRound  string
	workoutRest   string
	workoutRounds int

	runPlain       bool
	runNoAutostart bool
	runNow         bool

	historySince       string
	historyLast        int
	historyCompleted   bool
	historyPruneBefore string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rounds",
		Short:         "Interval workout timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runWorkoutCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&workoutWarmup, "warmup", defaultWarmup, "get-ready countdown before the first round")
	flags.StringVar(&workoutRound, "round", defaultRound, "length of each round")
	flags.StringVar(&workoutRest, "rest", defaultRest, "rest between rounds")
	flags.IntVar(&workoutRounds, "rounds", defaultRounds, "number of rounds")

	rootCmd.Flags().BoolVar(&runPlain, "plain", false, "print phase changes instead of running the TUI")
	rootCmd.Flags().BoolVar(&runNoAutostart, "no-autostart", false, "wait for space before the countdown starts")
	rootCmd.Flags().BoolVar(&runNow, "now", false, "skip the settings screen and start immediately")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newPlanCmd())

	return rootCmd
}

func runWorkoutCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	workout, err := resolveWorkout(cmd, fileCfg)
	if err != nil {
		return err
	}

	autostart := !runNoAutostart
	if fileCfg.UI.Autostart != nil && !cmd.Flags().Changed("no-autostart") {
		autostart = *fileCfg.UI.Autostart
	}
	confirmQuit := boolOr(fileCfg.UI.ConfirmQuit, true)

	var st *store.Store
	if boolOr(fileCfg.UI.History, true) {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if runPlain || !stdoutTTY {
		return runConsole(cmd.Context(), cmd.OutOrStdout(), workout, st, stdoutTTY)
	}

	opts := tui.Options{
		Autostart:   autostart,
		ConfirmQuit: confirmQuit,
		StartNow:    runNow,
	}
	m, err := tui.NewModel(workout, st, opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func runConsole(ctx context.Context, out io.Writer, workout model.Workout, st *store.Store, useColor bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	seq, err := sequencer.New(workout)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	runner := console.New(out, useColor && os.Getenv("NO_COLOR") == "")
	rec, runErr := runner.Run(ctx, seq, ticker.C)
	if st != nil && (rec.Completed || rec.CountedSeconds > 0) {
		if _, err := st.InsertSession(context.Background(), rec); err != nil {
			logErrf("failed to save session: %v\n", err)
		}
	}
	if errors.Is(runErr, context.Canceled) {
		logErrln("workout stopped")
		return nil
	}
	return runErr
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the phase plan and total length",
		Args:  cobra.NoArgs,
		RunE:  runPlanCmd,
	}
}

func runPlanCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	workout, err := resolveWorkout(cmd, fileCfg)
	if err != nil {
		return err
	}
	if err := stats.RenderPlan(cmd.OutOrStdout(), workout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past workouts",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N workouts")
	cmd.Flags().BoolVar(&historyCompleted, "completed", false, "only show finished workouts")
	cmd.Flags().StringVar(&historyPruneBefore, "prune-before", "", "delete workouts started before this date (YYYY-MM-DD)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	sinceTime, err := parseDateFlag("since", historySince)
	if err != nil {
		return err
	}
	pruneTime, err := parseDateFlag("prune-before", historyPruneBefore)
	if err != nil {
		return err
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if pruneTime != nil {
		n, err := st.DeleteBefore(context.Background(), *pruneTime)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		logErrf("Deleted %d workouts started before %s\n", n, historyPruneBefore)
		return nil
	}

	cfg := model.HistoryConfig{
		Since:         sinceTime,
		Last:          historyLast,
		CompletedOnly: historyCompleted,
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return renderHistoryText(context.Background(), cmd.OutOrStdout(), st, cfg)
	}

	m := historyui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func renderHistoryText(ctx context.Context, w io.Writer, st *store.Store, cfg model.HistoryConfig) error {
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return err
	}
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistory(w, report.Sessions); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveWorkout merges the config file into the workout flags and
// converts the result into a validated plan.
func resolveWorkout(cmd *cobra.Command, fileCfg config.FileConfig) (model.Workout, error) {
	applyStringConfig(cmd, "warmup", &workoutWarmup, fileCfg.Workout.Warmup)
	applyStringConfig(cmd, "round", &workoutRound, fileCfg.Workout.Round)
	applyStringConfig(cmd, "rest", &workoutRest, fileCfg.Workout.Rest)
	applyIntConfig(cmd, "rounds", &workoutRounds, fileCfg.Workout.Rounds)

	var (
		w   model.Workout
		err error
	)
	if w.WarmupSeconds, err = config.ParseSeconds("--warmup", workoutWarmup); err != nil {
		return model.Workout{}, err
	}
	if w.RoundSeconds, err = config.ParseSeconds("--round", workoutRound); err != nil {
		return model.Workout{}, err
	}
	if w.RestSeconds, err = config.ParseSeconds("--rest", workoutRest); err != nil {
		return model.Workout{}, err
	}
	w.Rounds = workoutRounds
	if err := validateWorkout(w); err != nil {
		return model.Workout{}, err
	}
	return w, nil
}

func validateWorkout(w model.Workout) error {
	if w.RoundSeconds <= 0 {
		return fmt.Errorf("--round must be > 0")
	}
	if w.Rounds <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}
	if err := sequencer.Validate(w); err != nil {
		if errors.Is(err, sequencer.ErrInvalidConfiguration) {
			return fmt.Errorf("invalid workout: %w", err)
		}
		return err
	}
	return nil
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s value: %w", name, err)
	}
	return &parsed, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rounds configuration
# Uncomment a value to enable it. CLI flags override config values.

[workout]
# warmup = %q            # Get-ready countdown before the first round
# round = %q             # Length of each round
# rest = %q              # Rest between rounds
# rounds = %d              # Number of rounds

[ui]
# autostart = true         # Start counting as soon as a workout opens
# confirm-quit = true      # Ask before leaving a running workout
# history = true           # Record workouts in the history database
`,
		defaultWarmup,
		defaultRound,
		defaultRest,
		defaultRounds,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

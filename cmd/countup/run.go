package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"github.com/goodtune/countup/internal/activity"
	"github.com/goodtune/countup/internal/config"
	"github.com/goodtune/countup/internal/stopwatch"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Time an activity interactively in the terminal",
	Long: heredoc.Doc(`
		Time an activity interactively. Commands are read from standard input:

		  title TEXT   set the activity title (not while running)
		  start        start timing
		  pause        pause timing
		  resume       resume timing
		  toggle       pause or resume
		  finish       record the activity in history and reset
		  status       show the current activity
		  history      show finished activities and the total
		  quit         exit
	`),
	Example: heredoc.Doc(`
		$ countup run
		> title Write report
		> start
		> finish
	`),
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create a quiet logger for interactive mode
	logger := zerolog.New(os.Stderr).Level(zerolog.ErrorLevel).With().Timestamp().Logger()

	store, err := openStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	// Ticks and the command loop write from different goroutines
	out := &lockedWriter{w: cmd.OutOrStdout()}

	wall := clock.New()
	engine := stopwatch.NewEngine(stopwatch.Config{
		Clock:        wall,
		Scheduler:    stopwatch.NewClockScheduler(wall),
		TickInterval: cfg.TickInterval(),
	}, logger)
	defer engine.Close()

	engine.Subscribe(liveRefresh(out))

	host := activity.NewHost(engine, store, activity.Config{
		Clock:           wall,
		TimestampLayout: cfg.Timer.TimestampLayout,
	}, logger)

	session := &terminal{host: host, out: out}
	return session.loop(cmd.Context(), cmd.InOrStdin())
}

// lockedWriter serialises writes to an underlying writer
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// liveRefresh rewrites the current terminal line with each emission.
// It runs on the engine goroutine, so it must only touch out.
func liveRefresh(out io.Writer) stopwatch.Observer {
	live := color.New(color.FgCyan, color.Bold)
	return func(seconds int64) {
		_, _ = live.Fprintf(out, "\r\033[K  %s  > ", stopwatch.FormatSeconds(seconds))
	}
}

// terminal reads commands and renders the host for a single interactive session
type terminal struct {
	host *activity.Host
	out  io.Writer
}

func (t *terminal) loop(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}

	t.status()
	fmt.Fprint(t.out, "> ")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(t.out, "> ")
			continue
		}

		name, rest, _ := strings.Cut(line, " ")
		if name == "quit" || name == "exit" {
			return nil
		}

		if err := t.exec(ctx, name, strings.TrimSpace(rest)); err != nil {
			_, _ = color.New(color.FgRed).Fprintf(t.out, "error: %v\n", err)
		}
		fmt.Fprint(t.out, "> ")
	}

	return scanner.Err()
}

func (t *terminal) exec(ctx context.Context, name, arg string) error {
	switch name {
	case "title":
		if err := t.host.SetTitle(arg); err != nil {
			return err
		}
	case "start":
		if err := t.host.Start(); err != nil {
			return err
		}
	case "pause":
		if err := t.host.Pause(); err != nil {
			return err
		}
	case "resume":
		if err := t.host.Resume(); err != nil {
			return err
		}
	case "toggle", "p":
		if err := t.host.Toggle(); err != nil {
			return err
		}
	case "finish":
		record, err := t.host.Finish(ctx)
		if err != nil {
			return err
		}
		_, _ = color.New(color.FgGreen).Fprintf(t.out, "Finished %q after %s\n",
			record.Title, stopwatch.FormatSeconds(record.Seconds))
		return t.history(ctx)
	case "history":
		return t.history(ctx)
	case "status":
	default:
		return errors.New("unknown command: " + name)
	}

	t.status()
	return nil
}

// status renders the title, elapsed time and available controls
func (t *terminal) status() {
	snap := t.host.Snapshot()

	title := snap.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}

	state := "paused"
	if snap.Running {
		state = "running"
	} else if snap.Seconds == 0 {
		state = "idle"
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(t.out, "%s  %s  [%s]\n", title, snap.Elapsed, state)

	var controls []string
	if snap.Controls.TitleEditable {
		controls = append(controls, "title")
	}
	if snap.Controls.CanStart {
		controls = append(controls, "start")
	}
	if snap.Controls.CanPause {
		controls = append(controls, "pause")
	}
	if snap.Controls.CanResume {
		controls = append(controls, "resume")
	}
	if snap.Controls.CanFinish {
		controls = append(controls, "finish")
	}
	_, _ = color.New(color.Faint).Fprintf(t.out, "  available: %s\n", strings.Join(controls, ", "))
}

// history renders finished activities, most recent first, and the total
func (t *terminal) history(ctx context.Context) error {
	summary, err := t.host.History(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan, color.Bold)
	_, _ = cyan.Fprintln(t.out, "History")
	if summary.Count == 0 {
		fmt.Fprintln(t.out, "  (none)")
	}
	for _, record := range summary.Records {
		fmt.Fprintf(t.out, "  %s  %-30s  %s\n", stopwatch.FormatSeconds(record.Seconds), record.Title, record.FinishedAt)
	}
	_, _ = cyan.Fprintf(t.out, "Total  %s\n", summary.Total)
	return nil
}

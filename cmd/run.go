package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/keypoint/keypointer/internal/engine"
	"github.com/keypoint/keypointer/internal/history"
	"github.com/keypoint/keypointer/internal/mode"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/platform/terminal"
	"github.com/keypoint/keypointer/internal/pointer"
	"github.com/keypoint/keypointer/internal/screens"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive pointer-control session",
	Long: "Capture the keyboard and drive the pointer from it. Letter keys move,\n" +
		"click, and scroll in basic mode; g, a, and r activate grid, area, and\n" +
		"prediction mode. Escape in basic mode (or Ctrl-C) ends the session.",
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("terminal", false, "Read keys from a terminal window instead of a system-wide capture")
}

func runRun(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	topo, err := screens.NewTopology(provider.Screens)
	if err != nil {
		return fmt.Errorf("reading display topology: %w", err)
	}

	bindings, err := snapshot.KeyBindings()
	if err != nil {
		return err
	}

	log := slog.Default()
	manager := mode.NewManager(mode.NewBasic(bindings, snapshot.Movement), mode.Listeners{
		ModeChanged: func(from, to mode.Kind) {
			log.Info("mode changed", "from", from, "to", to)
		},
	}, log)

	actor := pointer.NewActor(pointer.Options{
		OpenDevice:    func() (platform.PointerDevice, error) { return provider.Pointer, nil },
		Clamp:         topo.Clamp,
		OnFailsafe:    func(err error) { manager.FailSafe() },
		QueueSize:     snapshot.QueueSize,
		GlideDuration: time.Duration(snapshot.Movement.GlideMs) * time.Millisecond,
		GlideStep:     time.Duration(snapshot.Movement.GlideStepMs) * time.Millisecond,
		Logger:        log,
	})
	defer actor.Close()

	var store history.Store
	if snapshot.History.Enabled {
		path := snapshot.History.Path
		if path == "" {
			path, err = defaultHistoryPath()
			if err != nil {
				return err
			}
		}
		s, err := history.Open(path)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	keySource := provider.Keys
	if useTerminal, _ := cmd.Flags().GetBool("terminal"); useTerminal {
		keySource = terminal.New()
	}

	session, err := engine.New(engine.Options{
		Config:   snapshot,
		Keys:     keySource,
		Perms:    provider.Permissions,
		Actor:    actor,
		Topology: topo,
		Manager:  manager,
		History:  store,
		OnSequenceProgress: func(partial string) {
			log.Debug("grid sequence", "partial", partial)
		},
		OnArmedRegion: func(armed rune) {
			log.Debug("armed region", "symbol", string(armed))
		},
		Logger: log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return session.Run(ctx)
}

func defaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving history path: %w", err)
	}
	dir := filepath.Join(home, ".keypointer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating history directory: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}

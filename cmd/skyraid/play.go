package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyraid/internal/audio"
	"github.com/vovakirdan/skyraid/internal/bridge"
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
	"github.com/vovakirdan/skyraid/internal/platform/tui"
	"github.com/vovakirdan/skyraid/internal/registry"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagBridge     string
	flagSound      bool
	flagVolume     float64
	flagMusic      bool
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right/A/D  - Steer the fleet
  Mouse drag      - Steer toward the pointer
  P/Space         - Pause
  R               - Restart (after game over)
  Q/Ctrl+C        - Quit
  Ctrl+S          - Save a screenshot

Debug grants (uppercase):
  M D L R O  - Missile, Double, Laser, Ripple, Orbit
  S          - Speed up
  V G F B    - Vulcan, Guardian, Fire power, Ballistic

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  skyraid play skyraid
  skyraid play skyraid --difficulty hard
  skyraid play skyraid --config ./my-skyraid.yaml
  skyraid play skyraid_stream --bridge ws://localhost:21213
  skyraid play skyraid --sound --volume 0.3`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags shared by play and menu.
func addGameFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	c.Flags().StringVar(&flagBridge, "bridge", "", "Stream event WebSocket URL (e.g. "+bridge.DefaultURL+")")
	c.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects and music")
	c.Flags().Float64Var(&flagVolume, "volume", audio.DefaultConfig().Volume, "Master volume (0..1)")
	c.Flags().BoolVar(&flagMusic, "music", true, "Play background music with --sound")
	c.Flags().StringVar(&flagLogFile, "log", "~/.skyraid/skyraid.log", "Log file used while the terminal UI runs")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'skyraid list' to see available modes.")
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, cleanup, err := prepareGame(cmd.Context(), gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	// Close store and extras before potential exit
	cleanup()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// prepareGame applies the tuning flags, creates the game and attaches sound
// and the stream bridge when asked. The returned cleanup stops them.
func prepareGame(ctx context.Context, gameID string) (registry.Game, func(), error) {
	skyraid.SetConfigPath(flagConfig)
	skyraid.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		return nil, nil, err
	}

	sr, ok := game.(*skyraid.Game)
	if !ok || (!flagSound && flagBridge == "") {
		return game, func() {}, nil
	}

	logger, closeLog := openLog(flagLogFile)
	ctx, cancel := context.WithCancel(contextOrBackground(ctx))
	var player *audio.Player

	if flagSound {
		player = audio.NewPlayer(audio.Config{Volume: flagVolume, Music: flagMusic}, logger.WithPrefix("skyraid-audio"))
		if initErr := player.Init(); initErr != nil {
			logger.Warn("sound disabled", "error", initErr)
		} else {
			for _, t := range []sim.EventType{sim.EventSound, sim.EventGameOver, sim.EventScore} {
				sr.AddListener(t, player)
			}
		}
	}

	if flagBridge != "" {
		clientCfg := bridge.DefaultClientConfig()
		clientCfg.URL = flagBridge
		bridgeLog := logger.WithPrefix("skyraid-bridge")
		client := bridge.NewClient(clientCfg, bridge.New(sr, bridgeLog), bridgeLog)
		client.OnState = func(s bridge.ConnState) {
			bridgeLog.Info("connection", "state", s.String())
		}
		go func() {
			if runErr := client.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
				bridgeLog.Error("stopped", "error", runErr)
			}
		}()
	}

	cleanup := func() {
		cancel()
		if player != nil {
			player.Close()
		}
		closeLog()
	}
	return game, cleanup, nil
}

// openLog opens the log file that stands in for stderr while the terminal UI
// owns the screen. Falls back to discarding logs.
func openLog(path string) (*log.Logger, func()) {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		//nolint:errcheck // Best-effort directory creation
		os.MkdirAll(filepath.Dir(path), 0o755)
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "skyraid",
	})
	return logger, closeFn
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

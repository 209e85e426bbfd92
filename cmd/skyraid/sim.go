package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var (
	flagSimFrames uint64
	flagSimOut    string
	flagSimEvery  uint64
	flagSimSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the simulation without a terminal UI. The fleet flies on
autopilot (pursuit and dodging) until game over or the frame limit.

The final state can be written as a msgpack snapshot for replay checks:
two runs with the same seed and config produce the same snapshot hash.

Examples:
  skyraid sim --seed 42
  skyraid sim --seed 42 --frames 20000 --out run.msgpack
  skyraid sim --difficulty hard --every 4800
  skyraid sim --seed 7 --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagSimFrames, "frames", 48*60*5, "Maximum frames to simulate")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Write the final snapshot to this file")
	simCmd.Flags().Uint64Var(&flagSimEvery, "every", 0, "Log progress every N frames (0 = off)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "skyraid-sim",
	})

	cfg, err := config.LoadSkyraid(flagConfig)
	if err != nil {
		logger.Fatal("could not load config", "error", err)
	}
	if flagDifficulty != "" {
		config.ApplySkyraidPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session := sim.NewSession(cfg, seed)
	bosses := 0
	session.Events().Subscribe(sim.EventSound, sim.ListenerFunc(func(e sim.Event) {
		if e.Cue == sim.CueBeam {
			logger.Debug("beam fired", "frame", session.Frame())
		}
	}))
	session.Events().Subscribe(sim.EventGameOver, sim.ListenerFunc(func(sim.Event) {
		logger.Info("game over", "frame", session.Frame(), "score", session.Score())
	}))

	start := time.Now()
	for session.Frame() < flagSimFrames && !session.GameOver() {
		session.Step(sim.Input{})

		if s := session.Stats(); s.BossesDefeated != bosses {
			bosses = s.BossesDefeated
			logger.Info("boss defeated", "frame", session.Frame(), "total", bosses)
		}
		if flagSimEvery > 0 && session.Frame()%flagSimEvery == 0 {
			logger.Info("progress",
				"frame", session.Frame(),
				"score", session.Score(),
				"interval", fmt.Sprintf("%.1f", session.EnemyInterval()),
			)
		}
	}

	snap := session.Snapshot()
	stats := session.Stats()
	logger.Info("simulation finished",
		"seed", seed,
		"frames", stats.Frames,
		"score", snap.Score,
		"bosses", stats.BossesDefeated,
		"enemies", stats.EnemiesDestroyed,
		"peak_fire_power", stats.PeakFirePower,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	fmt.Printf("hash %016x\n", snap.Hash())

	if flagSimOut != "" {
		data, encErr := snap.Encode()
		if encErr != nil {
			logger.Fatal("could not encode snapshot", "error", encErr)
		}
		if writeErr := os.WriteFile(flagSimOut, data, 0o600); writeErr != nil {
			logger.Fatal("could not write snapshot", "error", writeErr)
		}
		logger.Info("snapshot written", "path", flagSimOut, "bytes", len(data))
	}

	if flagSimSave {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			logger.Fatal("could not open scores database", "error", openErr)
		}
		defer store.Close()

		runID, saveErr := store.SaveRun(storage.RunRecord{
			GameID:           "skyraid",
			Score:            snap.Score,
			Frames:           int64(stats.Frames),
			BossesDefeated:   stats.BossesDefeated,
			EnemiesDestroyed: stats.EnemiesDestroyed,
			PeakFirePower:    stats.PeakFirePower,
			Seed:             seed,
		})
		if saveErr != nil {
			logger.Error("could not save run", "error", saveErr)
			return
		}
		logger.Info("run saved", "run", runID)
	}
}

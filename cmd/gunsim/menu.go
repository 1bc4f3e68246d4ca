package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gunsim/internal/platform/tui"
	"github.com/vovakirdan/gunsim/internal/registry"
	"github.com/vovakirdan/gunsim/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick gun presets from an interactive menu",
	Long: `Start gunsim in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a simulation.
Quitting a simulation returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start simulation
  Tab          - Run history
  Q            - Quit

Examples:
  gunsim menu
  gunsim menu --fps 30
  gunsim menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for ctx.Err() == nil {
		menuResult, err := tui.RunMenu(width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		width, height = menuResult.Width, menuResult.Height

		if menuResult.Quit {
			return
		}

		if menuResult.WantsHistory {
			goBack, hErr := tui.RunHistory(store, width, height)
			if hErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", hErr)
			}
			if goBack {
				continue
			}
			return
		}

		preset, err := registry.Get(menuResult.PresetID)
		if err != nil {
			return
		}

		cfg, err := loadConfig(flagConfig, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return
		}

		_, err = execute(ctx, runPlan{
			preset:   preset,
			cfg:      cfg,
			renderer: rendererTUI,
			seed:     resolveSeed(),
		}, store, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		}
	}
}

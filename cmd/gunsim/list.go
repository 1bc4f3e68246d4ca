package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunsim/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all gun presets",
	Long:  `Shows every gun preset with its muzzle velocity and shot rate.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-9s  %-5s  %s\n", maxIDLen, "ID", "Velocity", "Rate", "Title")
	fmt.Printf("  %-*s  %-9s  %-5s  %s\n", maxIDLen, "--", "--------", "----", "-----")

	for _, p := range presets {
		def := ""
		if p.ID == registry.DefaultPreset {
			def = " (default)"
		}
		fmt.Printf("  %-*s  %-9s  %-5.2f  %s%s\n", maxIDLen, p.ID, fmt.Sprintf("%.0f m/s", p.MuzzleVelocity), p.ShotRate, p.Title, def)
	}

	fmt.Println()
	fmt.Println("Run 'gunsim run <id>' to start a simulation.")
}

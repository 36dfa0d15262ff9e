package main

import (
	"time"

	"github.com/Carmen-Shannon/oxy-room/internal/app"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted headless session and print each mode change",
	Long: `Runs without a window: locks the pointer, flies to a POI, waits, flies back and
waits again. Each view mode change is printed with the simulated time.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().String("poi", "", "POI id to inspect (default: first in the catalog)")
	simulateCmd.Flags().Duration("wait", 2*time.Second, "simulated time spent after each transition request")
	simulateCmd.Flags().Int("fps", 60, "simulated frame rate")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	poiID, _ := cmd.Flags().GetString("poi")
	wait, _ := cmd.Flags().GetDuration("wait")
	fps, _ := cmd.Flags().GetInt("fps")

	a, err := app.NewHeadless(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Simulate(cmd.OutOrStdout(), app.Script{PoiID: poiID, Wait: wait, FPS: fps})
}

package main

import (
	"github.com/Carmen-Shannon/oxy-room/internal/app"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the viewer window",
	Args:  cobra.NoArgs,
	RunE:  runViewer,
}

func init() {
	runCmd.Flags().Bool("software", false, "force the software (fallback) adapter")
	runCmd.Flags().Bool("profile", false, "log frame stats every second")
	rootCmd.AddCommand(runCmd)
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if software, _ := cmd.Flags().GetBool("software"); software {
		cfg.Window.Software = true
	}
	if profile, _ := cmd.Flags().GetBool("profile"); profile {
		cfg.Window.Profiler = true
	}

	a, err := app.NewWindowed(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run()
}

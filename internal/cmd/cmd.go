package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/MarognaLorenzo/MarOS/device/kbd"
	"github.com/MarognaLorenzo/MarOS/device/tty"
	"github.com/MarognaLorenzo/MarOS/internal/config"
	"github.com/MarognaLorenzo/MarOS/internal/term"
	"github.com/MarognaLorenzo/MarOS/kernel/cpu"
	"github.com/MarognaLorenzo/MarOS/kernel/hal"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "maros",
	Short: "maros runs an interactive line-editing console on an emulated kernel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.CLIConfig

		backend, err := term.New(
			time.Duration(cfg.Console.RefreshMillis)*time.Millisecond,
			cfg.Input.TimerHz,
		)
		if err != nil {
			return err
		}

		hal.DetectHardware()

		hal.WithTTY(func(dev tty.Device) {
			if ed, ok := dev.(*tty.Editor); ok {
				ed.SetBanner(cfg.Console.Banner)
				ed.SetTabWidth(cfg.Console.TabWidth)
				ed.SetColors(cfg.Console.DefaultFg, cfg.Console.DefaultBg)
				ed.SetCursorColors(cfg.Console.CursorFg, cfg.Console.CursorBg)
			}

			// Clear the boot log and greet with the banner.
			dev.WriteByte(0x0c)
		})

		cpu.EnableInterrupts()
		return backend.Run()
	},
}

// Execute parses the command line and runs the console.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "configuration file for maros")
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.NewConfig(cfgFile); err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}
}

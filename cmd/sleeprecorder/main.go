// cmd/sleeprecorder/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/tamzrod/sleep-recorder/internal/config"
	"github.com/tamzrod/sleep-recorder/internal/watchdog"
)

const programName = "sleeprecorder"

var version = "dev"

type options struct {
	configPath     string
	hardwarePath   string
	watchdogDevice string
	metricsFile    string
	debug          bool
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   programName,
		Short: "Overnight sleep movement and sound recorder",
		Long: `sleeprecorder waits for someone to lie down, then samples two
ultrasonic distance sensors and two sound sensors for RUN_LENGTH minutes
under a hardware watchdog. When the run ends it appends a report of
movements and the busiest minutes of sound to REPORT_FILE.

Requires access to the GPIO lines (or a Modbus I/O module) and /dev/watchdog.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return record(cmd.Context(), opts)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultConfigPath, "run config file (KEY = VALUE); empty for defaults")
	f.BoolVar(&opts.debug, "debug", false, "log at debug level")

	rf := cmd.Flags()
	rf.StringVar(&opts.hardwarePath, "hardware", "", "YAML hardware profile; empty for the default Raspberry Pi wiring")
	rf.StringVar(&opts.watchdogDevice, "watchdog-device", watchdog.DefaultDevice, "watchdog character device")
	rf.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics to this node-exporter textfile")

	cmd.AddCommand(newAnalyzeCmd(&opts))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, cmd); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadRunConfig reads the run config. An empty path means defaults; a path
// that cannot be opened is fatal.
func loadRunConfig(path string) (config.RunConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.ParseFile(path)
}

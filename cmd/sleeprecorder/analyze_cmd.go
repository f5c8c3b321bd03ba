// cmd/sleeprecorder/analyze_cmd.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/tamzrod/sleep-recorder/internal/logging"
	"github.com/tamzrod/sleep-recorder/internal/report"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var appendReport bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rebuild the report from existing logs",
		Long: `analyze re-reads ULTRA_STAT_FILE and SOUND_STAT_FILE from the run config
and prints the report. No hardware is touched.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := loadRunConfig(opts.configPath)
			if err != nil {
				return err
			}

			log, closeLog, err := logging.New(logging.Options{Name: programName, Debug: opts.debug})
			if err != nil {
				return err
			}
			defer closeLog()

			a, err := analyzeLogs(rc, log)
			if err != nil {
				return err
			}

			w := report.Writer{Program: programName}
			if appendReport {
				return w.AppendFile(rc.ReportFile, a)
			}
			return w.Write(cmd.OutOrStdout(), a)
		},
	}

	cmd.Flags().BoolVar(&appendReport, "append", false, "append to REPORT_FILE instead of printing")
	return cmd
}

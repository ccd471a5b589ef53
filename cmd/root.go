package cmd

import (
	"fmt"
	"os"

	"tsl-devserver/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands.
// Running it bare starts the server, exactly like `start`.
var RootCmd = &cobra.Command{
	Use:   "tsl-devserver",
	Short: "Local HTTPS server for WebGPU shader demos",
	Long: `tsl-devserver serves the current directory over HTTPS on localhost with the
cross-origin isolation (COOP/COEP) and CORS headers WebGPU pages need.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStart,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

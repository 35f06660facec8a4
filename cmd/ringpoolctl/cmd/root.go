// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cmd provides the CLI commands for ringpoolctl.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	blockSize    int64
	largeMult    int64
	maxBuffer    int64
	exponential  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "ringpoolctl",
	Short:         "Inspect and exercise a ringpool.Manager",
	Long:          `A small diagnostic tool for the pooled, seekable byte-stream allocator.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&blockSize, "block-size", 16384, "small pool block size in bytes")
	rootCmd.PersistentFlags().Int64Var(&largeMult, "large-multiple", 1<<20, "large pool sizing multiple in bytes")
	rootCmd.PersistentFlags().Int64Var(&maxBuffer, "max-buffer", 8<<20, "maximum large buffer size in bytes")
	rootCmd.PersistentFlags().BoolVar(&exponential, "exponential", false, "use exponential large-buffer sizing")
}

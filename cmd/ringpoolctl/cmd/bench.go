// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"time"

	"code.hybscloud.com/ringpool"
	"code.hybscloud.com/spin"
	"github.com/spf13/cobra"
)

var (
	benchIterations int
	benchPayload    int64
)

// benchCmd drives a short rent/write/dispose loop and reports throughput,
// mirroring the shape of the teacher's BenchmarkXxx_GetPut benchmarks but
// as a runnable CLI command rather than a go test benchmark.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Drive a short rent/return loop against a manager and report throughput",
	RunE: func(c *cobra.Command, args []string) error {
		mgr, err := ringpool.NewManager(blockSize, largeMult, maxBuffer, exponential)
		if err != nil {
			return fmt.Errorf("construct manager: %w", err)
		}

		payload := make([]byte, benchPayload)
		start := time.Now()
		for i := 0; i < benchIterations; i++ {
			s := mgr.GetStreamTag("bench")
			if _, err := s.Write(payload, 0, len(payload)); err != nil {
				s.Dispose()
				return fmt.Errorf("write at iteration %d: %w", i, err)
			}
			spin.Yield()
			if err := s.Dispose(); err != nil {
				return fmt.Errorf("dispose at iteration %d: %w", i, err)
			}
		}
		elapsed := time.Since(start)

		fmt.Fprintf(c.OutOrStdout(), "iterations=%d payload_bytes=%d elapsed=%s rate=%.0f ops/s\n",
			benchIterations, benchPayload, elapsed, float64(benchIterations)/elapsed.Seconds())
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 10_000, "number of rent/return iterations")
	benchCmd.Flags().Int64Var(&benchPayload, "payload", 4096, "bytes written per iteration")
	rootCmd.AddCommand(benchCmd)
}

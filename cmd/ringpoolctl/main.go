// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command ringpoolctl is a small diagnostic CLI for exercising a
// ringpool.Manager from the command line: reporting pool counters and
// driving a short rent/return benchmark loop.
package main

import (
	"os"

	"code.hybscloud.com/ringpool/cmd/ringpoolctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

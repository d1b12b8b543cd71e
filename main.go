// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	cmd "github.com/teactl/teactl/cmd/teactl"
)

func main() {
	os.Exit(cmd.Main())
}

// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fjankowsk/meertrap-misc/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}

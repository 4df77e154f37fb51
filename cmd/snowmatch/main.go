// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "snowmatch",
		Usage: "Draw and deliver secret snowflake gift matches",
		Commands: []*cli.Command{
			planCmd,
			runCmd,
			historyCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/winterops/snowmatch/exchange"
)

var historyCmd = &cli.Command{
	Name:  "history",
	Usage: "List recorded assignments",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "history",
			Required: true,
			Usage:    "specify the match history directory",
		},
	},
	Action: func(ctx *cli.Context) error {
		hist, err := exchange.OpenHistory(ctx.String("history"))
		if err != nil {
			return err
		}
		defer hist.Close()

		years, byYear, err := hist.All()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Year", "Giver", "Receiver"})
		for _, year := range years {
			for giver, receiver := range byYear[year] {
				table.Append([]string{strconv.Itoa(year), giver, receiver})
			}
		}
		table.Render()
		return nil
	},
}

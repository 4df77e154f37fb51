// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	env "github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/winterops/snowmatch/exchange"
)

var runCmd = &cli.Command{
	Name:    "run",
	Usage:   "Draw matches and email every giver",
	Aliases: []string{"r"},
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:     "year",
			Required: false,
			Usage:    "record the drawn assignment under this year in the history",
		},
	}, drawFlags...),
	Action: func(ctx *cli.Context) error {
		// Missing .env is fine; the settings may come from the shell.
		_ = godotenv.Load()

		var cfg exchange.SMTPConfig
		if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
			return fmt.Errorf("smtp config: %w", err)
		}

		if ctx.IsSet("year") && ctx.String("history") == "" {
			return errors.New("--year requires --history")
		}

		log, closeLog, err := newLogger(ctx.String("log"))
		if err != nil {
			return err
		}
		defer closeLog()

		pairings, summ, err := draw(ctx, log)
		if err != nil {
			return err
		}
		log.Info("sending notifications", "count", len(pairings))

		mailer := exchange.NewMailer(cfg, log)
		sent, failed := mailer.NotifyAll(pairings)

		log.Info("notification run complete",
			"sent", len(sent), "failed", len(failed), "attempts", summ.Attempts)

		if ctx.IsSet("year") {
			if err := record(ctx.String("history"), ctx.Int("year"), pairings); err != nil {
				return err
			}
			log.Info("assignment recorded", "year", ctx.Int("year"))
		}

		if len(failed) > 0 {
			color.Red.Printf("failed to notify %d of %d givers: %v\n",
				len(failed), len(pairings), failed)
			return fmt.Errorf("%d notification(s) failed", len(failed))
		}
		color.Green.Printf("notified all %d givers\n", len(sent))
		return nil
	},
}

func record(historyDir string, year int, pairings []exchange.Pairing) error {
	hist, err := exchange.OpenHistory(historyDir)
	if err != nil {
		return err
	}
	defer hist.Close()

	return hist.Save(year, exchange.AssignmentOf(pairings))
}

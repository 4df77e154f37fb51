// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/winterops/snowmatch"
	"github.com/winterops/snowmatch/exchange"
)

var drawFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "roster",
		Required: true,
		Usage:    "specify the input responses.csv",
	},
	&cli.StringFlag{
		Name:     "exclusions",
		Required: false,
		Usage:    "specify the exclusion rules json",
	},
	&cli.StringFlag{
		Name:     "history",
		Required: false,
		Usage:    "specify the match history directory (avoids repeating past matches)",
	},
	&cli.Int64Flag{
		Name:     "seed",
		Required: false,
		Usage:    "specify a random seed for a reproducible draw",
	},
	&cli.IntFlag{
		Name:     "max-attempts",
		Required: false,
		Value:    exchange.DefaultMaxAttempts,
		Usage:    "specify the retry budget",
	},
	&cli.StringFlag{
		Name:     "log",
		Required: false,
		Value:    "snowmatch.log",
		Usage:    "specify the log file",
	},
	&cli.BoolFlag{
		Name:     "verbose",
		Required: false,
		Usage:    "print per-attempt detail",
	},
}

var planCmd = &cli.Command{
	Name:    "plan",
	Usage:   "Draw matches without sending anything",
	Aliases: []string{"p"},
	Flags:   drawFlags,
	Action: func(ctx *cli.Context) error {
		log, closeLog, err := newLogger(ctx.String("log"))
		if err != nil {
			return err
		}
		defer closeLog()

		pairings, summ, err := draw(ctx, log)
		if err != nil {
			return err
		}

		printPairings(pairings)
		color.Green.Printf("drew %d matches in %d attempt(s)\n",
			len(pairings), summ.Attempts)
		return nil
	},
}

type drawOpts struct {
	rosterFile     string
	exclusionsFile string
	historyDir     string
	seed           *int64
	maxAttempts    int
	verbose        bool
}

func drawOptsFrom(ctx *cli.Context) drawOpts {
	opts := drawOpts{
		rosterFile:     ctx.String("roster"),
		exclusionsFile: ctx.String("exclusions"),
		historyDir:     ctx.String("history"),
		maxAttempts:    ctx.Int("max-attempts"),
		verbose:        ctx.Bool("verbose"),
	}
	if ctx.IsSet("seed") {
		seed := ctx.Int64("seed")
		opts.seed = &seed
	}
	return opts
}

func draw(ctx *cli.Context, log *slog.Logger) ([]exchange.Pairing, exchange.Summary, error) {
	opts := drawOptsFrom(ctx)

	roster, err := exchange.LoadRoster(opts.rosterFile)
	if err != nil {
		return nil, exchange.Summary{}, fmt.Errorf("load roster: %w", err)
	}
	log.Info("roster loaded", "participants", roster.Len())

	var rules []exchange.ExclusionRule
	if opts.exclusionsFile != "" {
		if rules, err = exchange.LoadExclusions(opts.exclusionsFile); err != nil {
			return nil, exchange.Summary{}, err
		}
		log.Info("exclusion rules loaded", "rules", len(rules))
	}

	var prior []snowmatch.Assignment
	if opts.historyDir != "" {
		hist, err := exchange.OpenHistory(opts.historyDir)
		if err != nil {
			return nil, exchange.Summary{}, err
		}
		prior, err = hist.Prior()
		_ = hist.Close()
		if err != nil {
			return nil, exchange.Summary{}, err
		}
		log.Info("match history loaded", "years", len(prior))
	}

	matcher := &exchange.Matcher{
		MaxAttempts: opts.maxAttempts,
		Seed:        opts.seed,
		Verbose:     opts.verbose,
	}

	pairings, summ, err := matcher.Match(roster, rules, prior)
	if err != nil {
		var exhausted *snowmatch.ExhaustedError
		if errors.As(err, &exhausted) {
			log.Error("no valid assignment", "attempts", exhausted.Attempts)
			return nil, summ, fmt.Errorf(
				"could not draw valid matches after %d attempts: relax the exclusion rules or add participants",
				exhausted.Attempts)
		}
		return nil, summ, err
	}

	log.Info("matches drawn",
		"participants", summ.Participants,
		"excluded_pairs", summ.Excluded,
		"attempts", summ.Attempts)
	return pairings, summ, nil
}

func printPairings(pairings []exchange.Pairing) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Giver", "Giver Email", "Receiver", "Receiver Email"})
	for _, p := range pairings {
		table.Append([]string{p.Giver.Name, p.Giver.Email, p.Receiver.Name, p.Receiver.Email})
	}
	table.Render()
}

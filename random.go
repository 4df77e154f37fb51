// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snowmatch

import (
	"fmt"
	"math/rand"
	"time"
)

type randomMatcher struct {
	maxAttempts int
	rng         *rand.Rand
	verbose     bool
}

// RandomMatcher returns a Matcher that draws randomized assignment rounds
// until one completes, restarting from scratch whenever a round deadlocks,
// up to maxAttempts rounds in total. Restart-on-deadlock is deliberate:
// participant counts are small and forbidden pairs sparse, so expected
// attempts stay low without incremental backtracking.
//
// A nil rng gets a time-seeded private source; pass a seeded rng for
// reproducible draws. The rng must not be shared between concurrent runs.
func RandomMatcher(maxAttempts int, rng *rand.Rand, verbose bool) Matcher {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &randomMatcher{maxAttempts: maxAttempts, rng: rng, verbose: verbose}
}

func (m *randomMatcher) Match(participants []string, forbidden PairSet) (Assignment, int, error) {
	if len(participants) < 2 {
		return nil, 0, ErrTooFewParticipants
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, dup := seen[p]; dup {
			return nil, 0, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = struct{}{}
	}

	// Givers are processed in a fresh random order every attempt. The
	// caller's slice is never touched.
	order := append([]string(nil), participants...)

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		m.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		asg, ok := m.assignRound(order, forbidden)
		if !ok {
			if m.verbose {
				fmt.Println("attempt", attempt, "deadlocked")
			}
			continue
		}
		// A round only exits through completion or deadlock, but the
		// result is verified rather than trusted.
		if err := Verify(asg, participants, forbidden); err != nil {
			return nil, attempt, err
		}
		return asg, attempt, nil
	}

	return nil, m.maxAttempts, &ExhaustedError{Attempts: m.maxAttempts}
}

// assignRound runs a single assignment round over givers in the given
// order. It reports ok=false as soon as some giver has no legal receiver
// left, abandoning the round and all its partial state.
func (m *randomMatcher) assignRound(order []string, forbidden PairSet) (Assignment, bool) {
	asg := make(Assignment, len(order))
	claimed := make(map[string]struct{}, len(order))

	candidates := make([]string, 0, len(order))
	for _, giver := range order {
		candidates = candidates[:0]
		for _, receiver := range order {
			if receiver == giver {
				continue
			}
			if _, taken := claimed[receiver]; taken {
				continue
			}
			if forbidden.Has(giver, receiver) {
				continue
			}
			candidates = append(candidates, receiver)
		}
		if len(candidates) == 0 {
			return nil, false
		}

		pick := candidates[m.rng.Intn(len(candidates))]
		asg[giver] = pick
		claimed[pick] = struct{}{}
	}

	return asg, true
}

// Verify checks that asg is a complete, legal assignment for the given
// participants: exactly one entry per participant, receivers form a
// permutation of the participant set, nobody draws themselves and no
// forbidden pair is used. Failures wrap ErrInvariant.
func Verify(asg Assignment, participants []string, forbidden PairSet) error {
	if len(asg) != len(participants) {
		return fmt.Errorf("%w: %d entries for %d participants",
			ErrInvariant, len(asg), len(participants))
	}

	claimed := make(map[string]struct{}, len(asg))
	for _, giver := range participants {
		receiver, ok := asg[giver]
		if !ok {
			return fmt.Errorf("%w: %s has no receiver", ErrInvariant, giver)
		}
		if receiver == giver {
			return fmt.Errorf("%w: %s drew themselves", ErrInvariant, giver)
		}
		if forbidden.Has(giver, receiver) {
			return fmt.Errorf("%w: %s -> %s is forbidden", ErrInvariant, giver, receiver)
		}
		if _, dup := claimed[receiver]; dup {
			return fmt.Errorf("%w: %s receives twice", ErrInvariant, receiver)
		}
		claimed[receiver] = struct{}{}
	}
	for _, p := range participants {
		if _, ok := claimed[p]; !ok {
			return fmt.Errorf("%w: %s receives nothing", ErrInvariant, p)
		}
	}

	return nil
}

// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snowmatch provides constrained random assignment algorithms
// for gift exchanges: every participant gives to exactly one other
// participant, subject to forbidden-pair constraints.
package snowmatch

import (
	"errors"
	"fmt"
)

// Matcher assigns each participant exactly one other participant to give to.
// It returns the assignment, the number of attempts consumed, and an error
// when no assignment could be produced. The attempt count is meaningful on
// both success and failure.
type Matcher interface {
	Match(participants []string, forbidden PairSet) (Assignment, int, error)
}

// Pair is an ordered (giver, receiver) pair.
type Pair struct {
	Giver    string
	Receiver string
}

// PairSet is a set of forbidden ordered pairs. Pairs are directional: to
// forbid a match in both directions, add both orders.
type PairSet map[Pair]struct{}

func NewPairSet(pairs ...Pair) PairSet {
	s := make(PairSet, len(pairs))
	for _, p := range pairs {
		s[p] = struct{}{}
	}
	return s
}

func (s PairSet) Add(giver, receiver string) {
	s[Pair{Giver: giver, Receiver: receiver}] = struct{}{}
}

func (s PairSet) Has(giver, receiver string) bool {
	_, ok := s[Pair{Giver: giver, Receiver: receiver}]
	return ok
}

// Assignment maps each giver to the receiver they drew. A complete
// assignment is a bijection on the participant set with no fixed points.
type Assignment map[string]string

// DefaultMaxAttempts bounds the restart loop when the caller does not.
const DefaultMaxAttempts = 100

var (
	// ErrTooFewParticipants rejects inputs with fewer than 2 participants.
	ErrTooFewParticipants = errors.New("snowmatch: need at least 2 participants")

	// ErrDuplicateParticipant rejects participant lists containing repeats.
	ErrDuplicateParticipant = errors.New("snowmatch: duplicate participant")

	// ErrInvariant reports a completed assignment that failed verification.
	// It signals a bug in the matcher, not an unsatisfiable input.
	ErrInvariant = errors.New("snowmatch: invariant violation")
)

// ExhaustedError reports that every attempt up to the configured bound
// deadlocked. The constraints are likely too restrictive for the
// participant count.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("snowmatch: no valid assignment after %d attempts", e.Attempts)
}

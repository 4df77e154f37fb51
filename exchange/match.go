// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"fmt"
	"math/rand"

	"github.com/winterops/snowmatch"
)

func (m *Matcher) init() {
	if m.MaxAttempts <= 0 {
		m.MaxAttempts = DefaultMaxAttempts
	}
}

// Match draws a complete set of gift pairings for the roster, honoring the
// exclusion rules and avoiding every edge from prior exchanges. The summary
// is populated on failure too, so callers can report the attempt count.
func (m *Matcher) Match(roster *Roster, rules []ExclusionRule, prior []snowmatch.Assignment) ([]Pairing, Summary, error) {
	m.init()

	forbidden := Forbidden(rules, prior)

	var rng *rand.Rand
	if m.Seed != nil {
		rng = rand.New(rand.NewSource(*m.Seed))
	}

	asg, attempts, err := snowmatch.RandomMatcher(m.MaxAttempts, rng, m.Verbose).
		Match(roster.Emails(), forbidden)

	summ := Summary{
		Participants: roster.Len(),
		Excluded:     len(forbidden),
		Attempts:     attempts,
	}
	if err != nil {
		return nil, summ, err
	}

	pairings := make([]Pairing, 0, roster.Len())
	for _, giver := range roster.People() {
		receiver, ok := roster.Lookup(asg[giver.Email])
		if !ok {
			return nil, summ, fmt.Errorf("%w: receiver %q not in roster",
				snowmatch.ErrInvariant, asg[giver.Email])
		}
		pairings = append(pairings, Pairing{Giver: giver, Receiver: receiver})
	}

	return pairings, summ, nil
}

// AssignmentOf flattens pairings back into the core assignment form, the
// shape the history store records.
func AssignmentOf(pairings []Pairing) snowmatch.Assignment {
	asg := make(snowmatch.Assignment, len(pairings))
	for _, p := range pairings {
		asg[p.Giver.Email] = p.Receiver.Email
	}
	return asg
}

// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/winterops/snowmatch"
)

func makePerson(name, email string) Person {
	return Person{
		Name:      name,
		Email:     email,
		Address:   name + "'s place",
		GiftIdeas: "anything",
	}
}

func makeRoster(t *testing.T, names ...string) *Roster {
	t.Helper()
	people := make([]Person, 0, len(names))
	for _, name := range names {
		people = append(people, makePerson(name, name+"@example.com"))
	}
	roster, err := NewRoster(people)
	require.NoError(t, err)
	return roster
}

func seedPtr(seed int64) *int64 {
	return &seed
}

func TestMatcher_Match(t *testing.T) {
	req := require.New(t)

	roster := makeRoster(t, "alice", "bob", "carol", "dave")
	matcher := &Matcher{Seed: seedPtr(11)}

	pairings, summ, err := matcher.Match(roster, nil, nil)
	req.NoError(err)
	req.Len(pairings, 4)
	req.Equal(4, summ.Participants)
	req.GreaterOrEqual(summ.Attempts, 1)

	receivers := make(map[string]struct{}, len(pairings))
	for _, p := range pairings {
		req.NotEqual(p.Giver.Email, p.Receiver.Email, "no self match")
		receivers[p.Receiver.Email] = struct{}{}
	}
	req.Len(receivers, 4, "every participant receives exactly once")
}

func TestMatcher_Match_Reproducible(t *testing.T) {
	req := require.New(t)

	roster := makeRoster(t, "alice", "bob", "carol", "dave", "erin")
	rules := []ExclusionRule{{A: "alice@example.com", B: "bob@example.com", Mutual: true}}

	first, _, err := (&Matcher{Seed: seedPtr(7)}).Match(roster, rules, nil)
	req.NoError(err)
	second, _, err := (&Matcher{Seed: seedPtr(7)}).Match(roster, rules, nil)
	req.NoError(err)

	req.Equal(first, second)
}

func TestMatcher_Match_RespectsExclusions(t *testing.T) {
	req := require.New(t)

	roster := makeRoster(t, "alice", "bob", "carol", "dave")
	rules := []ExclusionRule{{A: "alice@example.com", B: "bob@example.com"}}

	for seed := int64(0); seed < 20; seed++ {
		pairings, _, err := (&Matcher{Seed: seedPtr(seed)}).Match(roster, rules, nil)
		req.NoError(err)
		for _, p := range pairings {
			if p.Giver.Email == "alice@example.com" {
				req.NotEqual("bob@example.com", p.Receiver.Email)
			}
		}
	}
}

func TestMatcher_Match_AvoidsPriorEdges(t *testing.T) {
	req := require.New(t)

	// Three people have exactly two derangements. Recording one as prior
	// forces the draw onto the other.
	roster := makeRoster(t, "alice", "bob", "carol")
	prior := []snowmatch.Assignment{{
		"alice@example.com": "bob@example.com",
		"bob@example.com":   "carol@example.com",
		"carol@example.com": "alice@example.com",
	}}

	for seed := int64(0); seed < 10; seed++ {
		pairings, _, err := (&Matcher{Seed: seedPtr(seed)}).Match(roster, nil, prior)
		req.NoError(err)

		asg := AssignmentOf(pairings)
		req.Equal(snowmatch.Assignment{
			"alice@example.com": "carol@example.com",
			"carol@example.com": "bob@example.com",
			"bob@example.com":   "alice@example.com",
		}, asg)
	}
}

func TestMatcher_Match_Exhausted(t *testing.T) {
	req := require.New(t)

	roster := makeRoster(t, "alice", "bob")
	rules := []ExclusionRule{{A: "alice@example.com", B: "bob@example.com", Mutual: true}}

	_, summ, err := (&Matcher{Seed: seedPtr(1), MaxAttempts: 25}).Match(roster, rules, nil)
	req.Error(err)

	var exhausted *snowmatch.ExhaustedError
	req.True(errors.As(err, &exhausted))
	req.Equal(25, exhausted.Attempts)
	req.Equal(25, summ.Attempts)
	req.Equal(2, summ.Excluded)
}

func TestAssignmentOf(t *testing.T) {
	req := require.New(t)

	pairings := []Pairing{
		{Giver: makePerson("alice", "alice@example.com"), Receiver: makePerson("bob", "bob@example.com")},
		{Giver: makePerson("bob", "bob@example.com"), Receiver: makePerson("alice", "alice@example.com")},
	}

	req.Equal(snowmatch.Assignment{
		"alice@example.com": "bob@example.com",
		"bob@example.com":   "alice@example.com",
	}, AssignmentOf(pairings))
}

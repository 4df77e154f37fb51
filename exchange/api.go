// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exchange uses snowmatch to run a secret gift exchange: it loads
// the participant roster, turns exclusion rules and past exchanges into
// forbidden pairs, draws the matches and notifies every giver by mail.
package exchange

import "github.com/winterops/snowmatch"

// Person is one validated roster entry. Email doubles as the participant
// identifier throughout the exchange.
type Person struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email_address" validate:"required,email"`
	Address   string `json:"mailing_address" validate:"required"`
	GiftIdeas string `json:"gift_ideas" validate:"required"`
}

// Roster is the deduplicated, validated participant list in sheet order.
type Roster struct {
	people  []Person
	byEmail map[string]Person
}

// ExclusionRule forbids A giving to B. Mutual also forbids B giving to A,
// the usual setting for spouses and family members.
type ExclusionRule struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Mutual bool   `json:"mutual"`
}

const (
	DefaultMaxAttempts = snowmatch.DefaultMaxAttempts
	DefaultSMTPHost    = "smtp.gmail.com"
	DefaultSMTPPort    = 465
)

// Matcher draws gift pairings for a roster.
type Matcher struct {
	// MaxAttempts bounds the restart loop; zero means DefaultMaxAttempts.
	MaxAttempts int

	// Seed, when set, makes the draw reproducible.
	Seed *int64

	Verbose bool
}

// Pairing is one resolved giver/receiver edge with full roster records.
type Pairing struct {
	Giver    Person `json:"giver"`
	Receiver Person `json:"receiver"`
}

// Summary describes one matching run.
type Summary struct {
	Participants int `json:"participants"`
	Excluded     int `json:"excluded_pairs"`
	Attempts     int `json:"attempts"`
}

func (r *Roster) Len() int {
	return len(r.people)
}

// People returns the roster entries in sheet order.
func (r *Roster) People() []Person {
	return r.people
}

func (r *Roster) Lookup(email string) (Person, bool) {
	p, ok := r.byEmail[email]
	return p, ok
}

// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Roster CSV columns, in sheet order. The first column is the form
// submission timestamp and is not kept.
const (
	colTimestamp = iota
	colEmail
	colName
	colAddress
	colGiftIdeas
	colCount
)

var validate = validator.New()

// LoadRoster reads a responses CSV, header row skipped. Duplicate email
// addresses are dropped keeping the first submission, and every record is
// validated; all record errors are reported together.
func LoadRoster(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	return ReadRoster(f)
}

// ReadRoster is LoadRoster over an already-open source.
func ReadRoster(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = colCount

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	if len(rows) > 0 {
		rows = rows[1:] // header
	}

	people := make([]Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, Person{
			Name:      strings.TrimSpace(row[colName]),
			Email:     strings.TrimSpace(row[colEmail]),
			Address:   strings.TrimSpace(row[colAddress]),
			GiftIdeas: strings.TrimSpace(row[colGiftIdeas]),
		})
	}

	return NewRoster(people)
}

// NewRoster builds a roster from records, deduplicating by email keep-first
// and validating every entry. Fewer than 2 distinct participants is an
// error here, before anything reaches the matcher.
func NewRoster(people []Person) (*Roster, error) {
	people = lo.UniqBy(people, func(p Person) string { return p.Email })

	var errs []error
	for i, p := range people {
		if err := validate.Struct(p); err != nil {
			errs = append(errs, fmt.Errorf("record %d (%q): %w", i+1, p.Email, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("roster validation: %w", errors.Join(errs...))
	}
	if len(people) < 2 {
		return nil, fmt.Errorf("roster needs at least 2 participants, found %d", len(people))
	}

	byEmail := make(map[string]Person, len(people))
	for _, p := range people {
		byEmail[p.Email] = p
	}

	return &Roster{people: people, byEmail: byEmail}, nil
}

// Emails returns the participant identifiers in sheet order.
func (r *Roster) Emails() []string {
	return lo.Map(r.people, func(p Person, _ int) string { return p.Email })
}

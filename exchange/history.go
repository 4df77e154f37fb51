// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/winterops/snowmatch"
)

const assignmentPrefix = "assignment:"

// ErrNoAssignment reports a year with no recorded assignment.
var ErrNoAssignment = errors.New("exchange: no assignment recorded")

// History stores one final assignment per year. Later runs feed these back
// as forbidden pairs so nobody draws the same match twice in a row.
type History struct {
	db *badger.DB
}

// OpenHistory opens (or creates) the store under dir.
func OpenHistory(dir string) (*History, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func historyKey(year int) []byte {
	return []byte(assignmentPrefix + strconv.Itoa(year))
}

// Save records the assignment for a year, overwriting any earlier record.
func (h *History) Save(year int, asg snowmatch.Assignment) error {
	data, err := json.Marshal(asg)
	if err != nil {
		return fmt.Errorf("marshal assignment: %w", err)
	}

	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set(historyKey(year), data)
	})
}

// Year returns the assignment recorded for a year.
func (h *History) Year(year int) (snowmatch.Assignment, error) {
	var asg snowmatch.Assignment

	err := h.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(historyKey(year))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %d", ErrNoAssignment, year)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &asg)
		})
	})
	if err != nil {
		return nil, err
	}

	return asg, nil
}

// All returns every recorded year, ascending, with its assignment.
func (h *History) All() ([]int, map[int]snowmatch.Assignment, error) {
	byYear := make(map[int]snowmatch.Assignment)

	err := h.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(assignmentPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			year, err := strconv.Atoi(string(item.Key()[len(prefix):]))
			if err != nil {
				continue
			}
			var asg snowmatch.Assignment
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &asg)
			}); err != nil {
				return err
			}
			byYear[year] = asg
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	return years, byYear, nil
}

// Prior returns all recorded assignments, oldest first, in the shape
// Matcher.Match consumes.
func (h *History) Prior() ([]snowmatch.Assignment, error) {
	years, byYear, err := h.All()
	if err != nil {
		return nil, err
	}

	prior := make([]snowmatch.Assignment, 0, len(years))
	for _, year := range years {
		prior = append(prior, byYear[year])
	}
	return prior, nil
}

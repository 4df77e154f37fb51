// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/winterops/snowmatch"
)

// LoadExclusions reads exclusion rules from a JSON file, a plain array of
// {"a": ..., "b": ..., "mutual": ...} objects.
func LoadExclusions(path string) ([]ExclusionRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exclusions: %w", err)
	}

	var rules []ExclusionRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse exclusions: %w", err)
	}

	return rules, nil
}

// Forbidden expands exclusion rules and prior assignments into the pair set
// the matcher consumes. Prior assignments contribute their giver-to-receiver
// edges so nobody draws the same match twice.
func Forbidden(rules []ExclusionRule, prior []snowmatch.Assignment) snowmatch.PairSet {
	set := snowmatch.NewPairSet()

	for _, rule := range rules {
		set.Add(rule.A, rule.B)
		if rule.Mutual {
			set.Add(rule.B, rule.A)
		}
	}

	for _, asg := range prior {
		for giver, receiver := range asg {
			set.Add(giver, receiver)
		}
	}

	return set
}

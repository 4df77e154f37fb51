// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// newLogger logs to stdout and the given file, tagging every record with a
// run id so overlapping invocations stay distinguishable in the log.
func newLogger(path string) (*slog.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, f), nil)
	log := slog.New(handler).With("run_id", uuid.NewString())

	return log, func() { _ = f.Close() }, nil
}

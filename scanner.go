/*
* File and directory traversal
* Copyright (C) 2025  Artem Stefankiv
*
* This program is free software: you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation, either version 3 of the License, or
* (at your option) any later version.
*
* This program is distributed in the hope that it will be useful,
* but WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
* GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package cipherscan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

var ErrNotFileOrDir = errors.New("path is neither a regular file nor a directory")

// Outcome is delivered once per file found by a scan. Exactly one of Result
// and Err is set.
type Outcome struct {
	Path   string
	Result *Result
	Err    error
}

// Scanner reads files from disk and runs them through an Analyzer.
type Scanner struct {
	log      hclog.Logger
	analyzer *Analyzer

	id        ulid.ULID
	workers   int
	blockSize int
	maxSize   int64
}

func NewScanner(log hclog.Logger, cfg *Config) *Scanner {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}

	id := ulid.Make()

	log = log.Named("scanner").With("scan", id.String())

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Scanner{
		log: log,
		analyzer: NewAnalyzer(log, AnalyzerOptions{
			Extended: cfg.Extended,
			Identify: true,
		}),
		id:        id,
		workers:   workers,
		blockSize: cfg.BlockSize,
		maxSize:   cfg.MaxFileSize,
	}
}

// ID identifies this scanner's run in logs and structured reports.
func (s *Scanner) ID() string {
	return s.id.String()
}

// AnalyzeFile reads path and analyzes its contents.
func (s *Scanner) AnalyzeFile(path string) (*Result, error) {
	s.log.Debug("analyzing file", "path", path)

	data, err := ReadFile(path, s.blockSize, s.maxSize)
	if err != nil {
		fileFailures.Inc()
		return nil, err
	}

	res := s.analyzer.Analyze(filepath.Base(path), data)
	res.Path = path
	res.ScanID = s.ID()

	filesAnalyzed.Inc()
	s.log.Debug("file analyzed", "path", path, "bytes", len(data))

	return res, nil
}

func (s *Scanner) outcome(path string) Outcome {
	res, err := s.AnalyzeFile(path)
	if err != nil {
		s.log.Warn("error analyzing file", "path", path, "error", err)
		return Outcome{Path: path, Err: err}
	}
	return Outcome{Path: path, Result: res}
}

// isRegularEntry reports whether d is a regular file or a symlink to one.
// A symlink whose target cannot be resolved returns the Stat error.
func isRegularEntry(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}

	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return false, errors.Wrapf(err, "error resolving %s", path)
		}
		return info.Mode().IsRegular(), nil
	}

	return false, nil
}

func (s *Scanner) failure(path string, err error) Outcome {
	fileFailures.Inc()
	s.log.Warn("error analyzing file", "path", path, "error", err)
	return Outcome{Path: path, Err: err}
}

// Scan analyzes root if it is a file, or every regular file below it if it
// is a directory. emit is called from a single goroutine, once per file,
// with either the result or the error that prevented reading the file.
func (s *Scanner) Scan(ctx context.Context, root string, emit func(Outcome)) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, "error accessing %s", root)
	}

	switch {
	case info.Mode().IsRegular():
		emit(s.outcome(root))
		return nil
	case info.IsDir():
	default:
		return errors.Wrapf(ErrNotFileOrDir, "%s", root)
	}

	// WalkDir does not descend into a symlinked root, walk its target and
	// report paths below the name the caller gave.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return errors.Wrapf(err, "error resolving %s", root)
	}

	callerPath := func(path string) string {
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return path
		}
		return filepath.Join(root, rel)
	}

	s.log.Info("scanning directory", "path", root, "workers", s.workers)

	var (
		wg       sync.WaitGroup
		paths    = make(chan string)
		outcomes = make(chan Outcome)
		walkErr  = make(chan error, 1)
	)

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				outcomes <- s.outcome(path)
			}
		}()
	}

	go func() {
		defer close(paths)

		walkErr <- filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == walkRoot {
					return err
				}
				path = callerPath(path)
				outcomes <- s.failure(path, errors.Wrapf(err, "error walking %s", path))
				return nil
			}

			if d.IsDir() {
				return ctx.Err()
			}

			path = callerPath(path)

			regular, err := isRegularEntry(path, d)
			if err != nil {
				outcomes <- s.failure(path, err)
				return nil
			}

			if !regular {
				s.log.Trace("skipping non-regular file", "path", path)
				return nil
			}

			select {
			case paths <- path:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var count int
	for o := range outcomes {
		count++
		emit(o)
	}

	if err := <-walkErr; err != nil {
		return errors.Wrapf(err, "error walking %s", root)
	}

	s.log.Info("directory scanned", "path", root, "files", count)

	return nil
}

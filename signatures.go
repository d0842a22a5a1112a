/*
* Signature search (encryption software detection) module
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
	"os"
	"regexp"
	"sort"

	"github.com/BurntSushi/rure-go"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// SoftwareInventory lists the names of installed software entries known to
// the host.
type SoftwareInventory interface {
	Names(ctx context.Context) ([]string, error)
}

// DirectoryInventory reports the entry names of a fixed set of directories,
// e.g. /opt or "C:\Program Files".
type DirectoryInventory struct {
	Dirs []string
}

func (d *DirectoryInventory) Names(ctx context.Context) ([]string, error) {
	var names []string
	for _, dir := range d.Dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "error listing %s", dir)
		}

		for _, e := range entries {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// MultiInventory concatenates the names of several inventories. A failing
// member is skipped.
type MultiInventory struct {
	log         hclog.Logger
	inventories []SoftwareInventory
}

func NewMultiInventory(log hclog.Logger, inventories ...SoftwareInventory) *MultiInventory {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &MultiInventory{log: log, inventories: inventories}
}

func (m *MultiInventory) Names(ctx context.Context) ([]string, error) {
	var names []string
	for _, inv := range m.inventories {
		n, err := inv.Names(ctx)
		if err != nil {
			m.log.Debug("software inventory unavailable", "error", err)
			continue
		}
		names = append(names, n...)
	}
	return names, nil
}

type SignatureMatcher struct {
	names   []string
	regexes map[string]*rure.Regex
}

// NewSignatureMatcher compiles a case-insensitive substring pattern for
// every signature.
func NewSignatureMatcher(signatures []string) (*SignatureMatcher, error) {
	m := &SignatureMatcher{
		regexes: make(map[string]*rure.Regex, len(signatures)),
	}

	for _, sig := range signatures {
		if sig == "" {
			continue
		}

		regex, err := rure.Compile("(?i)" + regexp.QuoteMeta(sig))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compile pattern for %s", sig)
		}

		m.names = append(m.names, sig)
		m.regexes[sig] = regex
	}

	sort.Strings(m.names)

	return m, nil
}

// Match returns the first signature found in entry.
func (m *SignatureMatcher) Match(entry string) (string, bool) {
	for _, sig := range m.names {
		if m.regexes[sig].IsMatch(entry) {
			return sig, true
		}
	}
	return "", false
}

// ScanSoftware returns every inventory entry containing one of the
// signatures. When the inventory cannot be read the result is empty.
func ScanSoftware(ctx context.Context, log hclog.Logger, inv SoftwareInventory, m *SignatureMatcher) map[string]bool {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	results := make(map[string]bool)

	names, err := inv.Names(ctx)
	if err != nil {
		log.Debug("software inventory unavailable", "error", err)
		return results
	}

	for _, name := range names {
		if sig, ok := m.Match(name); ok {
			log.Info("found cryptographic software trace", "entry", name, "signature", sig)
			softwareMatches.Inc()
			results[name] = true
		}
	}

	return results
}

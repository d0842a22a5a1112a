//go:build !windows

/*
* Registry software inventory tests
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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryInventoryIsEmpty(t *testing.T) {
	r := require.New(t)

	names, err := RegistryInventory{}.Names(context.Background())
	r.NoError(err)
	r.Empty(names)

	m, err := NewSignatureMatcher(DefaultSignatures)
	r.NoError(err)
	r.Empty(ScanSoftware(context.Background(), nil, RegistryInventory{}, m))
}

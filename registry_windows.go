//go:build windows

/*
* Windows registry software inventory
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

	"github.com/pkg/errors"
	"golang.org/x/sys/windows/registry"
)

// RegistryInventory enumerates the subkeys of HKLM\SOFTWARE.
type RegistryInventory struct{}

func (RegistryInventory) Names(ctx context.Context) ([]string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE`, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening HKLM\\SOFTWARE")
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, errors.Wrapf(err, "error enumerating HKLM\\SOFTWARE")
	}

	return names, ctx.Err()
}

/*
* Configuration loading
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
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/pkg/errors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// DefaultSignatures are the cryptographic software names looked for in the
// installed software inventory.
var DefaultSignatures = []string{"CryptoPro", "TrueCrypt", "BitLocker"}

type Config struct {
	Workers     int    `hcl:"workers,optional"`
	BlockSize   int    `hcl:"block_size,optional"`
	MaxFileSize int64  `hcl:"max_file_size,optional"`
	Extended    bool   `hcl:"extended,optional"`
	Format      string `hcl:"format,optional"`

	Software *SoftwareConfig `hcl:"software,block"`
}

type SoftwareConfig struct {
	Signatures  []string `hcl:"signatures,optional"`
	Directories []string `hcl:"directories,optional"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}

	if c.BlockSize <= 0 {
		c.BlockSize = DefaultBlockSize
	}

	if c.Format == "" {
		c.Format = FormatText
	}

	if c.Software == nil {
		c.Software = &SoftwareConfig{}
	}

	if len(c.Software.Signatures) == 0 {
		c.Software.Signatures = append([]string(nil), DefaultSignatures...)
	}
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatCBOR:
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", c.Format)
	}

	if c.MaxFileSize < 0 {
		return errors.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}

	return nil
}

// LoadConfig decodes the HCL file at path. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	var (
		ctx hcl.EvalContext
		cfg Config
	)

	err := hclsimple.DecodeFile(path, &ctx, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading configuration %s", path)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

/*
* Command line interface
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

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/Gilah-EnE/cipherscan"
	"github.com/hashicorp/go-hclog"
	"github.com/lab47/cleo"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultScanPath = "./test_files"

type CLI struct {
	log hclog.Logger

	lc *cli.CLI

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type Global struct {
	Config string `short:"c" long:"config" description:"path to HCL configuration"`
}

type scanOptions struct {
	Global
	Path        string `short:"p" long:"path" description:"file or directory to analyze (prompted for when omitted)"`
	Workers     int    `short:"w" long:"workers" description:"number of files analyzed in parallel"`
	Format      string `short:"f" long:"format" description:"report format: text, json or cbor"`
	Extended    bool   `short:"x" long:"extended" description:"compute supplementary measures"`
	NoSoftware  bool   `long:"no-software" description:"skip the installed software signature scan"`
	MetricsAddr string `long:"metrics" description:"address to expose metrics on"`
}

type softwareOptions struct {
	Global
	Signatures  []string `short:"s" long:"signature" description:"software name to look for (repeatable)"`
	Directories []string `short:"d" long:"dir" description:"directory whose entries are matched (repeatable)"`
}

func NewCLI(log hclog.Logger, args []string) (*CLI, error) {
	c := &CLI{
		log:    log,
		lc:     cli.NewCLI("cipherscan", "0.1.0"),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	c.lc.Args = args

	err := c.setupCommands()
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CLI) Run() (int, error) {
	return c.lc.Run()
}

func (c *CLI) setupCommands() error {
	c.lc.Commands = map[string]cli.CommandFactory{
		"scan": func() (cli.Command, error) {
			return cleo.Infer("scan", "analyze a file or directory tree", c.scan), nil
		},
		"software": func() (cli.Command, error) {
			return cleo.Infer("software", "look for installed cryptographic software", c.software), nil
		},
	}

	return nil
}

// promptPath asks for the path to analyze. Empty input selects DefaultScanPath.
func promptPath(in io.Reader, out io.Writer) string {
	fmt.Fprintf(out, "Enter a path to a file or directory to analyze (default %s): ", DefaultScanPath)

	line, _ := bufio.NewReader(in).ReadString('\n')
	if path := strings.TrimSpace(line); path != "" {
		return path
	}
	return DefaultScanPath
}

func (c *CLI) loadConfig(opts Global) (*cipherscan.Config, error) {
	cfg, err := cipherscan.LoadConfig(opts.Config)
	if err != nil {
		return nil, err
	}

	c.log.Debug("configuration loaded", "path", opts.Config, "workers", cfg.Workers, "format", cfg.Format)

	return cfg, nil
}

func (c *CLI) softwareInventory(cfg *cipherscan.Config) cipherscan.SoftwareInventory {
	inventories := []cipherscan.SoftwareInventory{cipherscan.RegistryInventory{}}

	for _, dir := range cfg.Software.Directories {
		inventories = append(inventories, &cipherscan.DirectoryInventory{Dirs: []string{dir}})
	}

	return cipherscan.NewMultiInventory(c.log, inventories...)
}

func (c *CLI) scanSoftware(ctx context.Context, cfg *cipherscan.Config) error {
	matcher, err := cipherscan.NewSignatureMatcher(cfg.Software.Signatures)
	if err != nil {
		return err
	}

	found := cipherscan.ScanSoftware(ctx, c.log.Named("software"), c.softwareInventory(cfg), matcher)

	return cipherscan.WriteSoftware(c.stdout, found)
}

func (c *CLI) scan(ctx context.Context, opts scanOptions) error {
	cfg, err := c.loadConfig(opts.Global)
	if err != nil {
		return err
	}

	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}

	if opts.Format != "" {
		cfg.Format = opts.Format
	}

	if opts.Extended {
		cfg.Extended = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	enc, err := cipherscan.NewEncoder(cfg.Format, c.stdout)
	if err != nil {
		return err
	}

	path := opts.Path
	if path == "" {
		path = promptPath(c.stdin, c.stderr)
	}

	if opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		c.log.Info("exposing metrics", "addr", opts.MetricsAddr)

		go func() {
			if err := http.ListenAndServe(opts.MetricsAddr, mux); err != nil {
				c.log.Error("error serving metrics", "error", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	scanner := cipherscan.NewScanner(c.log, cfg)

	var failures int

	err = scanner.Scan(ctx, path, func(o cipherscan.Outcome) {
		if o.Err != nil {
			failures++
			c.log.Error("error analyzing file", "path", o.Path, "error", o.Err)
			return
		}

		if err := enc.Encode(o.Result); err != nil {
			c.log.Error("error writing report", "path", o.Path, "error", err)
		}
	})

	if errors.Is(err, cipherscan.ErrNotFileOrDir) || os.IsNotExist(errors.Cause(err)) {
		c.log.Error("path is not a file or directory", "path", path)
	} else if err != nil {
		return err
	}

	if failures > 0 {
		c.log.Warn("some files could not be analyzed", "failures", failures)
	}

	if opts.NoSoftware || cfg.Format != cipherscan.FormatText {
		return nil
	}

	return c.scanSoftware(ctx, cfg)
}

func (c *CLI) software(ctx context.Context, opts softwareOptions) error {
	cfg, err := c.loadConfig(opts.Global)
	if err != nil {
		return err
	}

	if len(opts.Signatures) > 0 {
		cfg.Software.Signatures = opts.Signatures
	}

	cfg.Software.Directories = append(cfg.Software.Directories, opts.Directories...)

	return c.scanSoftware(ctx, cfg)
}

// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/open-source-firmware/go-scsi-vpd/pkg/cmdutil"
	"github.com/open-source-firmware/go-scsi-vpd/pkg/drive"
	"github.com/open-source-firmware/go-scsi-vpd/pkg/vpd/vendor"
)

// context is the context struct required by kong command line parser
type context struct{}

type decodeCmd struct {
	Device  string               `arg:"" required:"" type:"existingfile" help:"Path to SCSI device (e.g. /dev/sg0)"`
	Page    cmdutil.PageSelector `flag:"" required:"" short:"p" help:"Vendor page acronym or number[,subvalue] (e.g. upr, 0xc0,1)"`
	Hex     bool                 `flag:"" short:"H" xor:"mode" help:"Output page in hex"`
	Raw     bool                 `flag:"" short:"r" xor:"mode" help:"Output page in binary"`
	Force   bool                 `flag:"" help:"Write raw output even when stdout is a terminal"`
	Quiet   bool                 `flag:"" short:"q" help:"Suppress the page name header"`
	Ident   bool                 `flag:"" short:"i" help:"Print the device identity before the page"`
	Verbose int                  `flag:"" short:"v" type:"counter" help:"Increase verbosity"`
}

type listCmd struct{}

// cli is the main command line interface struct required by kong command line parser
var cli struct {
	Decode decodeCmd `cmd:"" default:"withargs" help:"Decode a vendor VPD page (default)"`
	List   listCmd   `cmd:"" help:"List the known vendor VPD pages"`
}

func (c *decodeCmd) Run(ctx *context) error {
	opts := vendor.Options{
		Quiet:   c.Quiet,
		Verbose: c.Verbose,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
	switch {
	case c.Raw:
		if err := cmdutil.CheckRawOutput(os.Stdout, c.Force); err != nil {
			return err
		}
		opts.Mode = vendor.OutputRaw
	case c.Hex:
		opts.Mode = vendor.OutputHex
	}

	if c.Verbose > 0 {
		log.Printf("opening %s", c.Device)
	}
	d, err := drive.Open(c.Device)
	if err != nil {
		return fmt.Errorf("drive.Open(%s) failed: %w", c.Device, err)
	}
	defer d.Close()

	if c.Ident {
		if err := writeIdent(d, opts); err != nil {
			return err
		}
	}

	return vendor.Decode(d, c.Page.Code, c.Page.Subvalue, opts)
}

// writeIdent prints the device identity. Raw output carries only page
// bytes, so the identity goes to the error stream in that mode.
func writeIdent(d drive.Identify, opts vendor.Options) error {
	id, err := d.Identify()
	if err != nil {
		return fmt.Errorf("drive.Identify() failed: %w", err)
	}
	w := opts.Out
	if opts.Mode == vendor.OutputRaw {
		w = opts.Err
	}
	fmt.Fprintf(w, "  %s\n", id)
	return nil
}

func (l *listCmd) Run(ctx *context) error {
	vendor.Enumerate(os.Stdout)
	return nil
}

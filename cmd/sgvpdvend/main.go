// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	"github.com/open-source-firmware/go-scsi-vpd/pkg/vpd/vendor"
)

const (
	programName = "sgvpdvend"
	programDesc = "Decode vendor specific SCSI VPD pages"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(programName + ": ")
	spew.Config.Indent = "  "

	// Parse kong flags and sub-commands
	ctx := kong.Parse(&cli,
		kong.Name(programName),
		kong.Description(programDesc),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	// Run the command
	if err := ctx.Run(&context{}); err != nil {
		log.Printf("%v", err)
		os.Exit(vendor.ExitStatus(err))
	}
}

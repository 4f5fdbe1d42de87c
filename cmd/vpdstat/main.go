package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/open-source-firmware/go-scsi-vpd/pkg/drive"
	"github.com/open-source-firmware/go-scsi-vpd/pkg/vpd/vendor"
)

var (
	outputFmt = flag.String("output", "table", "Output format; one of [table, json, openmetrics]")
	noHeader  = flag.Bool("no-header", false, "Supress the header in table format output")
)

type PageState struct {
	Code      uint8
	Acronym   string
	Name      string
	Supported bool
	Length    int
}

type DeviceState struct {
	Device   string
	Identity *drive.Identity
	Pages    []PageState
}

type Devices []DeviceState

// T10 vendor identifications and the registry subvalue their pages use.
var vendorSubvalues = map[string]int{
	"SEAGATE": 0,
	"DGC":     1,
	"EMC":     1,
	"LSI":     1,
	"ENGENIO": 1,
	"IBM":     1,
	"SUN":     1,
	"STK":     1,
	"SGI":     1,
	"DELL":    1,
}

// pageCodes returns the distinct vendor page codes in registry order.
func pageCodes() []uint8 {
	var codes []uint8
	for p := range vendor.All() {
		if !slices.Contains(codes, p.Code) {
			codes = append(codes, p.Code)
		}
	}
	return codes
}

// describe picks the registry entry for a page read from a device. The
// vendor hint selects between pages sharing a code; Lookup relaxes it for
// pages registered under another subvalue.
func describe(code uint8, id *drive.Identity) (vendor.Page, bool) {
	sub, pdt := vendor.Any, vendor.Any
	if id != nil {
		pdt = id.DeviceType
		if s, ok := vendorSubvalues[strings.ToUpper(id.Vendor)]; ok {
			sub = s
		}
	}
	return vendor.Lookup(code, sub, pdt)
}

func probe(d drive.VPD, id *drive.Identity) []PageState {
	var pages []PageState
	for _, code := range pageCodes() {
		ps := PageState{Code: code}
		if p, ok := describe(code, id); ok {
			ps.Acronym, ps.Name = p.Acronym, p.Name
		}
		_, n, err := vendor.Fetch(d, code)
		switch {
		case err == nil:
			ps.Supported = true
			ps.Length = n
		case errors.Is(err, drive.ErrNotSupported), errors.Is(err, vendor.ErrMalformed):
		default:
			log.Printf("vendor.Fetch(0x%02x): %v", code, err)
		}
		pages = append(pages, ps)
	}
	return pages
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Probes every SCSI block device for the known vendor specific VPD pages.")
		vendor.Enumerate(os.Stdout)
		fmt.Println()
	}
	flag.Parse()

	sysblk, err := os.ReadDir("/sys/class/block/")
	if err != nil {
		log.Printf("Failed to enumerate block devices: %v", err)
		return
	}

	var state Devices

	for _, fi := range sysblk {
		devname := fi.Name()
		if _, err := os.Stat(filepath.Join("/sys/class/block", devname, "device")); os.IsNotExist(err) {
			continue
		}
		devpath := filepath.Join("/dev", devname)
		if _, err := os.Stat(devpath); os.IsNotExist(err) {
			log.Printf("Failed to find device node %s", devpath)
			continue
		}

		d, err := drive.Open(devpath)
		if err != nil {
			if err != drive.ErrDeviceNotSupported {
				log.Printf("drive.Open(%s): %v", devpath, err)
			}
			continue
		}
		identity, err := d.Identify()
		if err != nil {
			log.Printf("drive.Identify(%s): %v", devpath, err)
			identity = &drive.Identity{}
		}
		state = append(state, DeviceState{
			Device:   devpath,
			Identity: identity,
			Pages:    probe(d, identity),
		})
		d.Close()
	}

	if *outputFmt == "json" {
		outputJSON(state)
	} else if *outputFmt == "openmetrics" {
		outputMetrics(state)
	} else if *outputFmt == "table" {
		outputTable(state)
	} else {
		fmt.Printf("Unsupported output format %q\n", *outputFmt)
		flag.Usage()
		os.Exit(2)
	}
}

func outputJSON(state Devices) {
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}
	os.Stdout.Write(b)
}

func supportedPages(s DeviceState) []string {
	pages := []string{}
	for _, p := range s.Pages {
		if !p.Supported {
			continue
		}
		if p.Acronym != "" {
			pages = append(pages, p.Acronym)
		} else {
			pages = append(pages, fmt.Sprintf("0x%02x", p.Code))
		}
	}
	if len(pages) == 0 {
		pages = append(pages, "-")
	}
	return pages
}

func outputTable(state Devices) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	if !*noHeader {
		fmt.Fprintf(w, "DEVICE\tVENDOR\tMODEL\tFIRMWARE\tTYPE\tVENDOR PAGES\n")
	}
	for _, s := range state {
		fmt.Fprint(w,
			s.Device, "\t",
			s.Identity.Vendor, "\t",
			s.Identity.Model, "\t",
			s.Identity.Firmware, "\t",
			fmt.Sprintf("0x%02x", s.Identity.DeviceType), "\t",
			strings.Join(supportedPages(s), ","), "\t",
			"\n")
	}
	w.Flush()
}

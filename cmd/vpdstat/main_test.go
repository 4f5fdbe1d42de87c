package main

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/open-source-firmware/go-scsi-vpd/pkg/drive"
)

type fakeDrive struct {
	pages map[uint8][]byte
}

func (f *fakeDrive) InquiryVPD(page uint8, data *[]byte) error {
	b, ok := f.pages[page]
	if !ok {
		return drive.ErrNotSupported
	}
	copy(*data, b)
	return nil
}

func vpdPage(code uint8, n int) []byte {
	b := make([]byte, n)
	b[1] = code
	b[3] = byte(n - 4)
	return b
}

func TestPageCodes(t *testing.T) {
	want := []uint8{0xc1, 0xc3, 0xc0, 0xc2, 0xc9}
	if got := pageCodes(); !slices.Equal(got, want) {
		t.Errorf("pageCodes() = %x; want %x", got, want)
	}
}

func TestDescribe(t *testing.T) {
	testCases := []struct {
		name string
		code uint8
		id   *drive.Identity
		want string
	}{
		{"EMC", 0xc0, &drive.Identity{Vendor: "DGC", DeviceType: 0}, "upr"},
		{"Seagate", 0xc0, &drive.Identity{Vendor: "SEAGATE", DeviceType: 0}, "firm"},
		{"RDAC software version", 0xc2, &drive.Identity{Vendor: "LSI", DeviceType: 0}, "sver"},
		{"RDAC volume access", 0xc9, &drive.Identity{Vendor: "ENGENIO", DeviceType: 0}, "vac"},
		{"Unknown vendor", 0xc2, &drive.Identity{Vendor: "ACME", DeviceType: 0x0c}, "jump"},
		{"No identity", 0xc0, nil, "firm"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := describe(tc.code, tc.id)
			if !ok || p.Acronym != tc.want {
				t.Errorf("describe(0x%02x) = %q, %v; want %q", tc.code, p.Acronym, ok, tc.want)
			}
		})
	}
}

func TestProbe(t *testing.T) {
	d := &fakeDrive{pages: map[uint8][]byte{
		0xc0: vpdPage(0xc0, 64),
		// Device answers 0xc2 with another page
		0xc2: vpdPage(0xc3, 16),
		0xc9: vpdPage(0xc9, 16),
	}}
	id := &drive.Identity{Vendor: "DGC"}
	pages := probe(d, id)

	got := map[uint8]PageState{}
	for _, p := range pages {
		got[p.Code] = p
	}
	if len(pages) != 5 {
		t.Fatalf("probe() returned %d pages; want 5", len(pages))
	}
	if p := got[0xc0]; !p.Supported || p.Length != 64 || p.Acronym != "upr" {
		t.Errorf("probe() 0xc0 = %+v; want supported upr of 64 bytes", p)
	}
	if p := got[0xc2]; p.Supported {
		t.Errorf("probe() 0xc2 = %+v; want unsupported after page mismatch", p)
	}
	if p := got[0xc1]; p.Supported {
		t.Errorf("probe() 0xc1 = %+v; want unsupported", p)
	}

	s := DeviceState{Device: "/dev/sdz", Identity: id, Pages: pages}
	if got := strings.Join(supportedPages(s), ","); got != "upr,vac" {
		t.Errorf("supportedPages() = %q; want %q", got, "upr,vac")
	}
	if got := supportedPages(DeviceState{}); !slices.Equal(got, []string{"-"}) {
		t.Errorf("supportedPages(empty) = %q; want [-]", got)
	}
}

func TestWriteMetrics(t *testing.T) {
	state := Devices{{
		Device:   "/dev/sdz",
		Identity: &drive.Identity{Protocol: "SCSI", Vendor: "DGC", Model: "RAID 5", Firmware: "0430"},
		Pages: []PageState{
			{Code: 0xc0, Acronym: "upr", Supported: true, Length: 64},
			{Code: 0xc9, Acronym: "vac"},
		},
	}}
	var b bytes.Buffer
	if err := writeMetrics(&b, state); err != nil {
		t.Fatalf("writeMetrics() error = %v", err)
	}
	for _, want := range []string{
		`scsi_vpd_drive_info{device="/dev/sdz",firmware="0430",model="RAID 5",protocol="SCSI",type="0x00",vendor="DGC"} 1`,
		`scsi_vpd_vendor_page_supported{acronym="upr",device="/dev/sdz",page="0xc0"} 1`,
		`scsi_vpd_vendor_page_supported{acronym="vac",device="/dev/sdz",page="0xc9"} 0`,
		`scsi_vpd_vendor_page_length_bytes{device="/dev/sdz",page="0xc0"} 64`,
	} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("writeMetrics() missing %q in\n%s", want, b.String())
		}
	}
	if strings.Contains(b.String(), `page_length_bytes{device="/dev/sdz",page="0xc9"}`) {
		t.Errorf("writeMetrics() reported a length for an unsupported page")
	}
}

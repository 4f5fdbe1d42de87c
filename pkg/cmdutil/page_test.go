package cmdutil

import (
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/open-source-firmware/go-scsi-vpd/pkg/vpd/vendor"
)

func TestPageSelector(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		code     uint8
		subvalue int
		str      string
	}{
		{"Acronym", []string{"--page", "upr"}, 0xc0, 1, "upr"},
		{"Number", []string{"--page=0xc9"}, 0xc9, 0, "vac"},
		{"Number with subvalue", []string{"-p", "0xc2,1"}, 0xc2, 1, "sver"},
		{"Unregistered subvalue", []string{"-p", "0xc0,5"}, 0xc0, 5, "0xc0,5"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cli struct {
				Page PageSelector `short:"p"`
			}
			parser, err := kong.New(&cli)
			if err != nil {
				t.Fatalf("kong.New() error = %v", err)
			}
			if _, err := parser.Parse(tc.args); err != nil {
				t.Fatalf("Parse(%v) error = %v", tc.args, err)
			}
			if cli.Page.Code != tc.code || cli.Page.Subvalue != tc.subvalue {
				t.Errorf("Parse(%v) = %+v; want code 0x%02x subvalue %d", tc.args, cli.Page, tc.code, tc.subvalue)
			}
			if got := cli.Page.String(); got != tc.str {
				t.Errorf("String() = %q; want %q", got, tc.str)
			}
		})
	}
}

func TestPageSelectorInvalid(t *testing.T) {
	var cli struct {
		Page PageSelector `short:"p"`
	}
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	_, err = parser.Parse([]string{"--page", "bogus"})
	if err == nil || !strings.Contains(err.Error(), vendor.ErrSyntax.Error()) {
		t.Errorf("Parse() error = %v; want %v", err, vendor.ErrSyntax)
	}
}

func TestCheckRawOutput(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "raw")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := CheckRawOutput(f, false); err != nil {
		t.Errorf("CheckRawOutput(regular file) = %v; want nil", err)
	}
}

package cmdutil

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/open-source-firmware/go-scsi-vpd/pkg/vpd/vendor"
)

// PageSelector is a kong flag value naming a vendor VPD page either by
// acronym ("upr") or as "num[,subvalue]" ("0xc0,1").
type PageSelector struct {
	Code     uint8
	Subvalue int
}

func (p *PageSelector) Decode(ctx *kong.DecodeContext) error {
	var s string
	if err := ctx.Scan.PopValueInto("page", &s); err != nil {
		return err
	}
	code, sub, err := vendor.ParseSelector(s)
	if err != nil {
		return err
	}
	p.Code, p.Subvalue = code, sub
	return nil
}

func (p PageSelector) String() string {
	if pg, ok := vendor.Lookup(p.Code, p.Subvalue, vendor.Any); ok && pg.Code == p.Code && pg.Subvalue == p.Subvalue {
		return pg.Acronym
	}
	return fmt.Sprintf("0x%02x,%d", p.Code, p.Subvalue)
}

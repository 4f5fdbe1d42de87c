// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drive

import (
	"errors"
	"runtime"
	"strings"

	"github.com/open-source-firmware/go-scsi-vpd/pkg/drive/sgio"
)

// FdIntf is the part of *os.File the SCSI drive needs.
type FdIntf interface {
	Fd() uintptr
	Close() error
}

type scsiDrive struct {
	fd FdIntf
}

func (d *scsiDrive) InquiryVPD(page uint8, data *[]byte) error {
	err := sgio.SCSIInquiryVPD(d.fd.Fd(), page, data)
	runtime.KeepAlive(d.fd)
	if errors.Is(err, sgio.ErrIllegalRequest) {
		return ErrNotSupported
	}
	return err
}

func (d *scsiDrive) Identify() (*Identity, error) {
	id, err := sgio.SCSIInquiry(d.fd.Fd())
	runtime.KeepAlive(d.fd)
	if err != nil {
		return nil, err
	}

	protocol := "SCSI"
	if string(id.VendorIdent[:]) == "ATA     " {
		// SCSI ATA Translation (SAT)
		protocol = "SATA"
	}

	return &Identity{
		Protocol:   protocol,
		Vendor:     strings.TrimSpace(string(id.VendorIdent[:])),
		Model:      strings.TrimSpace(string(id.ProductIdent[:])),
		Firmware:   strings.TrimSpace(string(id.ProductRev[:])),
		DeviceType: id.DeviceType(),
	}, nil
}

func (d *scsiDrive) Close() error {
	return d.fd.Close()
}

func SCSIDrive(fd FdIntf) *scsiDrive {
	// Save the full object reference to avoid the underlying File-like object
	// to be GC'd
	return &scsiDrive{fd: fd}
}

func isSCSI(fd FdIntf) bool {
	_, err := sgio.SCSIInquiry(fd.Fd())
	return err == nil
}

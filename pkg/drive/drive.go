// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drive

import (
	"errors"
	"fmt"
)

var (
	ErrNotSupported       = errors.New("operation is not supported")
	ErrDeviceNotSupported = errors.New("device is not supported")
)

type Identity struct {
	Protocol   string
	Vendor     string
	Model      string
	Firmware   string
	DeviceType int
}

func (i *Identity) String() string {
	return fmt.Sprintf("Protocol=%s, Vendor=%s, Model=%s, Firmware=%s, Type=0x%x",
		i.Protocol, i.Vendor, i.Model, i.Firmware, i.DeviceType)
}

type DriveIntf interface {
	VPD
	Identify
	Closer
}

// VPD reads Vital Product Data pages. The allocation length is len(*data).
type VPD interface {
	InquiryVPD(page uint8, data *[]byte) error
}

type Identify interface {
	Identify() (*Identity, error)
}

type Closer interface {
	Close() error
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Copyright 2021 Christian Svensson. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sgio

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	SCSI_INQUIRY = 0x12

	INQUIRY_EVPD = 0x01

	// The allocation length field of INQUIRY is 16 bits wide.
	MAX_INQUIRY_LEN = 0xffff
)

// SCSI INQUIRY response
type InquiryResponse struct {
	Peripheral   byte // peripheral qualifier, device type
	Version      byte
	VendorIdent  [8]byte
	ProductIdent [16]byte
	ProductRev   [4]byte
}

// DeviceType returns the peripheral device type (PDT).
func (inq InquiryResponse) DeviceType() int {
	return int(inq.Peripheral & 0x1f)
}

// Qualifier returns the peripheral qualifier.
func (inq InquiryResponse) Qualifier() int {
	return int(inq.Peripheral >> 5)
}

func (inq InquiryResponse) String() string {
	return fmt.Sprintf("Type=0x%x, Vendor=%s, Product=%s, Revision=%s",
		inq.DeviceType(),
		strings.TrimSpace(string(inq.VendorIdent[:])),
		strings.TrimSpace(string(inq.ProductIdent[:])),
		strings.TrimSpace(string(inq.ProductRev[:])))
}

// ParseInquiry decodes standard INQUIRY data. Fields beyond the returned
// length are left zero.
func ParseInquiry(b []byte) InquiryResponse {
	var resp InquiryResponse
	if len(b) > 0 {
		resp.Peripheral = b[0]
	}
	if len(b) > 2 {
		resp.Version = b[2]
	}
	if len(b) > 8 {
		copy(resp.VendorIdent[:], b[8:])
	}
	if len(b) > 16 {
		copy(resp.ProductIdent[:], b[16:])
	}
	if len(b) > 32 {
		copy(resp.ProductRev[:], b[32:])
	}
	return resp
}

func inquiryCDB(evpd bool, page uint8, allocLen int) CDB6 {
	cdb := CDB6{SCSI_INQUIRY}
	if evpd {
		cdb[1] = INQUIRY_EVPD
		cdb[2] = page
	}
	binary.BigEndian.PutUint16(cdb[3:], uint16(allocLen))
	return cdb
}

// INQUIRY - Returns parsed inquiry data.
func SCSIInquiry(fd uintptr) (InquiryResponse, error) {
	respBuf := make([]byte, 36)

	cdb := inquiryCDB(false, 0, len(respBuf))
	if err := SendCDB(fd, cdb[:], CDBFromDevice, &respBuf); err != nil {
		return InquiryResponse{}, err
	}

	return ParseInquiry(respBuf), nil
}

// INQUIRY with EVPD set - reads the VPD page into resp. The allocation
// length is len(*resp).
func SCSIInquiryVPD(fd uintptr, page uint8, resp *[]byte) error {
	if len(*resp) > MAX_INQUIRY_LEN {
		return fmt.Errorf("SCSIInquiryVPD allocation length %d exceeds %d", len(*resp), MAX_INQUIRY_LEN)
	}
	cdb := inquiryCDB(true, page, len(*resp))
	return SendCDB(fd, cdb[:], CDBFromDevice, resp)
}

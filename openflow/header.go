/*
 * OFTest11 - An OpenFlow 1.1 Software Switch
 *
 * Copyright (C) 2015 Samjung Data Service, Inc. All rights reserved.
 * Kitae Kim <superkkt@sds.co.kr>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package openflow

import (
	"encoding/binary"
	"fmt"
)

// HeaderLen is the size of ofp_header.
const HeaderLen = 8

// MaxMessageLen is the largest message the 16-bit length field can describe.
const MaxMessageLen = 0xFFFF

type Header struct {
	Version uint8
	Type    uint8
	// Length is filled in by the codec when a message is packed.
	Length uint16
	XID    uint32
}

func (r Header) String() string {
	return fmt.Sprintf("version=%#x, type=%v, length=%v, xid=%v", r.Version, r.Type, r.Length, r.XID)
}

func (r Header) MarshalBinary() ([]byte, error) {
	v := make([]byte, HeaderLen)
	r.marshalTo(v)

	return v, nil
}

func (r Header) marshalTo(v []byte) {
	v[0] = r.Version
	v[1] = r.Type
	binary.BigEndian.PutUint16(v[2:4], r.Length)
	binary.BigEndian.PutUint32(v[4:8], r.XID)
}

func (r *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderLen {
		return ErrInvalidPacketLength
	}

	r.Version = data[0]
	r.Type = data[1]
	r.Length = binary.BigEndian.Uint16(data[2:4])
	r.XID = binary.BigEndian.Uint32(data[4:8])
	if r.Length < HeaderLen {
		return ErrInvalidPacketLength
	}

	return nil
}

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

package of11

import (
	"encoding/binary"
	"net"

	"github.com/TrafficLab/oftest11/openflow"
)

const portLength = 64

// PortKind is the family of the fixed-size port records in a features reply.
var PortKind = openflow.NewEntryKind("port", portLength, openflow.FixedHeader(portLength), map[uint16]func() openflow.Entry{
	0: func() openflow.Entry { return new(Port) },
})

// Port is ofp_port.
type Port struct {
	Number uint32
	HWAddr net.HardwareAddr
	Name   string
	// Bitmap of OFPPC_* flags
	Config uint32
	// Bitmap of OFPPS_* flags
	State uint32
	//
	//  Bitmaps of OFPPF_* that describe features. All bits zeroed if unsupported or unavailable.
	//
	Current, Advertised, Supported, Peer uint32
	CurrentSpeed, MaxSpeed               uint32
}

func (r *Port) IsPortDown() bool {
	return r.Config&OFPPC_PORT_DOWN != 0
}

func (r *Port) IsLinkDown() bool {
	return r.State&OFPPS_LINK_DOWN != 0
}

func (r *Port) Len() int {
	return portLength
}

func (r *Port) MarshalBinary() ([]byte, error) {
	v := make([]byte, portLength)
	binary.BigEndian.PutUint32(v[0:4], r.Number)
	// v[4:8] is padding
	if err := putMAC(v[8:14], r.HWAddr); err != nil {
		return nil, err
	}
	// v[14:16] is padding
	putString(v[16:32], r.Name)
	binary.BigEndian.PutUint32(v[32:36], r.Config)
	binary.BigEndian.PutUint32(v[36:40], r.State)
	binary.BigEndian.PutUint32(v[40:44], r.Current)
	binary.BigEndian.PutUint32(v[44:48], r.Advertised)
	binary.BigEndian.PutUint32(v[48:52], r.Supported)
	binary.BigEndian.PutUint32(v[52:56], r.Peer)
	binary.BigEndian.PutUint32(v[56:60], r.CurrentSpeed)
	binary.BigEndian.PutUint32(v[60:64], r.MaxSpeed)

	return v, nil
}

func (r *Port) UnmarshalBinary(data []byte) error {
	if err := checkLen("port", data, portLength); err != nil {
		return err
	}

	r.Number = binary.BigEndian.Uint32(data[0:4])
	r.HWAddr = getMAC(data[8:14])
	r.Name = getString(data[16:32])
	r.Config = binary.BigEndian.Uint32(data[32:36])
	r.State = binary.BigEndian.Uint32(data[36:40])
	r.Current = binary.BigEndian.Uint32(data[40:44])
	r.Advertised = binary.BigEndian.Uint32(data[44:48])
	r.Supported = binary.BigEndian.Uint32(data[48:52])
	r.Peer = binary.BigEndian.Uint32(data[52:56])
	r.CurrentSpeed = binary.BigEndian.Uint32(data[56:60])
	r.MaxSpeed = binary.BigEndian.Uint32(data[60:64])

	return nil
}

func (r *Port) Unpack(d *openflow.Decoder, data []byte) error {
	return r.UnmarshalBinary(data)
}

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

	"github.com/TrafficLab/oftest11/openflow"
)

// BucketKind is the group bucket family. A bucket starts with its length and
// has no type code.
var BucketKind = openflow.NewEntryKind("bucket", 16, openflow.LengthHeader, map[uint16]func() openflow.Entry{
	0: func() openflow.Entry { return new(Bucket) },
})

// Bucket is ofp_bucket. It owns its action list.
type Bucket struct {
	Weight     uint16
	WatchPort  uint32
	WatchGroup uint32
	Actions    []openflow.Entry
}

func NewBucket(weight uint16, actions ...openflow.Entry) *Bucket {
	return &Bucket{
		Weight:     weight,
		WatchPort:  OFPP_ANY,
		WatchGroup: OFPG_ANY,
		Actions:    actions,
	}
}

func (r *Bucket) Len() int {
	return 16 + openflow.ListLen(r.Actions)
}

func (r *Bucket) MarshalBinary() ([]byte, error) {
	actions, err := openflow.PackList(r.Actions)
	if err != nil {
		return nil, err
	}

	v := make([]byte, 16, 16+len(actions))
	binary.BigEndian.PutUint16(v[0:2], uint16(16+len(actions)))
	binary.BigEndian.PutUint16(v[2:4], r.Weight)
	binary.BigEndian.PutUint32(v[4:8], r.WatchPort)
	binary.BigEndian.PutUint32(v[8:12], r.WatchGroup)
	// v[12:16] is padding

	return append(v, actions...), nil
}

func (r *Bucket) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("bucket", data, 16); err != nil {
		return err
	}
	r.Weight = binary.BigEndian.Uint16(data[2:4])
	r.WatchPort = binary.BigEndian.Uint32(data[4:8])
	r.WatchGroup = binary.BigEndian.Uint32(data[8:12])
	r.Actions, _, _ = d.UnpackList(ActionKind, data[16:], len(data)-16)

	return nil
}

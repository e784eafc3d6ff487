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

var QueuePropertyKind = openflow.NewEntryKind("queue property", 8, openflow.TLVHeader, map[uint16]func() openflow.Entry{
	OFPQT_NONE:     func() openflow.Entry { return new(QueuePropertyNone) },
	OFPQT_MIN_RATE: func() openflow.Entry { return new(QueuePropertyMinRate) },
})

// QueueKind is the family of ofp_packet_queue. A queue starts with its ID and
// then its length, so the generic length-first header cannot be used.
var QueueKind = openflow.NewEntryKind("queue", 8, queueHeader, map[uint16]func() openflow.Entry{
	0: func() openflow.Entry { return new(Queue) },
})

func queueHeader(data []byte) (uint16, int) {
	return 0, int(binary.BigEndian.Uint16(data[4:6]))
}

type QueuePropertyNone struct{}

func (r *QueuePropertyNone) Len() int {
	return 8
}

func (r *QueuePropertyNone) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, OFPQT_NONE, r.Len())
	// v[4:8] is padding

	return v, nil
}

func (r *QueuePropertyNone) Unpack(d *openflow.Decoder, data []byte) error {
	return checkLen("none queue property", data, r.Len())
}

type QueuePropertyMinRate struct {
	// Rate is in 1/10 of a percent; values above 1000 mean disabled.
	Rate uint16
}

func (r *QueuePropertyMinRate) Len() int {
	return 16
}

func (r *QueuePropertyMinRate) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, OFPQT_MIN_RATE, r.Len())
	// v[4:8] is padding
	binary.BigEndian.PutUint16(v[8:10], r.Rate)
	// v[10:16] is padding

	return v, nil
}

func (r *QueuePropertyMinRate) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("min_rate queue property", data, r.Len()); err != nil {
		return err
	}
	r.Rate = binary.BigEndian.Uint16(data[8:10])

	return nil
}

// Queue is ofp_packet_queue. It owns its property list.
type Queue struct {
	ID         uint32
	Properties []openflow.Entry
}

func (r *Queue) Len() int {
	return 8 + openflow.ListLen(r.Properties)
}

func (r *Queue) MarshalBinary() ([]byte, error) {
	properties, err := openflow.PackList(r.Properties)
	if err != nil {
		return nil, err
	}

	v := make([]byte, 8, 8+len(properties))
	binary.BigEndian.PutUint32(v[0:4], r.ID)
	binary.BigEndian.PutUint16(v[4:6], uint16(8+len(properties)))
	// v[6:8] is padding

	return append(v, properties...), nil
}

func (r *Queue) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("queue", data, 8); err != nil {
		return err
	}
	r.ID = binary.BigEndian.Uint32(data[0:4])
	r.Properties, _, _ = d.UnpackList(QueuePropertyKind, data[8:], len(data)-8)

	return nil
}

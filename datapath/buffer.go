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

package datapath

import (
	"fmt"

	"github.com/TrafficLab/oftest11/openflow/of11"

	lru "github.com/hashicorp/golang-lru"
)

type bufferedPacket struct {
	inPort uint32
	frame  []byte
}

// packetBuffer keeps the most recent frames sent to the controller so a
// PACKET_OUT or FLOW_MOD can refer to them by buffer id.
type packetBuffer struct {
	cache  *lru.Cache
	nextID uint32
}

func newPacketBuffer(size uint32) *packetBuffer {
	if size == 0 {
		// Buffering is disabled.
		return &packetBuffer{}
	}

	c, err := lru.New(int(size))
	if err != nil {
		panic(fmt.Sprintf("failed to init a LRU packet buffer: %v", err))
	}

	return &packetBuffer{cache: c}
}

// store returns the buffer id of the frame, or OFP_NO_BUFFER when buffering is disabled.
func (r *packetBuffer) store(inPort uint32, frame []byte) uint32 {
	if r.cache == nil {
		return of11.OFP_NO_BUFFER
	}

	id := r.nextID
	r.nextID++
	if r.nextID == of11.OFP_NO_BUFFER {
		r.nextID = 0
	}
	// The least recently used frame is evicted when the buffer is full.
	r.cache.Add(id, bufferedPacket{inPort: inPort, frame: frame})

	return id
}

// take removes the frame from the buffer and returns it.
func (r *packetBuffer) take(id uint32) (bufferedPacket, error) {
	if r.cache == nil {
		return bufferedPacket{}, newError(of11.OFPET_BAD_REQUEST, of11.OFPBRC_BUFFER_UNKNOWN)
	}

	v, ok := r.cache.Get(id)
	if !ok {
		return bufferedPacket{}, newError(of11.OFPET_BAD_REQUEST, of11.OFPBRC_BUFFER_UNKNOWN)
	}
	r.cache.Remove(id)

	return v.(bufferedPacket), nil
}

func (r *packetBuffer) len() int {
	if r.cache == nil {
		return 0
	}

	return r.cache.Len()
}

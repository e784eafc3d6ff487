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
	"bytes"
	"fmt"
	"net"
	"sort"

	"github.com/TrafficLab/oftest11/openflow/of11"
)

const (
	// Port features advertised by every port.
	portFeatures = of11.OFPPF_1GB_FD | of11.OFPPF_COPPER
	// Config bits a port mod may change.
	portConfigMask = of11.OFPPC_PORT_DOWN | of11.OFPPC_NO_RECV | of11.OFPPC_NO_FWD | of11.OFPPC_NO_PACKET_IN
)

type port struct {
	desc   of11.Port
	stats  of11.PortStats
	queues []*queue
}

type queue struct {
	config QueueConfig
	stats  of11.QueueStats
}

func newPort(c PortConfig) *port {
	hwAddr := c.HWAddr
	if hwAddr == nil {
		// Locally administered address derived from the port number.
		hwAddr = net.HardwareAddr{0x02, 0x00, byte(c.Number >> 24), byte(c.Number >> 16), byte(c.Number >> 8), byte(c.Number)}
	}
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("port%v", c.Number)
	}
	speed := c.Speed
	if speed == 0 {
		speed = defaultSpeed
	}

	p := &port{
		desc: of11.Port{
			Number:       c.Number,
			HWAddr:       hwAddr,
			Name:         name,
			State:        of11.OFPPS_LIVE,
			Current:      portFeatures,
			Advertised:   portFeatures,
			Supported:    portFeatures,
			Peer:         portFeatures,
			CurrentSpeed: speed,
			MaxSpeed:     speed,
		},
		stats: of11.PortStats{PortNo: c.Number},
	}
	for _, v := range c.Queues {
		p.queues = append(p.queues, &queue{
			config: v,
			stats:  of11.QueueStats{PortNo: c.Number, QueueID: v.ID},
		})
	}

	return p
}

func (r *port) String() string {
	return fmt.Sprintf("Port{Number=%v, Name=%v, HWAddr=%v, Config=%#x, State=%#x}", r.desc.Number, r.desc.Name, r.desc.HWAddr, r.desc.Config, r.desc.State)
}

func (r *port) queue(id uint32) (*queue, bool) {
	for _, v := range r.queues {
		if v.config.ID == id {
			return v, true
		}
	}

	return nil, false
}

func (r *port) receive(length int) {
	r.stats.RxPackets++
	r.stats.RxBytes += uint64(length)
}

// transmit counts a frame sent out of the port, or a drop when forwarding is disabled.
func (r *port) transmit(length int) bool {
	if r.desc.Config&(of11.OFPPC_PORT_DOWN|of11.OFPPC_NO_FWD) != 0 {
		r.stats.TxDropped++
		return false
	}
	r.stats.TxPackets++
	r.stats.TxBytes += uint64(length)

	return true
}

type portTable struct {
	ports map[uint32]*port
}

func newPortTable(configs []PortConfig) *portTable {
	t := &portTable{ports: make(map[uint32]*port)}
	for _, v := range configs {
		t.ports[v.Number] = newPort(v)
	}

	return t
}

func (r *portTable) get(number uint32) (*port, bool) {
	p, ok := r.ports[number]
	return p, ok
}

// list returns the ports sorted by their number.
func (r *portTable) list() []*port {
	ports := make([]*port, 0, len(r.ports))
	for _, v := range r.ports {
		ports = append(ports, v)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].desc.Number < ports[j].desc.Number })

	return ports
}

func (r *portTable) modify(mod *of11.PortMod) (of11.Port, error) {
	p, ok := r.ports[mod.PortNo]
	if !ok {
		return of11.Port{}, newError(of11.OFPET_PORT_MOD_FAILED, of11.OFPPMFC_BAD_PORT)
	}
	if !bytes.Equal(p.desc.HWAddr, mod.HWAddr) {
		return of11.Port{}, newError(of11.OFPET_PORT_MOD_FAILED, of11.OFPPMFC_BAD_HW_ADDR)
	}
	if mod.Mask&^portConfigMask != 0 {
		return of11.Port{}, newError(of11.OFPET_PORT_MOD_FAILED, of11.OFPPMFC_BAD_CONFIG)
	}
	if mod.Advertise&^p.desc.Supported != 0 {
		return of11.Port{}, newError(of11.OFPET_PORT_MOD_FAILED, of11.OFPPMFC_BAD_ADVERTISE)
	}

	p.desc.Config = (p.desc.Config &^ mod.Mask) | (mod.Config & mod.Mask)
	// Zero means no change.
	if mod.Advertise != 0 {
		p.desc.Advertised = mod.Advertise
	}

	return p.desc, nil
}

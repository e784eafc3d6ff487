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
	"net"

	"github.com/TrafficLab/oftest11/openflow/of11"

	"github.com/pkg/errors"
)

const (
	DefaultDatapathID = 0xcafebabedeadbeef
	DefaultNumTables  = 4
	DefaultNumBuffers = 256
	// Port speed in kbps reported when a port does not configure one.
	defaultSpeed = 1000000
)

type Description struct {
	Manufacturer string
	Hardware     string
	Software     string
	SerialNumber string
	Datapath     string
}

type QueueConfig struct {
	ID uint32
	// Minimum rate in 1/10 of a percent. Zero means no guarantee.
	MinRate uint16
}

type PortConfig struct {
	Number uint32
	Name   string
	HWAddr net.HardwareAddr
	// Speed in kbps.
	Speed  uint32
	Queues []QueueConfig
}

type Config struct {
	DatapathID  uint64
	NumTables   uint8
	NumBuffers  uint32
	MissSendLen uint16
	Description Description
	Ports       []PortConfig
}

func DefaultConfig() Config {
	return Config{
		DatapathID:  DefaultDatapathID,
		NumTables:   DefaultNumTables,
		NumBuffers:  DefaultNumBuffers,
		MissSendLen: of11.OFP_DEFAULT_MISS_SEND_LEN,
		Description: Description{
			Manufacturer: "TrafficLab",
			Hardware:     "OpenFlow 1.1 software switch",
			Software:     "oftest11",
			SerialNumber: "None",
			Datapath:     "ofswitch",
		},
	}
}

func (r Config) Validate() error {
	if r.NumTables == 0 {
		return errors.New("at least one flow table is required")
	}

	numbers := make(map[uint32]bool)
	for _, v := range r.Ports {
		if v.Number == 0 || v.Number > of11.OFPP_MAX {
			return errors.Errorf("invalid port number: %v", v.Number)
		}
		if numbers[v.Number] {
			return errors.Errorf("duplicated port number: %v", v.Number)
		}
		numbers[v.Number] = true

		if v.HWAddr != nil && len(v.HWAddr) != 6 {
			return errors.Errorf("invalid hardware address of port %v: %v", v.Number, v.HWAddr)
		}
		if len(v.Name) >= of11.OFP_MAX_PORT_NAME_LEN {
			return errors.Errorf("too long port name: %v", v.Name)
		}

		queues := make(map[uint32]bool)
		for _, q := range v.Queues {
			if q.ID == of11.OFPQ_ALL || queues[q.ID] {
				return errors.Errorf("invalid queue %v of port %v", q.ID, v.Number)
			}
			queues[q.ID] = true
		}
	}

	return nil
}

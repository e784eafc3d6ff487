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
	"strconv"
	"strings"

	"github.com/TrafficLab/oftest11/openflow"
	"github.com/TrafficLab/oftest11/openflow/of11"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Pipeline is the dataplane boundary. The datapath hands it the frames and
// actions that PACKET_OUT and buffered FLOW_MOD requests carry.
type Pipeline interface {
	Execute(inPort uint32, actions []openflow.Entry, frame []byte) error
}

// LogPipeline is a dataplane without ports. It only logs what it would do.
type LogPipeline struct{}

func (r LogPipeline) Execute(inPort uint32, actions []openflow.Entry, frame []byte) error {
	names := make([]string, len(actions))
	for i, v := range actions {
		names[i] = actionName(v)
	}
	logger.Infof("frame from port %v: %v: actions=[%v]", inPort, Summary(frame), strings.Join(names, ", "))

	return nil
}

func actionName(a openflow.Entry) string {
	switch v := a.(type) {
	case *of11.ActionOutput:
		return "OUTPUT:" + portName(v.Port)
	case *of11.ActionHeader:
		return of11.ActionName(v.Type)
	case *of11.ActionUint8:
		return of11.ActionName(v.Type)
	case *of11.ActionUint16:
		return of11.ActionName(v.Type)
	case *of11.ActionUint32:
		return of11.ActionName(v.Type)
	case *of11.ActionSetDLAddr:
		return of11.ActionName(v.Type)
	case *of11.ActionSetNWAddr:
		return of11.ActionName(v.Type)
	default:
		return "UNKNOWN"
	}
}

func portName(p uint32) string {
	switch p {
	case of11.OFPP_IN_PORT:
		return "IN_PORT"
	case of11.OFPP_TABLE:
		return "TABLE"
	case of11.OFPP_NORMAL:
		return "NORMAL"
	case of11.OFPP_FLOOD:
		return "FLOOD"
	case of11.OFPP_ALL:
		return "ALL"
	case of11.OFPP_CONTROLLER:
		return "CONTROLLER"
	case of11.OFPP_LOCAL:
		return "LOCAL"
	case of11.OFPP_ANY:
		return "ANY"
	default:
		return strconv.FormatUint(uint64(p), 10)
	}
}

// Summary describes the layers of an Ethernet frame, e.g., "Ethernet/IPv4/TCP".
func Summary(frame []byte) string {
	if len(frame) == 0 {
		return "empty"
	}

	packet := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.Default)
	var names []string
	for _, v := range packet.Layers() {
		names = append(names, v.LayerType().String())
	}
	if e := packet.ErrorLayer(); e != nil {
		names = append(names, "error("+e.Error().Error()+")")
	}

	return strings.Join(names, "/")
}

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
	"sync/atomic"

	"github.com/TrafficLab/oftest11/openflow"
)

// Factory builds OpenFlow 1.1 messages. Messages initiated by the switch get a
// fresh transaction ID and replies reuse the ID of their request.
type Factory struct {
	xid uint32
}

func NewFactory() *Factory {
	return &Factory{}
}

func (r *Factory) getTransactionID() uint32 {
	// Transaction ID will be started from 1, not 0.
	return atomic.AddUint32(&r.xid, 1)
}

func newMessage(t uint8, xid uint32) *openflow.Message {
	return &openflow.Message{
		Header: openflow.Header{
			Version: Version,
			Type:    t,
			XID:     xid,
		},
	}
}

func (r *Factory) NewHello() *openflow.Message {
	return newMessage(OFPT_HELLO, r.getTransactionID())
}

func (r *Factory) NewEchoRequest(data []byte) *openflow.Message {
	msg := newMessage(OFPT_ECHO_REQUEST, r.getTransactionID())
	msg.Payload = data

	return msg
}

func (r *Factory) NewEchoReply(xid uint32, data []byte) *openflow.Message {
	msg := newMessage(OFPT_ECHO_REPLY, xid)
	msg.Payload = data

	return msg
}

func (r *Factory) NewError(xid uint32, errType, code uint16, data []byte) *openflow.Message {
	msg := newMessage(OFPT_ERROR, xid)
	msg.Body = &Error{Type: errType, Code: code}
	msg.Payload = data

	return msg
}

func (r *Factory) NewFeaturesRequest() *openflow.Message {
	return newMessage(OFPT_FEATURES_REQUEST, r.getTransactionID())
}

func (r *Factory) NewFeaturesReply(xid uint32, features *FeaturesReply, ports []*Port) *openflow.Message {
	msg := newMessage(OFPT_FEATURES_REPLY, xid)
	msg.Body = features
	for _, v := range ports {
		msg.List = append(msg.List, v)
	}

	return msg
}

func (r *Factory) NewGetConfigRequest() *openflow.Message {
	return newMessage(OFPT_GET_CONFIG_REQUEST, r.getTransactionID())
}

func (r *Factory) NewGetConfigReply(xid uint32, config *SwitchConfig) *openflow.Message {
	msg := newMessage(OFPT_GET_CONFIG_REPLY, xid)
	msg.Body = config

	return msg
}

func (r *Factory) NewSetConfig(config *SwitchConfig) *openflow.Message {
	msg := newMessage(OFPT_SET_CONFIG, r.getTransactionID())
	msg.Body = config

	return msg
}

func (r *Factory) NewPacketIn(packetIn *PacketIn, frame []byte) *openflow.Message {
	msg := newMessage(OFPT_PACKET_IN, r.getTransactionID())
	msg.Body = packetIn
	msg.Payload = frame

	return msg
}

func (r *Factory) NewFlowRemoved(removed *FlowRemoved) *openflow.Message {
	msg := newMessage(OFPT_FLOW_REMOVED, r.getTransactionID())
	msg.Body = removed

	return msg
}

func (r *Factory) NewPortStatus(reason uint8, port Port) *openflow.Message {
	msg := newMessage(OFPT_PORT_STATUS, r.getTransactionID())
	msg.Body = &PortStatus{Reason: reason, Port: port}

	return msg
}

func (r *Factory) NewPacketOut(packetOut *PacketOut, actions []openflow.Entry, frame []byte) *openflow.Message {
	msg := newMessage(OFPT_PACKET_OUT, r.getTransactionID())
	msg.Body = packetOut
	msg.List = actions
	msg.Payload = frame

	return msg
}

func (r *Factory) NewFlowMod(flowMod *FlowMod, instructions ...openflow.Entry) *openflow.Message {
	msg := newMessage(OFPT_FLOW_MOD, r.getTransactionID())
	msg.Body = flowMod
	msg.List = instructions

	return msg
}

func (r *Factory) NewGroupMod(groupMod *GroupMod, buckets ...openflow.Entry) *openflow.Message {
	msg := newMessage(OFPT_GROUP_MOD, r.getTransactionID())
	msg.Body = groupMod
	msg.List = buckets

	return msg
}

func (r *Factory) NewPortMod(portMod *PortMod) *openflow.Message {
	msg := newMessage(OFPT_PORT_MOD, r.getTransactionID())
	msg.Body = portMod

	return msg
}

func (r *Factory) NewTableMod(tableMod *TableMod) *openflow.Message {
	msg := newMessage(OFPT_TABLE_MOD, r.getTransactionID())
	msg.Body = tableMod

	return msg
}

// NewStatsRequest returns a stats request. A nil body is replaced with the
// empty body used by the desc, table and group desc requests.
func (r *Factory) NewStatsRequest(statsType uint16, body openflow.Body) *openflow.Message {
	if body == nil {
		body = new(StatsEmpty)
	}
	msg := newMessage(OFPT_STATS_REQUEST, r.getTransactionID())
	msg.Body = &StatsRequest{Type: statsType, Body: body}

	return msg
}

func (r *Factory) NewStatsReply(xid uint32, statsType, flags uint16, entries []openflow.Entry) *openflow.Message {
	msg := newMessage(OFPT_STATS_REPLY, xid)
	msg.Body = &StatsReply{Type: statsType, Flags: flags}
	msg.List = entries

	return msg
}

func (r *Factory) NewBarrierRequest() *openflow.Message {
	return newMessage(OFPT_BARRIER_REQUEST, r.getTransactionID())
}

func (r *Factory) NewBarrierReply(xid uint32) *openflow.Message {
	return newMessage(OFPT_BARRIER_REPLY, xid)
}

func (r *Factory) NewQueueGetConfigRequest(port uint32) *openflow.Message {
	msg := newMessage(OFPT_QUEUE_GET_CONFIG_REQUEST, r.getTransactionID())
	msg.Body = &QueueGetConfig{Port: port}

	return msg
}

func (r *Factory) NewQueueGetConfigReply(xid uint32, port uint32, queues []*Queue) *openflow.Message {
	msg := newMessage(OFPT_QUEUE_GET_CONFIG_REPLY, xid)
	msg.Body = &QueueGetConfig{Port: port}
	for _, v := range queues {
		msg.List = append(msg.List, v)
	}

	return msg
}

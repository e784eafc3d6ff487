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
	"github.com/TrafficLab/oftest11/openflow"
)

// Version is the wire version of OpenFlow 1.1.
const Version = 0x02

// Registry holds the schema of every OpenFlow 1.1 message type.
var Registry = openflow.NewRegistry(
	openflow.Schema{Type: OFPT_HELLO, Name: "HELLO", Payload: true},
	openflow.Schema{
		Type:    OFPT_ERROR,
		Name:    "ERROR",
		NewBody: func() openflow.Body { return new(Error) },
		Payload: true,
	},
	openflow.Schema{Type: OFPT_ECHO_REQUEST, Name: "ECHO_REQUEST", Payload: true},
	openflow.Schema{Type: OFPT_ECHO_REPLY, Name: "ECHO_REPLY", Payload: true},
	openflow.Schema{
		Type:    OFPT_EXPERIMENTER,
		Name:    "EXPERIMENTER",
		NewBody: func() openflow.Body { return new(Experimenter) },
		Payload: true,
	},
	openflow.Schema{Type: OFPT_FEATURES_REQUEST, Name: "FEATURES_REQUEST"},
	openflow.Schema{
		Type:    OFPT_FEATURES_REPLY,
		Name:    "FEATURES_REPLY",
		NewBody: func() openflow.Body { return new(FeaturesReply) },
		List:    &openflow.ListSpec{Field: "ports", Kind: openflow.StaticKind(PortKind), Delimiter: openflow.DelimitImplicit},
	},
	openflow.Schema{Type: OFPT_GET_CONFIG_REQUEST, Name: "GET_CONFIG_REQUEST"},
	openflow.Schema{
		Type:    OFPT_GET_CONFIG_REPLY,
		Name:    "GET_CONFIG_REPLY",
		NewBody: func() openflow.Body { return new(SwitchConfig) },
	},
	openflow.Schema{
		Type:    OFPT_SET_CONFIG,
		Name:    "SET_CONFIG",
		NewBody: func() openflow.Body { return new(SwitchConfig) },
	},
	openflow.Schema{
		Type:    OFPT_PACKET_IN,
		Name:    "PACKET_IN",
		NewBody: func() openflow.Body { return new(PacketIn) },
		Payload: true,
	},
	openflow.Schema{
		Type:    OFPT_FLOW_REMOVED,
		Name:    "FLOW_REMOVED",
		NewBody: func() openflow.Body { return new(FlowRemoved) },
	},
	openflow.Schema{
		Type:    OFPT_PORT_STATUS,
		Name:    "PORT_STATUS",
		NewBody: func() openflow.Body { return new(PortStatus) },
	},
	openflow.Schema{
		Type:    OFPT_PACKET_OUT,
		Name:    "PACKET_OUT",
		NewBody: func() openflow.Body { return new(PacketOut) },
		List:    &openflow.ListSpec{Field: "actions", Kind: openflow.StaticKind(ActionKind), Delimiter: openflow.DelimitExplicit},
		Payload: true,
	},
	openflow.Schema{
		Type:    OFPT_FLOW_MOD,
		Name:    "FLOW_MOD",
		NewBody: func() openflow.Body { return new(FlowMod) },
		List:    &openflow.ListSpec{Field: "instructions", Kind: openflow.StaticKind(InstructionKind), Delimiter: openflow.DelimitImplicit},
	},
	openflow.Schema{
		Type:    OFPT_GROUP_MOD,
		Name:    "GROUP_MOD",
		NewBody: func() openflow.Body { return new(GroupMod) },
		List:    &openflow.ListSpec{Field: "buckets", Kind: openflow.StaticKind(BucketKind), Delimiter: openflow.DelimitImplicit},
	},
	openflow.Schema{
		Type:    OFPT_PORT_MOD,
		Name:    "PORT_MOD",
		NewBody: func() openflow.Body { return new(PortMod) },
	},
	openflow.Schema{
		Type:    OFPT_TABLE_MOD,
		Name:    "TABLE_MOD",
		NewBody: func() openflow.Body { return new(TableMod) },
	},
	openflow.Schema{
		Type:    OFPT_STATS_REQUEST,
		Name:    "STATS_REQUEST",
		NewBody: func() openflow.Body { return new(StatsRequest) },
	},
	openflow.Schema{
		Type:    OFPT_STATS_REPLY,
		Name:    "STATS_REPLY",
		NewBody: func() openflow.Body { return new(StatsReply) },
		List:    &openflow.ListSpec{Field: "stats", Kind: statsReplyKind, Delimiter: openflow.DelimitImplicit},
	},
	openflow.Schema{Type: OFPT_BARRIER_REQUEST, Name: "BARRIER_REQUEST"},
	openflow.Schema{Type: OFPT_BARRIER_REPLY, Name: "BARRIER_REPLY"},
	openflow.Schema{
		Type:    OFPT_QUEUE_GET_CONFIG_REQUEST,
		Name:    "QUEUE_GET_CONFIG_REQUEST",
		NewBody: func() openflow.Body { return new(QueueGetConfig) },
	},
	openflow.Schema{
		Type:    OFPT_QUEUE_GET_CONFIG_REPLY,
		Name:    "QUEUE_GET_CONFIG_REPLY",
		NewBody: func() openflow.Body { return new(QueueGetConfig) },
		List:    &openflow.ListSpec{Field: "queues", Kind: openflow.StaticKind(QueueKind), Delimiter: openflow.DelimitImplicit},
	},
)

// Codec packs and unpacks OpenFlow 1.1 messages.
var Codec = &openflow.Codec{Version: Version, Registry: Registry}

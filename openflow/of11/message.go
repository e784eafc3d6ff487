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

// Error is ofp_error_msg. The data that follows is the message payload and it
// is never parsed.
type Error struct {
	Type uint16
	Code uint16
}

func (r *Error) Len() int {
	return 4
}

func (r *Error) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint16(v[0:2], r.Type)
	binary.BigEndian.PutUint16(v[2:4], r.Code)

	return v, nil
}

func (r *Error) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("error", data, r.Len()); err != nil {
		return 0, err
	}
	r.Type = binary.BigEndian.Uint16(data[0:2])
	r.Code = binary.BigEndian.Uint16(data[2:4])

	return r.Len(), nil
}

func (r *Error) String() string {
	return ErrorString(r.Type, r.Code)
}

// Experimenter is ofp_experimenter_header.
type Experimenter struct {
	Experimenter uint32
}

func (r *Experimenter) Len() int {
	return 8
}

func (r *Experimenter) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.Experimenter)
	// v[4:8] is padding

	return v, nil
}

func (r *Experimenter) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("experimenter", data, r.Len()); err != nil {
		return 0, err
	}
	r.Experimenter = binary.BigEndian.Uint32(data[0:4])

	return r.Len(), nil
}

// FeaturesReply is ofp_switch_features. The ports follow as the message list.
type FeaturesReply struct {
	DatapathID   uint64
	NumBuffers   uint32
	NumTables    uint8
	Capabilities uint32
	Reserved     uint32
}

func (r *FeaturesReply) Len() int {
	return 24
}

func (r *FeaturesReply) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint64(v[0:8], r.DatapathID)
	binary.BigEndian.PutUint32(v[8:12], r.NumBuffers)
	v[12] = r.NumTables
	// v[13:16] is padding
	binary.BigEndian.PutUint32(v[16:20], r.Capabilities)
	binary.BigEndian.PutUint32(v[20:24], r.Reserved)

	return v, nil
}

func (r *FeaturesReply) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("features reply", data, r.Len()); err != nil {
		return 0, err
	}
	r.DatapathID = binary.BigEndian.Uint64(data[0:8])
	r.NumBuffers = binary.BigEndian.Uint32(data[8:12])
	r.NumTables = data[12]
	r.Capabilities = binary.BigEndian.Uint32(data[16:20])
	r.Reserved = binary.BigEndian.Uint32(data[20:24])

	return r.Len(), nil
}

// SwitchConfig is ofp_switch_config, the body of GET_CONFIG_REPLY and SET_CONFIG.
type SwitchConfig struct {
	// Bitmap of OFPC_* flags.
	Flags uint16
	// Max bytes of new flow that datapath should send to the controller.
	MissSendLen uint16
}

func (r *SwitchConfig) Len() int {
	return 4
}

func (r *SwitchConfig) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint16(v[0:2], r.Flags)
	binary.BigEndian.PutUint16(v[2:4], r.MissSendLen)

	return v, nil
}

func (r *SwitchConfig) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("switch config", data, r.Len()); err != nil {
		return 0, err
	}
	r.Flags = binary.BigEndian.Uint16(data[0:2])
	r.MissSendLen = binary.BigEndian.Uint16(data[2:4])

	return r.Len(), nil
}

// PacketIn is ofp_packet_in. The frame follows as the message payload.
type PacketIn struct {
	BufferID  uint32
	InPort    uint32
	InPhyPort uint32
	// Full length of the frame.
	TotalLen uint16
	Reason   uint8
	TableID  uint8
}

func (r *PacketIn) Len() int {
	return 16
}

func (r *PacketIn) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.BufferID)
	binary.BigEndian.PutUint32(v[4:8], r.InPort)
	binary.BigEndian.PutUint32(v[8:12], r.InPhyPort)
	binary.BigEndian.PutUint16(v[12:14], r.TotalLen)
	v[14] = r.Reason
	v[15] = r.TableID

	return v, nil
}

func (r *PacketIn) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("packet in", data, r.Len()); err != nil {
		return 0, err
	}
	r.BufferID = binary.BigEndian.Uint32(data[0:4])
	r.InPort = binary.BigEndian.Uint32(data[4:8])
	r.InPhyPort = binary.BigEndian.Uint32(data[8:12])
	r.TotalLen = binary.BigEndian.Uint16(data[12:14])
	r.Reason = data[14]
	r.TableID = data[15]

	return r.Len(), nil
}

func marshalMatch(m *Match) ([]byte, error) {
	if m == nil {
		m = NewMatch()
	}

	return m.MarshalBinary()
}

// FlowRemoved is ofp_flow_removed.
type FlowRemoved struct {
	Cookie       uint64
	Priority     uint16
	Reason       uint8
	TableID      uint8
	DurationSec  uint32
	DurationNsec uint32
	IdleTimeout  uint16
	PacketCount  uint64
	ByteCount    uint64
	Match        *Match
}

func (r *FlowRemoved) Len() int {
	return 40 + OFPMT_STANDARD_LENGTH
}

func (r *FlowRemoved) MarshalBinary() ([]byte, error) {
	match, err := marshalMatch(r.Match)
	if err != nil {
		return nil, err
	}

	v := make([]byte, 40, r.Len())
	binary.BigEndian.PutUint64(v[0:8], r.Cookie)
	binary.BigEndian.PutUint16(v[8:10], r.Priority)
	v[10] = r.Reason
	v[11] = r.TableID
	binary.BigEndian.PutUint32(v[12:16], r.DurationSec)
	binary.BigEndian.PutUint32(v[16:20], r.DurationNsec)
	binary.BigEndian.PutUint16(v[20:22], r.IdleTimeout)
	// v[22:24] is padding
	binary.BigEndian.PutUint64(v[24:32], r.PacketCount)
	binary.BigEndian.PutUint64(v[32:40], r.ByteCount)

	return append(v, match...), nil
}

func (r *FlowRemoved) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("flow removed", data, r.Len()); err != nil {
		return 0, err
	}
	r.Cookie = binary.BigEndian.Uint64(data[0:8])
	r.Priority = binary.BigEndian.Uint16(data[8:10])
	r.Reason = data[10]
	r.TableID = data[11]
	r.DurationSec = binary.BigEndian.Uint32(data[12:16])
	r.DurationNsec = binary.BigEndian.Uint32(data[16:20])
	r.IdleTimeout = binary.BigEndian.Uint16(data[20:22])
	r.PacketCount = binary.BigEndian.Uint64(data[24:32])
	r.ByteCount = binary.BigEndian.Uint64(data[32:40])
	r.Match = new(Match)
	if err := r.Match.UnmarshalBinary(data[40:]); err != nil {
		return 0, err
	}

	return r.Len(), nil
}

// PortStatus is ofp_port_status.
type PortStatus struct {
	Reason uint8
	Port   Port
}

func (r *PortStatus) Len() int {
	return 8 + portLength
}

func (r *PortStatus) MarshalBinary() ([]byte, error) {
	port, err := r.Port.MarshalBinary()
	if err != nil {
		return nil, err
	}

	v := make([]byte, 8, r.Len())
	v[0] = r.Reason
	// v[1:8] is padding

	return append(v, port...), nil
}

func (r *PortStatus) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("port status", data, r.Len()); err != nil {
		return 0, err
	}
	r.Reason = data[0]
	if err := r.Port.UnmarshalBinary(data[8:]); err != nil {
		return 0, err
	}

	return r.Len(), nil
}

// PacketOut is ofp_packet_out. Its action list is delimited by ActionsLen and
// the frame follows the list as the message payload.
type PacketOut struct {
	BufferID   uint32
	InPort     uint32
	ActionsLen uint16
}

func (r *PacketOut) Len() int {
	return 16
}

func (r *PacketOut) ListLen() int {
	return int(r.ActionsLen)
}

func (r *PacketOut) SetListLen(length int) {
	r.ActionsLen = uint16(length)
}

func (r *PacketOut) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.BufferID)
	binary.BigEndian.PutUint32(v[4:8], r.InPort)
	binary.BigEndian.PutUint16(v[8:10], r.ActionsLen)
	// v[10:16] is padding

	return v, nil
}

func (r *PacketOut) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("packet out", data, r.Len()); err != nil {
		return 0, err
	}
	r.BufferID = binary.BigEndian.Uint32(data[0:4])
	r.InPort = binary.BigEndian.Uint32(data[4:8])
	r.ActionsLen = binary.BigEndian.Uint16(data[8:10])

	return r.Len(), nil
}

// FlowMod is ofp_flow_mod. Its instruction list runs to the end of the message.
type FlowMod struct {
	Cookie      uint64
	CookieMask  uint64
	TableID     uint8
	Command     uint8
	IdleTimeout uint16
	HardTimeout uint16
	Priority    uint16
	BufferID    uint32
	OutPort     uint32
	OutGroup    uint32
	Flags       uint16
	Match       *Match
}

func (r *FlowMod) Len() int {
	return 40 + OFPMT_STANDARD_LENGTH
}

func (r *FlowMod) MarshalBinary() ([]byte, error) {
	match, err := marshalMatch(r.Match)
	if err != nil {
		return nil, err
	}

	v := make([]byte, 40, r.Len())
	binary.BigEndian.PutUint64(v[0:8], r.Cookie)
	binary.BigEndian.PutUint64(v[8:16], r.CookieMask)
	v[16] = r.TableID
	v[17] = r.Command
	binary.BigEndian.PutUint16(v[18:20], r.IdleTimeout)
	binary.BigEndian.PutUint16(v[20:22], r.HardTimeout)
	binary.BigEndian.PutUint16(v[22:24], r.Priority)
	binary.BigEndian.PutUint32(v[24:28], r.BufferID)
	binary.BigEndian.PutUint32(v[28:32], r.OutPort)
	binary.BigEndian.PutUint32(v[32:36], r.OutGroup)
	binary.BigEndian.PutUint16(v[36:38], r.Flags)
	// v[38:40] is padding

	return append(v, match...), nil
}

func (r *FlowMod) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("flow mod", data, r.Len()); err != nil {
		return 0, err
	}
	r.Cookie = binary.BigEndian.Uint64(data[0:8])
	r.CookieMask = binary.BigEndian.Uint64(data[8:16])
	r.TableID = data[16]
	r.Command = data[17]
	r.IdleTimeout = binary.BigEndian.Uint16(data[18:20])
	r.HardTimeout = binary.BigEndian.Uint16(data[20:22])
	r.Priority = binary.BigEndian.Uint16(data[22:24])
	r.BufferID = binary.BigEndian.Uint32(data[24:28])
	r.OutPort = binary.BigEndian.Uint32(data[28:32])
	r.OutGroup = binary.BigEndian.Uint32(data[32:36])
	r.Flags = binary.BigEndian.Uint16(data[36:38])
	r.Match = new(Match)
	if err := r.Match.UnmarshalBinary(data[40:]); err != nil {
		return 0, err
	}

	return r.Len(), nil
}

// GroupMod is ofp_group_mod. Its bucket list runs to the end of the message.
type GroupMod struct {
	Command uint16
	Type    uint8
	GroupID uint32
}

func (r *GroupMod) Len() int {
	return 8
}

func (r *GroupMod) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint16(v[0:2], r.Command)
	v[2] = r.Type
	// v[3] is padding
	binary.BigEndian.PutUint32(v[4:8], r.GroupID)

	return v, nil
}

func (r *GroupMod) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("group mod", data, r.Len()); err != nil {
		return 0, err
	}
	r.Command = binary.BigEndian.Uint16(data[0:2])
	r.Type = data[2]
	r.GroupID = binary.BigEndian.Uint32(data[4:8])

	return r.Len(), nil
}

// PortMod is ofp_port_mod.
type PortMod struct {
	PortNo    uint32
	HWAddr    net.HardwareAddr
	Config    uint32
	Mask      uint32
	Advertise uint32
}

func (r *PortMod) Len() int {
	return 32
}

func (r *PortMod) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.PortNo)
	// v[4:8] is padding
	if err := putMAC(v[8:14], r.HWAddr); err != nil {
		return nil, err
	}
	// v[14:16] is padding
	binary.BigEndian.PutUint32(v[16:20], r.Config)
	binary.BigEndian.PutUint32(v[20:24], r.Mask)
	binary.BigEndian.PutUint32(v[24:28], r.Advertise)
	// v[28:32] is padding

	return v, nil
}

func (r *PortMod) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("port mod", data, r.Len()); err != nil {
		return 0, err
	}
	r.PortNo = binary.BigEndian.Uint32(data[0:4])
	r.HWAddr = getMAC(data[8:14])
	r.Config = binary.BigEndian.Uint32(data[16:20])
	r.Mask = binary.BigEndian.Uint32(data[20:24])
	r.Advertise = binary.BigEndian.Uint32(data[24:28])

	return r.Len(), nil
}

// TableMod is ofp_table_mod.
type TableMod struct {
	TableID uint8
	// Bitmap of OFPTC_* flags
	Config uint32
}

func (r *TableMod) Len() int {
	return 8
}

func (r *TableMod) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	v[0] = r.TableID
	// v[1:4] is padding
	binary.BigEndian.PutUint32(v[4:8], r.Config)

	return v, nil
}

func (r *TableMod) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("table mod", data, r.Len()); err != nil {
		return 0, err
	}
	r.TableID = data[0]
	r.Config = binary.BigEndian.Uint32(data[4:8])

	return r.Len(), nil
}

// QueueGetConfig is the body of both QUEUE_GET_CONFIG_REQUEST and
// QUEUE_GET_CONFIG_REPLY. The reply carries the queues as the message list.
type QueueGetConfig struct {
	Port uint32
}

func (r *QueueGetConfig) Len() int {
	return 8
}

func (r *QueueGetConfig) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.Port)
	// v[4:8] is padding

	return v, nil
}

func (r *QueueGetConfig) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("queue get config", data, r.Len()); err != nil {
		return 0, err
	}
	r.Port = binary.BigEndian.Uint32(data[0:4])

	return r.Len(), nil
}

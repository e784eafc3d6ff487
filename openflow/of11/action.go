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
	"fmt"
	"net"

	"github.com/TrafficLab/oftest11/openflow"
)

// ActionKind is the action list family. Experimenter actions are not
// registered and are skipped when they appear in a list.
var ActionKind = openflow.NewEntryKind("action", openflow.TLVHeaderLen, openflow.TLVHeader, map[uint16]func() openflow.Entry{
	OFPAT_OUTPUT:         func() openflow.Entry { return new(ActionOutput) },
	OFPAT_SET_VLAN_VID:   newActionUint16(OFPAT_SET_VLAN_VID),
	OFPAT_SET_VLAN_PCP:   newActionUint8(OFPAT_SET_VLAN_PCP),
	OFPAT_SET_DL_SRC:     newActionSetDLAddr(OFPAT_SET_DL_SRC),
	OFPAT_SET_DL_DST:     newActionSetDLAddr(OFPAT_SET_DL_DST),
	OFPAT_SET_NW_SRC:     newActionSetNWAddr(OFPAT_SET_NW_SRC),
	OFPAT_SET_NW_DST:     newActionSetNWAddr(OFPAT_SET_NW_DST),
	OFPAT_SET_NW_TOS:     newActionUint8(OFPAT_SET_NW_TOS),
	OFPAT_SET_NW_ECN:     newActionUint8(OFPAT_SET_NW_ECN),
	OFPAT_SET_TP_SRC:     newActionUint16(OFPAT_SET_TP_SRC),
	OFPAT_SET_TP_DST:     newActionUint16(OFPAT_SET_TP_DST),
	OFPAT_COPY_TTL_OUT:   newActionHeader(OFPAT_COPY_TTL_OUT),
	OFPAT_COPY_TTL_IN:    newActionHeader(OFPAT_COPY_TTL_IN),
	OFPAT_SET_MPLS_LABEL: newActionUint32(OFPAT_SET_MPLS_LABEL),
	OFPAT_SET_MPLS_TC:    newActionUint8(OFPAT_SET_MPLS_TC),
	OFPAT_SET_MPLS_TTL:   newActionUint8(OFPAT_SET_MPLS_TTL),
	OFPAT_DEC_MPLS_TTL:   newActionHeader(OFPAT_DEC_MPLS_TTL),
	OFPAT_PUSH_VLAN:      newActionUint16(OFPAT_PUSH_VLAN),
	OFPAT_POP_VLAN:       newActionHeader(OFPAT_POP_VLAN),
	OFPAT_PUSH_MPLS:      newActionUint16(OFPAT_PUSH_MPLS),
	OFPAT_POP_MPLS:       newActionUint16(OFPAT_POP_MPLS),
	OFPAT_SET_QUEUE:      newActionUint32(OFPAT_SET_QUEUE),
	OFPAT_GROUP:          newActionUint32(OFPAT_GROUP),
	OFPAT_SET_NW_TTL:     newActionUint8(OFPAT_SET_NW_TTL),
	OFPAT_DEC_NW_TTL:     newActionHeader(OFPAT_DEC_NW_TTL),
})

var actionNames = map[uint16]string{
	OFPAT_OUTPUT:         "OUTPUT",
	OFPAT_SET_VLAN_VID:   "SET_VLAN_VID",
	OFPAT_SET_VLAN_PCP:   "SET_VLAN_PCP",
	OFPAT_SET_DL_SRC:     "SET_DL_SRC",
	OFPAT_SET_DL_DST:     "SET_DL_DST",
	OFPAT_SET_NW_SRC:     "SET_NW_SRC",
	OFPAT_SET_NW_DST:     "SET_NW_DST",
	OFPAT_SET_NW_TOS:     "SET_NW_TOS",
	OFPAT_SET_NW_ECN:     "SET_NW_ECN",
	OFPAT_SET_TP_SRC:     "SET_TP_SRC",
	OFPAT_SET_TP_DST:     "SET_TP_DST",
	OFPAT_COPY_TTL_OUT:   "COPY_TTL_OUT",
	OFPAT_COPY_TTL_IN:    "COPY_TTL_IN",
	OFPAT_SET_MPLS_LABEL: "SET_MPLS_LABEL",
	OFPAT_SET_MPLS_TC:    "SET_MPLS_TC",
	OFPAT_SET_MPLS_TTL:   "SET_MPLS_TTL",
	OFPAT_DEC_MPLS_TTL:   "DEC_MPLS_TTL",
	OFPAT_PUSH_VLAN:      "PUSH_VLAN",
	OFPAT_POP_VLAN:       "POP_VLAN",
	OFPAT_PUSH_MPLS:      "PUSH_MPLS",
	OFPAT_POP_MPLS:       "POP_MPLS",
	OFPAT_SET_QUEUE:      "SET_QUEUE",
	OFPAT_GROUP:          "GROUP",
	OFPAT_SET_NW_TTL:     "SET_NW_TTL",
	OFPAT_DEC_NW_TTL:     "DEC_NW_TTL",
	OFPAT_EXPERIMENTER:   "EXPERIMENTER",
}

// ActionName returns the name of an action type.
func ActionName(t uint16) string {
	if v, ok := actionNames[t]; ok {
		return v
	}

	return fmt.Sprintf("UNKNOWN(%#x)", t)
}

// ActionOutput is ofp_action_output.
type ActionOutput struct {
	Port uint32
	// MaxLen is the maximum number of bytes to send when Port is OFPP_CONTROLLER.
	MaxLen uint16
}

func NewActionOutput(port uint32, maxLen uint16) *ActionOutput {
	return &ActionOutput{Port: port, MaxLen: maxLen}
}

func (r *ActionOutput) Len() int {
	return 16
}

func (r *ActionOutput) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, OFPAT_OUTPUT, r.Len())
	binary.BigEndian.PutUint32(v[4:8], r.Port)
	binary.BigEndian.PutUint16(v[8:10], r.MaxLen)
	// v[10:16] is padding

	return v, nil
}

func (r *ActionOutput) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("output action", data, r.Len()); err != nil {
		return err
	}
	r.Port = binary.BigEndian.Uint32(data[4:8])
	r.MaxLen = binary.BigEndian.Uint16(data[8:10])

	return nil
}

// ActionHeader is an action that has no argument: copy_ttl_out, copy_ttl_in,
// dec_mpls_ttl, pop_vlan and dec_nw_ttl.
type ActionHeader struct {
	Type uint16
}

func newActionHeader(t uint16) func() openflow.Entry {
	return func() openflow.Entry { return &ActionHeader{Type: t} }
}

func NewActionHeader(t uint16) *ActionHeader {
	return &ActionHeader{Type: t}
}

func (r *ActionHeader) Len() int {
	return 8
}

func (r *ActionHeader) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, r.Type, r.Len())

	return v, nil
}

func (r *ActionHeader) Unpack(d *openflow.Decoder, data []byte) error {
	return checkLen(ActionName(r.Type), data, r.Len())
}

// ActionUint8 is an action whose argument is one byte followed by padding:
// set_vlan_pcp, set_nw_tos, set_nw_ecn, set_mpls_tc, set_mpls_ttl and set_nw_ttl.
type ActionUint8 struct {
	Type  uint16
	Value uint8
}

func newActionUint8(t uint16) func() openflow.Entry {
	return func() openflow.Entry { return &ActionUint8{Type: t} }
}

func NewActionUint8(t uint16, value uint8) *ActionUint8 {
	return &ActionUint8{Type: t, Value: value}
}

func (r *ActionUint8) Len() int {
	return 8
}

func (r *ActionUint8) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, r.Type, r.Len())
	v[4] = r.Value

	return v, nil
}

func (r *ActionUint8) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen(ActionName(r.Type), data, r.Len()); err != nil {
		return err
	}
	r.Value = data[4]

	return nil
}

// ActionUint16 is an action whose argument is a 16-bit value followed by
// padding: set_vlan_vid, set_tp_src, set_tp_dst, push_vlan, push_mpls and
// pop_mpls. The push and pop actions carry an ethertype.
type ActionUint16 struct {
	Type  uint16
	Value uint16
}

func newActionUint16(t uint16) func() openflow.Entry {
	return func() openflow.Entry { return &ActionUint16{Type: t} }
}

func NewActionUint16(t uint16, value uint16) *ActionUint16 {
	return &ActionUint16{Type: t, Value: value}
}

func (r *ActionUint16) Len() int {
	return 8
}

func (r *ActionUint16) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, r.Type, r.Len())
	binary.BigEndian.PutUint16(v[4:6], r.Value)

	return v, nil
}

func (r *ActionUint16) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen(ActionName(r.Type), data, r.Len()); err != nil {
		return err
	}
	r.Value = binary.BigEndian.Uint16(data[4:6])

	return nil
}

// ActionUint32 is an action whose argument is a 32-bit value: set_mpls_label,
// set_queue and group.
type ActionUint32 struct {
	Type  uint16
	Value uint32
}

func newActionUint32(t uint16) func() openflow.Entry {
	return func() openflow.Entry { return &ActionUint32{Type: t} }
}

func NewActionUint32(t uint16, value uint32) *ActionUint32 {
	return &ActionUint32{Type: t, Value: value}
}

// NewActionGroup returns an action that applies the group.
func NewActionGroup(groupID uint32) *ActionUint32 {
	return NewActionUint32(OFPAT_GROUP, groupID)
}

func (r *ActionUint32) Len() int {
	return 8
}

func (r *ActionUint32) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, r.Type, r.Len())
	binary.BigEndian.PutUint32(v[4:8], r.Value)

	return v, nil
}

func (r *ActionUint32) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen(ActionName(r.Type), data, r.Len()); err != nil {
		return err
	}
	r.Value = binary.BigEndian.Uint32(data[4:8])

	return nil
}

// ActionSetDLAddr is ofp_action_dl_addr: set_dl_src and set_dl_dst.
type ActionSetDLAddr struct {
	Type uint16
	Addr net.HardwareAddr
}

func newActionSetDLAddr(t uint16) func() openflow.Entry {
	return func() openflow.Entry { return &ActionSetDLAddr{Type: t} }
}

func NewActionSetDLAddr(t uint16, addr net.HardwareAddr) *ActionSetDLAddr {
	return &ActionSetDLAddr{Type: t, Addr: addr}
}

func (r *ActionSetDLAddr) Len() int {
	return 16
}

func (r *ActionSetDLAddr) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, r.Type, r.Len())
	if err := putMAC(v[4:10], r.Addr); err != nil {
		return nil, err
	}
	// v[10:16] is padding

	return v, nil
}

func (r *ActionSetDLAddr) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen(ActionName(r.Type), data, r.Len()); err != nil {
		return err
	}
	r.Addr = getMAC(data[4:10])

	return nil
}

// ActionSetNWAddr is ofp_action_nw_addr: set_nw_src and set_nw_dst.
type ActionSetNWAddr struct {
	Type uint16
	Addr net.IP
}

func newActionSetNWAddr(t uint16) func() openflow.Entry {
	return func() openflow.Entry { return &ActionSetNWAddr{Type: t} }
}

func NewActionSetNWAddr(t uint16, addr net.IP) *ActionSetNWAddr {
	return &ActionSetNWAddr{Type: t, Addr: addr}
}

func (r *ActionSetNWAddr) Len() int {
	return 8
}

func (r *ActionSetNWAddr) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, r.Type, r.Len())
	if err := putIPv4(v[4:8], r.Addr); err != nil {
		return nil, err
	}

	return v, nil
}

func (r *ActionSetNWAddr) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen(ActionName(r.Type), data, r.Len()); err != nil {
		return err
	}
	r.Addr = getIPv4(data[4:8])

	return nil
}

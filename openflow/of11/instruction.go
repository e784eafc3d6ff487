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

var InstructionKind = openflow.NewEntryKind("instruction", openflow.TLVHeaderLen, openflow.TLVHeader, map[uint16]func() openflow.Entry{
	OFPIT_GOTO_TABLE:     func() openflow.Entry { return new(InstructionGotoTable) },
	OFPIT_WRITE_METADATA: func() openflow.Entry { return new(InstructionWriteMetadata) },
	OFPIT_WRITE_ACTIONS:  func() openflow.Entry { return &InstructionActions{Type: OFPIT_WRITE_ACTIONS} },
	OFPIT_APPLY_ACTIONS:  func() openflow.Entry { return &InstructionActions{Type: OFPIT_APPLY_ACTIONS} },
	OFPIT_CLEAR_ACTIONS:  func() openflow.Entry { return new(InstructionClearActions) },
	OFPIT_EXPERIMENTER:   func() openflow.Entry { return new(InstructionExperimenter) },
})

type InstructionGotoTable struct {
	TableID uint8
}

func (r *InstructionGotoTable) Len() int {
	return 8
}

func (r *InstructionGotoTable) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, OFPIT_GOTO_TABLE, r.Len())
	v[4] = r.TableID

	return v, nil
}

func (r *InstructionGotoTable) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("goto_table instruction", data, r.Len()); err != nil {
		return err
	}
	r.TableID = data[4]

	return nil
}

type InstructionWriteMetadata struct {
	Metadata uint64
	Mask     uint64
}

func (r *InstructionWriteMetadata) Len() int {
	return 24
}

func (r *InstructionWriteMetadata) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, OFPIT_WRITE_METADATA, r.Len())
	// v[4:8] is padding
	binary.BigEndian.PutUint64(v[8:16], r.Metadata)
	binary.BigEndian.PutUint64(v[16:24], r.Mask)

	return v, nil
}

func (r *InstructionWriteMetadata) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("write_metadata instruction", data, r.Len()); err != nil {
		return err
	}
	r.Metadata = binary.BigEndian.Uint64(data[8:16])
	r.Mask = binary.BigEndian.Uint64(data[16:24])

	return nil
}

// InstructionActions is ofp_instruction_actions: write_actions or apply_actions.
// It owns its action list.
type InstructionActions struct {
	Type    uint16
	Actions []openflow.Entry
}

func NewInstructionApplyActions(actions ...openflow.Entry) *InstructionActions {
	return &InstructionActions{Type: OFPIT_APPLY_ACTIONS, Actions: actions}
}

func NewInstructionWriteActions(actions ...openflow.Entry) *InstructionActions {
	return &InstructionActions{Type: OFPIT_WRITE_ACTIONS, Actions: actions}
}

func (r *InstructionActions) Len() int {
	return 8 + openflow.ListLen(r.Actions)
}

func (r *InstructionActions) MarshalBinary() ([]byte, error) {
	actions, err := openflow.PackList(r.Actions)
	if err != nil {
		return nil, err
	}

	v := make([]byte, 8, 8+len(actions))
	openflow.PutTLVHeader(v, r.Type, 8+len(actions))
	// v[4:8] is padding

	return append(v, actions...), nil
}

func (r *InstructionActions) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("actions instruction", data, 8); err != nil {
		return err
	}
	// A truncated action list is already recorded by the decoder.
	r.Actions, _, _ = d.UnpackList(ActionKind, data[8:], len(data)-8)

	return nil
}

type InstructionClearActions struct{}

func (r *InstructionClearActions) Len() int {
	return 8
}

func (r *InstructionClearActions) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	openflow.PutTLVHeader(v, OFPIT_CLEAR_ACTIONS, r.Len())

	return v, nil
}

func (r *InstructionClearActions) Unpack(d *openflow.Decoder, data []byte) error {
	return checkLen("clear_actions instruction", data, r.Len())
}

// InstructionExperimenter is ofp_instruction_experimenter followed by opaque data.
type InstructionExperimenter struct {
	Experimenter uint32
	Data         []byte
}

func (r *InstructionExperimenter) Len() int {
	return 8 + len(r.Data)
}

func (r *InstructionExperimenter) MarshalBinary() ([]byte, error) {
	v := make([]byte, 8, r.Len())
	openflow.PutTLVHeader(v, OFPIT_EXPERIMENTER, r.Len())
	binary.BigEndian.PutUint32(v[4:8], r.Experimenter)

	return append(v, r.Data...), nil
}

func (r *InstructionExperimenter) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("experimenter instruction", data, 8); err != nil {
		return err
	}
	r.Experimenter = binary.BigEndian.Uint32(data[4:8])
	r.Data = append([]byte(nil), data[8:]...)

	return nil
}

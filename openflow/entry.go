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

package openflow

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"sort"
)

// TLVHeaderLen is the size of the type:u16, length:u16 sub-header shared by
// actions, instructions and queue properties.
const TLVHeaderLen = 4

// Entry is one element of a nested list: an action, an instruction, a bucket,
// a port, a queue, a queue property or a stats entry.
type Entry interface {
	encoding.BinaryMarshaler
	// Len returns the packed size of the entry including its sub-header. Composite
	// entries compute it from the entries they own.
	Len() int
	// Unpack decodes the entry from data, which holds exactly the number of
	// bytes declared by the entry's sub-header.
	Unpack(d *Decoder, data []byte) error
}

// HeaderFunc reads the type code and the total length of the entry that starts
// at data. len(data) is at least the family's MinLen.
type HeaderFunc func(data []byte) (code uint16, length int)

// TLVHeader reads the common type:u16, length:u16 sub-header.
func TLVHeader(data []byte) (uint16, int) {
	return binary.BigEndian.Uint16(data[0:2]), int(binary.BigEndian.Uint16(data[2:4]))
}

// LengthHeader reads a sub-header that starts with length:u16 and has no type code.
func LengthHeader(data []byte) (uint16, int) {
	return 0, int(binary.BigEndian.Uint16(data[0:2]))
}

// FixedHeader returns a HeaderFunc for untyped records of a fixed size.
func FixedHeader(size int) HeaderFunc {
	return func(data []byte) (uint16, int) {
		return 0, size
	}
}

// RestHeader is a HeaderFunc for a single untyped record that owns all remaining bytes.
func RestHeader(data []byte) (uint16, int) {
	return 0, len(data)
}

// PutTLVHeader writes the type:u16, length:u16 sub-header into v.
func PutTLVHeader(v []byte, code uint16, length int) {
	binary.BigEndian.PutUint16(v[0:2], code)
	binary.BigEndian.PutUint16(v[2:4], uint16(length))
}

// EntryKind describes one list family: how its sub-header is read and which
// constructor handles each type code. It is immutable once created.
type EntryKind struct {
	Name   string
	MinLen int
	header HeaderFunc
	ctors  map[uint16]func() Entry
}

func NewEntryKind(name string, minLen int, header HeaderFunc, ctors map[uint16]func() Entry) *EntryKind {
	if minLen <= 0 {
		panic(fmt.Sprintf("%v: minimum entry length should be positive", name))
	}
	if header == nil {
		panic(fmt.Sprintf("%v: nil header function", name))
	}

	m := make(map[uint16]func() Entry, len(ctors))
	for code, f := range ctors {
		if f == nil {
			panic(fmt.Sprintf("%v: nil constructor for type %#x", name, code))
		}
		m[code] = f
	}

	return &EntryKind{
		Name:   name,
		MinLen: minLen,
		header: header,
		ctors:  m,
	}
}

// New returns an empty entry for the type code.
func (r *EntryKind) New(code uint16) (Entry, bool) {
	f, ok := r.ctors[code]
	if !ok {
		return nil, false
	}

	return f(), true
}

// Codes returns the registered type codes in ascending order.
func (r *EntryKind) Codes() []uint16 {
	codes := make([]uint16, 0, len(r.ctors))
	for v := range r.ctors {
		codes = append(codes, v)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	return codes
}

// PackEntry returns the wire form of a single entry.
func PackEntry(e Entry) ([]byte, error) {
	v, err := e.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if len(v) != e.Len() {
		panic(fmt.Sprintf("%T: marshaled %v bytes, but its length is %v", e, len(v), e.Len()))
	}

	return v, nil
}

// UnpackEntry decodes the entry at the start of data. consumed is the number of
// bytes the caller should skip, even when err is an *UnknownEntryError or an
// *EntryLengthError. A *MalformedEntryError means nothing could be consumed.
// All anomalies are recorded in the decoder's diagnostics.
func (r *Decoder) UnpackEntry(kind *EntryKind, data []byte) (e Entry, consumed int, err error) {
	if len(data) < kind.MinLen {
		err := &MalformedEntryError{Family: kind.Name, Length: -1, Available: len(data)}
		r.Report(MalformedEntry, kind.Name, 0, err.Error())
		return nil, 0, err
	}

	code, length := kind.header(data)
	if length < kind.MinLen || length > len(data) {
		err := &MalformedEntryError{Family: kind.Name, Length: length, Available: len(data)}
		r.Report(MalformedEntry, kind.Name, code, err.Error())
		return nil, 0, err
	}

	e, ok := kind.New(code)
	if !ok {
		err := &UnknownEntryError{Family: kind.Name, Code: code, Length: length}
		r.Report(UnknownEntryType, kind.Name, code, fmt.Sprintf("skipping %v bytes", length))
		return nil, length, err
	}
	if err := e.Unpack(r, data[:length]); err != nil {
		err := &EntryLengthError{Family: kind.Name, Code: code, Length: length, Cause: err}
		r.Report(EntryLengthMismatch, kind.Name, code, err.Error())
		return nil, length, err
	}
	if e.Len() != length {
		r.Report(EntryLengthMismatch, kind.Name, code, fmt.Sprintf("declared length=%v, decoded length=%v", length, e.Len()))
	}

	return e, length, nil
}

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
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// testLeaf is an 8-byte TLV entry of type 1.
type testLeaf struct {
	Value uint32
}

func (r *testLeaf) Len() int {
	return 8
}

func (r *testLeaf) MarshalBinary() ([]byte, error) {
	v := make([]byte, 8)
	PutTLVHeader(v, 1, 8)
	binary.BigEndian.PutUint32(v[4:8], r.Value)

	return v, nil
}

func (r *testLeaf) Unpack(d *Decoder, data []byte) error {
	if len(data) < 8 {
		return ErrShortBody
	}
	r.Value = binary.BigEndian.Uint32(data[4:8])

	return nil
}

// testNest is a TLV entry of type 2 that owns a list of leaves.
type testNest struct {
	Items []Entry
}

func (r *testNest) Len() int {
	return 4 + ListLen(r.Items)
}

func (r *testNest) MarshalBinary() ([]byte, error) {
	items, err := PackList(r.Items)
	if err != nil {
		return nil, err
	}
	v := make([]byte, 4, r.Len())
	PutTLVHeader(v, 2, r.Len())

	return append(v, items...), nil
}

func (r *testNest) Unpack(d *Decoder, data []byte) error {
	r.Items, _, _ = d.UnpackList(testLeafKind, data[4:], len(data)-4)
	return nil
}

var testLeafKind = NewEntryKind("leaf", TLVHeaderLen, TLVHeader, map[uint16]func() Entry{
	1: func() Entry { return new(testLeaf) },
})

var testKind = NewEntryKind("test", TLVHeaderLen, TLVHeader, map[uint16]func() Entry{
	1: func() Entry { return new(testLeaf) },
	2: func() Entry { return new(testNest) },
})

func mustDecodeHex(s string) []byte {
	v, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex sample")
	}

	return v
}

func TestUnpackList(t *testing.T) {
	src := []struct {
		Name       string
		Data       string
		Budget     int
		Expected   []Entry
		Rest       int
		Malformed  bool
		Diagnostic Diagnostics
	}{
		{
			Name:     "two leaves",
			Data:     "000100080000000a" + "000100080000000b",
			Budget:   16,
			Expected: []Entry{&testLeaf{Value: 10}, &testLeaf{Value: 11}},
		},
		{
			Name:      "two leaves and a 2-byte tail",
			Data:      "000100080000000a" + "000100080000000b" + "0001",
			Budget:    18,
			Expected:  []Entry{&testLeaf{Value: 10}, &testLeaf{Value: 11}},
			Rest:      2,
			Malformed: true,
			Diagnostic: Diagnostics{
				Truncated: 1,
			},
		},
		{
			Name:      "entry length shorter than the sub-header",
			Data:      "000100080000000a" + "00010002" + "000100080000000b",
			Budget:    20,
			Expected:  []Entry{&testLeaf{Value: 10}},
			Rest:      12,
			Malformed: true,
			Diagnostic: Diagnostics{
				Truncated: 1,
			},
		},
		{
			Name:     "unknown entry between two leaves",
			Data:     "000100080000000a" + "ffff0008deadbeef" + "000100080000000b",
			Budget:   24,
			Expected: []Entry{&testLeaf{Value: 10}, &testLeaf{Value: 11}},
			Diagnostic: Diagnostics{
				Skipped: 1,
			},
		},
		{
			Name:     "leaf with an unusable length",
			Data:     "00010004" + "000100080000000b",
			Budget:   12,
			Expected: []Entry{&testLeaf{Value: 11}},
			Diagnostic: Diagnostics{
				Mismatched: 1,
			},
		},
		{
			Name:     "leaf longer than its layout",
			Data:     "000100100000000a0000000000000000",
			Budget:   16,
			Expected: []Entry{&testLeaf{Value: 10}},
			Diagnostic: Diagnostics{
				Mismatched: 1,
			},
		},
		{
			Name:     "budget stops before the payload",
			Data:     "000100080000000a" + "cafebabe",
			Budget:   8,
			Expected: []Entry{&testLeaf{Value: 10}},
			Rest:     4,
		},
		{
			Name:     "budget larger than the buffer",
			Data:     "000100080000000a",
			Budget:   16,
			Expected: []Entry{&testLeaf{Value: 10}},
			Diagnostic: Diagnostics{
				Mismatched: 1,
			},
		},
		{
			Name:   "nested list",
			Data:   "00020014" + "000100080000000a" + "000100080000000b" + "000100080000000c",
			Budget: 28,
			Expected: []Entry{
				&testNest{Items: []Entry{&testLeaf{Value: 10}, &testLeaf{Value: 11}}},
				&testLeaf{Value: 12},
			},
		},
		{
			Name:   "empty",
			Data:   "",
			Budget: 0,
		},
	}

	for _, v := range src {
		d := new(Decoder)
		items, rest, err := d.UnpackList(testKind, mustDecodeHex(v.Data), v.Budget)
		if v.Malformed {
			if _, ok := err.(*MalformedEntryError); !ok {
				t.Fatalf("%v: expected MalformedEntryError, but got %v", v.Name, err)
			}
		} else if err != nil {
			t.Fatalf("%v: unexpected error: %v", v.Name, err)
		}
		if !cmp.Equal(items, v.Expected, cmpopts.EquateEmpty()) {
			t.Fatalf("%v: unexpected items: expected=%v, actual=%v, diff=%v", v.Name, spew.Sdump(v.Expected), spew.Sdump(items), cmp.Diff(v.Expected, items, cmpopts.EquateEmpty()))
		}
		if len(rest) != v.Rest {
			t.Fatalf("%v: unexpected rest length: expected=%v, actual=%v", v.Name, v.Rest, len(rest))
		}
		diag := d.Diagnostics
		if diag.Skipped != v.Diagnostic.Skipped || diag.Truncated != v.Diagnostic.Truncated || diag.Mismatched != v.Diagnostic.Mismatched {
			t.Fatalf("%v: unexpected diagnostics: expected=%v, actual=%v", v.Name, v.Diagnostic, diag)
		}
	}
}

func TestPackList(t *testing.T) {
	items := []Entry{
		&testNest{Items: []Entry{&testLeaf{Value: 10}, &testLeaf{Value: 11}}},
		&testLeaf{Value: 12},
	}

	v, err := PackList(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := mustDecodeHex("00020014" + "000100080000000a" + "000100080000000b" + "000100080000000c")
	if !cmp.Equal(v, expected) {
		t.Fatalf("unexpected packed list: expected=%x, actual=%x", expected, v)
	}
	if ListLen(items) != len(expected) {
		t.Fatalf("unexpected list length: expected=%v, actual=%v", len(expected), ListLen(items))
	}

	empty, err := PackList(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("unexpected packed empty list: %x", empty)
	}
}

func TestUnpackEntry(t *testing.T) {
	d := new(Decoder)

	if _, n, err := d.UnpackEntry(testKind, mustDecodeHex("0001")); err == nil || n != 0 {
		t.Fatalf("expected a malformed entry error with nothing consumed: consumed=%v, err=%v", n, err)
	}
	if _, n, err := d.UnpackEntry(testKind, mustDecodeHex("00010010")); err == nil || n != 0 {
		t.Fatalf("expected a malformed entry error for a length beyond the buffer: consumed=%v, err=%v", n, err)
	}

	_, n, err := d.UnpackEntry(testKind, mustDecodeHex("00070008deadbeef"))
	unknown, ok := err.(*UnknownEntryError)
	if !ok {
		t.Fatalf("expected UnknownEntryError, but got %v", err)
	}
	if unknown.Code != 7 || n != 8 {
		t.Fatalf("unexpected unknown entry: code=%v, consumed=%v", unknown.Code, n)
	}

	e, n, err := d.UnpackEntry(testKind, mustDecodeHex("000100080000002a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 || e.(*testLeaf).Value != 42 {
		t.Fatalf("unexpected entry: consumed=%v, entry=%v", n, spew.Sdump(e))
	}

	if len(d.Diagnostics.Events) != 3 {
		t.Fatalf("unexpected diagnostics: %v", d.Diagnostics)
	}
}

func TestNewEntryKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a zero minimum length")
		}
	}()
	NewEntryKind("broken", 0, TLVHeader, nil)
}

func TestEntryKindCodes(t *testing.T) {
	codes := testKind.Codes()
	if !cmp.Equal(codes, []uint16{1, 2}) {
		t.Fatalf("unexpected codes: %v", codes)
	}
	if _, ok := testKind.New(3); ok {
		t.Fatal("unexpected constructor for an unregistered code")
	}
}

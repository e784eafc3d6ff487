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
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

const testVersion = 0x02

type testCore struct {
	Value uint32
}

func (r *testCore) Len() int {
	return 4
}

func (r *testCore) MarshalBinary() ([]byte, error) {
	v := make([]byte, 4)
	binary.BigEndian.PutUint32(v, r.Value)

	return v, nil
}

func (r *testCore) Unpack(d *Decoder, data []byte) (int, error) {
	if len(data) < 4 {
		return 0, ErrShortBody
	}
	r.Value = binary.BigEndian.Uint32(data[0:4])

	return 4, nil
}

type testExplicit struct {
	ItemsLen uint16
}

func (r *testExplicit) Len() int {
	return 4
}

func (r *testExplicit) ListLen() int {
	return int(r.ItemsLen)
}

func (r *testExplicit) SetListLen(length int) {
	r.ItemsLen = uint16(length)
}

func (r *testExplicit) MarshalBinary() ([]byte, error) {
	v := make([]byte, 4)
	binary.BigEndian.PutUint16(v[0:2], r.ItemsLen)

	return v, nil
}

func (r *testExplicit) Unpack(d *Decoder, data []byte) (int, error) {
	if len(data) < 4 {
		return 0, ErrShortBody
	}
	r.ItemsLen = binary.BigEndian.Uint16(data[0:2])

	return 4, nil
}

const (
	testTypeBlob = iota
	testTypeImplicit
	testTypeExplicit
	testTypeEmpty
)

var testCodec = &Codec{
	Version: testVersion,
	Registry: NewRegistry(
		Schema{Type: testTypeBlob, Name: "BLOB", Payload: true},
		Schema{
			Type:    testTypeImplicit,
			Name:    "IMPLICIT",
			NewBody: func() Body { return new(testCore) },
			List:    &ListSpec{Field: "items", Kind: StaticKind(testKind), Delimiter: DelimitImplicit},
		},
		Schema{
			Type:    testTypeExplicit,
			Name:    "EXPLICIT",
			NewBody: func() Body { return new(testExplicit) },
			List:    &ListSpec{Field: "items", Kind: StaticKind(testKind), Delimiter: DelimitExplicit},
			Payload: true,
		},
		Schema{Type: testTypeEmpty, Name: "EMPTY"},
	),
}

func TestCodecRoundTrip(t *testing.T) {
	src := []*Message{
		{
			Header:  Header{Type: testTypeBlob, XID: 1},
			Payload: []byte("hello"),
		},
		{
			Header: Header{Type: testTypeBlob, XID: 2},
		},
		{
			Header: Header{Type: testTypeImplicit, XID: 3},
			Body:   &testCore{Value: 0xcafe},
			List: []Entry{
				&testLeaf{Value: 1},
				&testNest{Items: []Entry{&testLeaf{Value: 2}, &testLeaf{Value: 3}}},
			},
		},
		{
			Header: Header{Type: testTypeExplicit, XID: 4},
			Body:   &testExplicit{},
			List:   []Entry{&testLeaf{Value: 1}},
			// Looks like a leaf, but belongs to the payload.
			Payload: []byte{0x00, 0x01, 0x00, 0x08, 0x00, 0x00, 0x00, 0x02},
		},
		{
			Header: Header{Type: testTypeEmpty, XID: 5},
		},
	}

	for _, v := range src {
		packed, err := testCodec.Pack(v)
		if err != nil {
			t.Fatalf("unexpected pack error: %v", err)
		}
		if int(binary.BigEndian.Uint16(packed[2:4])) != len(packed) {
			t.Fatalf("unexpected length field: expected=%v, actual=%v", len(packed), binary.BigEndian.Uint16(packed[2:4]))
		}
		length, err := testCodec.Len(v)
		if err != nil {
			t.Fatalf("unexpected length error: %v", err)
		}
		if length != len(packed) {
			t.Fatalf("unexpected computed length: expected=%v, actual=%v", len(packed), length)
		}
		if packed[0] != testVersion {
			t.Fatalf("unexpected version: %v", packed[0])
		}

		msg, diag, err := testCodec.Unpack(packed)
		if err != nil {
			t.Fatalf("unexpected unpack error: %v", err)
		}
		if !diag.Clean() {
			t.Fatalf("unexpected diagnostics: %v", diag)
		}
		if !cmp.Equal(v, msg, cmpopts.EquateEmpty()) {
			t.Fatalf("unexpected message: expected=%v, actual=%v, diff=%v", spew.Sdump(v), spew.Sdump(msg), cmp.Diff(v, msg, cmpopts.EquateEmpty()))
		}
		if !testCodec.Equal(v, msg) {
			t.Fatalf("expected equal messages: %v, %v", testCodec.String(v), testCodec.String(msg))
		}
	}
}

func TestCodecExplicitList(t *testing.T) {
	// EXPLICIT, list length 8, one leaf and a 4-byte payload.
	data := mustDecodeHex("0202001800000007" + "00080000" + "000100080000000a" + "deadbeef")
	msg, diag, err := testCodec.Unpack(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.Clean() {
		t.Fatalf("unexpected diagnostics: %v", diag)
	}
	if len(msg.List) != 1 || msg.List[0].(*testLeaf).Value != 10 {
		t.Fatalf("unexpected list: %v", spew.Sdump(msg.List))
	}
	if !bytes.Equal(msg.Payload, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("unexpected payload: %x", msg.Payload)
	}

	// The list stops early, but the payload still starts at the declared end of the list.
	data = mustDecodeHex("0202001800000007" + "000a0000" + "000100080000000a" + "0001" + "beef")
	msg, diag, err = testCodec.Unpack(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Truncated != 1 {
		t.Fatalf("unexpected diagnostics: %v", diag)
	}
	if len(msg.List) != 1 || !bytes.Equal(msg.Payload, []byte{0xbe, 0xef}) {
		t.Fatalf("unexpected message: %v", spew.Sdump(msg))
	}
}

func TestCodecPackWritesListLength(t *testing.T) {
	body := &testExplicit{ItemsLen: 100}
	msg := &Message{
		Header:  Header{Type: testTypeExplicit},
		Body:    body,
		List:    []Entry{&testLeaf{Value: 1}, &testLeaf{Value: 2}},
		Payload: []byte{0x01},
	}
	packed, err := testCodec.Pack(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.ItemsLen != 16 || binary.BigEndian.Uint16(packed[8:10]) != 16 {
		t.Fatalf("unexpected list length: body=%v, packed=%x", body.ItemsLen, packed)
	}
	if msg.Header.Length != 29 {
		t.Fatalf("unexpected header length: %v", msg.Header.Length)
	}
}

func TestCodecTolerantParsing(t *testing.T) {
	src := []struct {
		Name     string
		Data     string
		Items    int
		Expected Diagnostics
	}{
		{
			Name:     "extra data after a header-only message",
			Data:     "0203000c00000001" + "cafebabe",
			Expected: Diagnostics{Mismatched: 1},
		},
		{
			Name:     "truncated implicit list",
			Data:     "0201001600000001" + "00000001" + "000100080000000a" + "0001",
			Items:    1,
			Expected: Diagnostics{Truncated: 1, Mismatched: 1},
		},
		{
			Name:     "unknown entry in an implicit list",
			Data:     "0201001c00000001" + "00000001" + "ffff0008deadbeef" + "000100080000000a",
			Items:    1,
			Expected: Diagnostics{Skipped: 1},
		},
		{
			Name:     "explicit list longer than the message",
			Data:     "0202001400000001" + "00100000" + "000100080000000a",
			Items:    1,
			Expected: Diagnostics{Mismatched: 1},
		},
	}

	for _, v := range src {
		msg, diag, err := testCodec.Unpack(mustDecodeHex(v.Data))
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", v.Name, err)
		}
		if len(msg.List) != v.Items {
			t.Fatalf("%v: unexpected number of items: expected=%v, actual=%v", v.Name, v.Items, len(msg.List))
		}
		if diag.Skipped != v.Expected.Skipped || diag.Truncated != v.Expected.Truncated || diag.Mismatched != v.Expected.Mismatched {
			t.Fatalf("%v: unexpected diagnostics: expected=%v, actual=%v", v.Name, v.Expected, diag)
		}
	}
}

func TestCodecUnpackErrors(t *testing.T) {
	src := []struct {
		Name  string
		Data  string
		Check func(error) bool
	}{
		{
			Name:  "short header",
			Data:  "02000008",
			Check: func(err error) bool { return errors.Cause(err) == ErrInvalidPacketLength },
		},
		{
			Name:  "length field shorter than the header",
			Data:  "0200000400000001",
			Check: func(err error) bool { return errors.Cause(err) == ErrInvalidPacketLength },
		},
		{
			Name:  "length field longer than the buffer",
			Data:  "0200001000000001",
			Check: func(err error) bool { return errors.Cause(err) == ErrInvalidPacketLength },
		},
		{
			Name:  "version mismatch",
			Data:  "0100000800000001",
			Check: func(err error) bool { return errors.Cause(err) == ErrUnsupportedVersion },
		},
		{
			Name: "unsupported message type",
			Data: "0263000800000001",
			Check: func(err error) bool {
				e, ok := errors.Cause(err).(*UnsupportedMessageTypeError)
				return ok && e.Type == 0x63
			},
		},
		{
			Name:  "short core body",
			Data:  "0201000a00000001" + "0000",
			Check: func(err error) bool { return errors.Cause(err) == ErrShortBody },
		},
	}

	for _, v := range src {
		_, _, err := testCodec.Unpack(mustDecodeHex(v.Data))
		if err == nil {
			t.Fatalf("%v: expected error, but no error returns", v.Name)
		}
		if !v.Check(err) {
			t.Fatalf("%v: unexpected error: %v", v.Name, err)
		}
	}
}

func TestCodecPackErrors(t *testing.T) {
	src := []struct {
		Name     string
		Message  *Message
		Expected error
	}{
		{
			Name:     "body on a header-only message",
			Message:  &Message{Header: Header{Type: testTypeEmpty}, Body: &testCore{}},
			Expected: ErrSchemaMismatch,
		},
		{
			Name:     "missing body",
			Message:  &Message{Header: Header{Type: testTypeImplicit}},
			Expected: ErrSchemaMismatch,
		},
		{
			Name:     "wrong body type",
			Message:  &Message{Header: Header{Type: testTypeImplicit}, Body: &testExplicit{}},
			Expected: ErrSchemaMismatch,
		},
		{
			Name:     "list on a list-less message",
			Message:  &Message{Header: Header{Type: testTypeBlob}, List: []Entry{&testLeaf{}}},
			Expected: ErrSchemaMismatch,
		},
		{
			Name:     "payload on a payload-less message",
			Message:  &Message{Header: Header{Type: testTypeEmpty}, Payload: []byte{0x01}},
			Expected: ErrSchemaMismatch,
		},
		{
			Name:     "too large",
			Message:  &Message{Header: Header{Type: testTypeBlob}, Payload: make([]byte, MaxMessageLen)},
			Expected: ErrMessageTooLarge,
		},
	}

	for _, v := range src {
		_, err := testCodec.Pack(v.Message)
		if errors.Cause(err) != v.Expected {
			t.Fatalf("%v: unexpected error: expected=%v, actual=%v", v.Name, v.Expected, err)
		}
	}

	_, err := testCodec.Pack(&Message{Header: Header{Type: 0x63}})
	if _, ok := err.(*UnsupportedMessageTypeError); !ok {
		t.Fatalf("expected UnsupportedMessageTypeError, but got %v", err)
	}
}

func TestCodecEqual(t *testing.T) {
	a := &Message{Header: Header{Type: testTypeImplicit, XID: 1}, Body: &testCore{Value: 1}, List: []Entry{&testLeaf{Value: 1}}}
	b := &Message{Header: Header{Type: testTypeImplicit, XID: 1}, Body: &testCore{Value: 1}, List: []Entry{&testLeaf{Value: 1}}}
	c := &Message{Header: Header{Type: testTypeImplicit, XID: 1}, Body: &testCore{Value: 1}, List: []Entry{&testLeaf{Value: 2}}}
	d := &Message{Header: Header{Type: testTypeImplicit, XID: 2}, Body: &testCore{Value: 1}, List: []Entry{&testLeaf{Value: 1}}}

	if !testCodec.Equal(a, b) {
		t.Fatal("expected equal messages")
	}
	if testCodec.Equal(a, c) {
		t.Fatal("expected different lists")
	}
	if testCodec.Equal(a, d) {
		t.Fatal("expected different transaction IDs")
	}
	if testCodec.Equal(a, nil) || !testCodec.Equal(nil, nil) {
		t.Fatal("unexpected nil comparison")
	}

	// Comparing leaves the header and the list length of both messages as they are.
	e := &Message{Header: Header{Type: testTypeExplicit, XID: 3}, Body: &testExplicit{ItemsLen: 20}, List: []Entry{&testLeaf{Value: 1}}}
	if !testCodec.Equal(e, e) {
		t.Fatal("expected equal messages")
	}
	if e.Body.(*testExplicit).ItemsLen != 20 {
		t.Fatalf("unexpected list length: expected=%v, actual=%v", 20, e.Body.(*testExplicit).ItemsLen)
	}
	if e.Header.Length != 0 || e.Header.Version != 0 {
		t.Fatalf("unexpected header: %v", e.Header)
	}
}

func TestNewRegistry(t *testing.T) {
	src := []struct {
		Name    string
		Schemas []Schema
	}{
		{
			Name:    "duplicated type",
			Schemas: []Schema{{Type: 1, Name: "A"}, {Type: 1, Name: "B"}},
		},
		{
			Name: "implicit list followed by a payload",
			Schemas: []Schema{{
				Type:    1,
				Name:    "A",
				NewBody: func() Body { return new(testCore) },
				List:    &ListSpec{Field: "items", Kind: StaticKind(testKind), Delimiter: DelimitImplicit},
				Payload: true,
			}},
		},
		{
			Name: "explicit list without a length field",
			Schemas: []Schema{{
				Type:    1,
				Name:    "A",
				NewBody: func() Body { return new(testCore) },
				List:    &ListSpec{Field: "items", Kind: StaticKind(testKind), Delimiter: DelimitExplicit},
			}},
		},
	}

	for _, v := range src {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%v: expected panic", v.Name)
				}
			}()
			NewRegistry(v.Schemas...)
		}()
	}

	types := testCodec.Registry.Types()
	if !cmp.Equal(types, []uint8{testTypeBlob, testTypeImplicit, testTypeExplicit, testTypeEmpty}) {
		t.Fatalf("unexpected types: %v", types)
	}
	if testCodec.Registry.Name(testTypeExplicit) != "EXPLICIT" {
		t.Fatalf("unexpected name: %v", testCodec.Registry.Name(testTypeExplicit))
	}
}

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
	"encoding"
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Body is the fixed core part of a message body.
type Body interface {
	encoding.BinaryMarshaler
	// Len returns the packed size of the core fields.
	Len() int
	// Unpack decodes the core fields from the start of data, which holds
	// everything after the message header, and returns the number of bytes used.
	Unpack(d *Decoder, data []byte) (int, error)
}

// ListLengther is implemented by core bodies that carry the byte length of
// their nested list in a dedicated field.
type ListLengther interface {
	ListLen() int
	SetListLen(length int)
}

// Message is a decoded OpenFlow message. A message owns its body, its list
// entries and its payload.
type Message struct {
	Header  Header
	Body    Body
	List    []Entry
	Payload []byte
}

// Codec packs and unpacks messages of one protocol version using a registry.
// A Codec holds no mutable state and is safe for concurrent use.
type Codec struct {
	Version  uint8
	Registry *Registry
}

func (r *Codec) schema(msg *Message) (Schema, error) {
	schema, ok := r.Registry.Lookup(msg.Header.Type)
	if !ok {
		return Schema{}, &UnsupportedMessageTypeError{Version: r.Version, Type: msg.Header.Type}
	}

	if schema.NewBody == nil {
		if msg.Body != nil {
			return Schema{}, errors.Wrapf(ErrSchemaMismatch, "%v: header-only message has a body", schema.Name)
		}
	} else {
		if msg.Body == nil {
			return Schema{}, errors.Wrapf(ErrSchemaMismatch, "%v: missing body", schema.Name)
		}
		if expected := reflect.TypeOf(schema.NewBody()); reflect.TypeOf(msg.Body) != expected {
			return Schema{}, errors.Wrapf(ErrSchemaMismatch, "%v: body type %T, expected %v", schema.Name, msg.Body, expected)
		}
	}
	if schema.List == nil && len(msg.List) > 0 {
		return Schema{}, errors.Wrapf(ErrSchemaMismatch, "%v: message does not carry a list", schema.Name)
	}
	if !schema.Payload && len(msg.Payload) > 0 {
		return Schema{}, errors.Wrapf(ErrSchemaMismatch, "%v: message does not carry a payload", schema.Name)
	}

	return schema, nil
}

// Len returns the packed size of msg including its header.
func (r *Codec) Len(msg *Message) (int, error) {
	if _, err := r.schema(msg); err != nil {
		return 0, err
	}

	length := HeaderLen + ListLen(msg.List) + len(msg.Payload)
	if msg.Body != nil {
		length += msg.Body.Len()
	}

	return length, nil
}

// Pack returns the wire form of msg. It writes the computed length, and the
// codec version if msg has none, into msg.Header. For an explicitly delimited
// list the list length field of the body is updated before the body is packed.
func (r *Codec) Pack(msg *Message) ([]byte, error) {
	schema, err := r.schema(msg)
	if err != nil {
		return nil, err
	}

	var list []byte
	if schema.List != nil {
		list, err = PackList(msg.List)
		if err != nil {
			return nil, errors.Wrapf(err, "packing %v %v", schema.Name, schema.List.Field)
		}
		if schema.List.Delimiter == DelimitExplicit {
			msg.Body.(ListLengther).SetListLen(len(list))
		}
	}

	var core []byte
	if msg.Body != nil {
		core, err = msg.Body.MarshalBinary()
		if err != nil {
			return nil, errors.Wrapf(err, "packing %v", schema.Name)
		}
		if len(core) != msg.Body.Len() {
			panic(fmt.Sprintf("%v: marshaled %v bytes, but its body length is %v", schema.Name, len(core), msg.Body.Len()))
		}
	}

	length := HeaderLen + len(core) + len(list) + len(msg.Payload)
	if length > MaxMessageLen {
		return nil, errors.Wrapf(ErrMessageTooLarge, "%v: length=%v", schema.Name, length)
	}
	if msg.Header.Version == 0 {
		msg.Header.Version = r.Version
	}
	msg.Header.Length = uint16(length)

	v := make([]byte, HeaderLen, length)
	msg.Header.marshalTo(v)
	v = append(v, core...)
	v = append(v, list...)
	v = append(v, msg.Payload...)

	return v, nil
}

// Unpack decodes one message from data, which should start with the header and
// hold at least header.Length bytes. Recoverable anomalies found in nested lists
// or in the message framing are returned as diagnostics with a best-effort message.
func (r *Codec) Unpack(data []byte) (*Message, Diagnostics, error) {
	d := new(Decoder)

	header := Header{}
	if err := header.UnmarshalBinary(data); err != nil {
		return nil, d.Diagnostics, err
	}
	if int(header.Length) > len(data) {
		return nil, d.Diagnostics, ErrInvalidPacketLength
	}
	if header.Version != r.Version {
		return nil, d.Diagnostics, errors.Wrapf(ErrUnsupportedVersion, "version=%#x", header.Version)
	}
	schema, ok := r.Registry.Lookup(header.Type)
	if !ok {
		return nil, d.Diagnostics, &UnsupportedMessageTypeError{Version: header.Version, Type: header.Type}
	}

	body := data[HeaderLen:header.Length]
	msg := &Message{Header: header}
	offset := 0

	if schema.NewBody != nil {
		msg.Body = schema.NewBody()
		n, err := msg.Body.Unpack(d, body)
		if err != nil {
			return nil, d.Diagnostics, errors.Wrapf(err, "unpacking %v", schema.Name)
		}
		offset = n
	}

	if schema.List != nil {
		offset = r.unpackList(d, schema, msg, body, offset)
	}

	if schema.Payload {
		msg.Payload = make([]byte, len(body)-offset)
		copy(msg.Payload, body[offset:])
		offset = len(body)
	}

	if offset != len(body) {
		d.Report(TrailingDataMismatch, schema.Name, uint16(header.Type), fmt.Sprintf("extra data: %v bytes", len(body)-offset))
	}

	return msg, d.Diagnostics, nil
}

// unpackList decodes the nested list that starts at offset and returns the
// offset of the first byte after it.
func (r *Codec) unpackList(d *Decoder, schema Schema, msg *Message, body []byte, offset int) int {
	remain := body[offset:]
	budget := len(remain)
	if schema.List.Delimiter == DelimitExplicit {
		budget = msg.Body.(ListLengther).ListLen()
	}

	kind := schema.List.Kind(msg.Body)
	if kind == nil {
		if budget > len(remain) {
			budget = len(remain)
		}
		d.Report(UnknownEntryType, schema.List.Field, uint16(schema.Type), fmt.Sprintf("no entry family for the list: skipping %v bytes", budget))
		return offset + budget
	}

	items, rest, _ := d.UnpackList(kind, remain, budget)
	msg.List = items

	if schema.List.Delimiter == DelimitExplicit {
		if budget > len(remain) {
			budget = len(remain)
		}
		// The payload starts at the declared end of the list.
		return offset + budget
	}

	return offset + len(remain) - len(rest)
}

// Equal reports whether a and b have the same version, type and transaction
// ID and pack to the same bytes.
func (r *Codec) Equal(a, b *Message) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Header.Type != b.Header.Type || a.Header.XID != b.Header.XID {
		return false
	}
	if r.version(a) != r.version(b) {
		return false
	}

	// Pack writes into the header and the list length field of the body, so
	// pack copies of the messages.
	x, err := r.Pack(packCopy(a))
	if err != nil {
		return false
	}
	y, err := r.Pack(packCopy(b))
	if err != nil {
		return false
	}

	return bytes.Equal(x, y)
}

func (r *Codec) version(msg *Message) uint8 {
	if msg.Header.Version == 0 {
		return r.Version
	}

	return msg.Header.Version
}

// packCopy returns a copy of msg that Pack can modify without touching msg.
// List entries and the payload are shared since Pack only reads them.
func packCopy(msg *Message) *Message {
	c := *msg
	if msg.Body != nil {
		c.Body = cloneBody(msg.Body)
	}

	return &c
}

// cloneBody copies the value that a pointer body points to. Other bodies are
// values already.
func cloneBody(body Body) Body {
	v := reflect.ValueOf(body)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return body
	}
	c := reflect.New(v.Elem().Type())
	c.Elem().Set(v.Elem())

	return c.Interface().(Body)
}

// String returns a human readable summary of msg.
func (r *Codec) String(msg *Message) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%v: %v", r.Registry.Name(msg.Header.Type), msg.Header)
	if msg.Body != nil {
		fmt.Fprintf(&buf, ", body=%+v", msg.Body)
	}
	if schema, ok := r.Registry.Lookup(msg.Header.Type); ok && schema.List != nil {
		fmt.Fprintf(&buf, ", %v=[", schema.List.Field)
		for i, v := range msg.List {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "%T%+v", v, v)
		}
		buf.WriteString("]")
	}
	if len(msg.Payload) > 0 {
		fmt.Fprintf(&buf, ", payload=%v bytes", len(msg.Payload))
	}

	return buf.String()
}

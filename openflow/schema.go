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
	"fmt"
	"sort"
)

// Delimiter decides how the byte extent of a nested list is found.
type Delimiter uint8

const (
	// DelimitImplicit: the list runs from the end of the core fields to the end of the message.
	DelimitImplicit Delimiter = iota
	// DelimitExplicit: a core field states the list size; a raw payload may follow the list.
	DelimitExplicit
)

func (r Delimiter) String() string {
	switch r {
	case DelimitImplicit:
		return "implicit"
	case DelimitExplicit:
		return "explicit"
	default:
		return fmt.Sprintf("Delimiter(%v)", uint8(r))
	}
}

// ListSpec describes the nested list of a message.
type ListSpec struct {
	// Field is the list name used in diagnostics and String output.
	Field string
	// Kind returns the entry family of the list. It receives the decoded core
	// body so that envelopes such as the stats reply can select the family from
	// their own fields. It returns nil if no family applies.
	Kind      func(Body) *EntryKind
	Delimiter Delimiter
}

// StaticKind returns a ListSpec.Kind function that always selects kind.
func StaticKind(kind *EntryKind) func(Body) *EntryKind {
	return func(Body) *EntryKind {
		return kind
	}
}

// Schema describes the body layout of one message type.
type Schema struct {
	Type uint8
	Name string
	// NewBody returns an empty core body. It is nil for header-only messages.
	NewBody func() Body
	// List is nil if the message carries no nested list.
	List *ListSpec
	// Payload is true if the message ends with an opaque byte blob.
	Payload bool
}

// Registry maps message types to their schema. It is immutable after NewRegistry
// returns and safe for concurrent use.
type Registry struct {
	schemas map[uint8]Schema
}

// NewRegistry builds a registry. Inconsistent schemas are programming errors
// and cause a panic.
func NewRegistry(schemas ...Schema) *Registry {
	m := make(map[uint8]Schema, len(schemas))
	for _, v := range schemas {
		if _, ok := m[v.Type]; ok {
			panic(fmt.Sprintf("duplicated schema for message type %v", v.Type))
		}
		if v.List != nil {
			if v.List.Kind == nil {
				panic(fmt.Sprintf("%v: nil list kind function", v.Name))
			}
			switch v.List.Delimiter {
			case DelimitImplicit:
				if v.Payload {
					panic(fmt.Sprintf("%v: an implicit list cannot be followed by a payload", v.Name))
				}
			case DelimitExplicit:
				if v.NewBody == nil {
					panic(fmt.Sprintf("%v: an explicit list needs a core body", v.Name))
				}
				if _, ok := v.NewBody().(ListLengther); !ok {
					panic(fmt.Sprintf("%v: core body does not carry the list length", v.Name))
				}
			default:
				panic(fmt.Sprintf("%v: unknown delimiter %v", v.Name, v.List.Delimiter))
			}
		}
		m[v.Type] = v
	}

	return &Registry{schemas: m}
}

func (r *Registry) Lookup(msgType uint8) (Schema, bool) {
	v, ok := r.schemas[msgType]
	return v, ok
}

// Name returns the message name, or a numeric placeholder for an unregistered type.
func (r *Registry) Name(msgType uint8) string {
	v, ok := r.schemas[msgType]
	if !ok {
		return fmt.Sprintf("UNKNOWN(%v)", msgType)
	}

	return v.Name
}

// Types returns the registered message types in ascending order.
func (r *Registry) Types() []uint8 {
	types := make([]uint8, 0, len(r.schemas))
	for v := range r.schemas {
		types = append(types, v)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

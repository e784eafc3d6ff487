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
	"errors"
	"fmt"
)

var (
	ErrInvalidPacketLength = errors.New("invalid packet length")
	ErrUnsupportedVersion  = errors.New("unsupported OpenFlow version")
	ErrShortBody           = errors.New("message body is shorter than its fixed fields")
	ErrMessageTooLarge     = errors.New("message exceeds the maximum OpenFlow message length")
	ErrSchemaMismatch      = errors.New("message does not match its schema")
)

// UnsupportedMessageTypeError is returned when the registry has no schema for the message type.
type UnsupportedMessageTypeError struct {
	Version uint8
	Type    uint8
}

func (r *UnsupportedMessageTypeError) Error() string {
	return fmt.Sprintf("unsupported message type: version=%#x, type=%v", r.Version, r.Type)
}

// MalformedEntryError means an entry sub-header cannot describe itself. It stops
// the list that contains the entry.
type MalformedEntryError struct {
	Family    string
	Length    int
	Available int
}

func (r *MalformedEntryError) Error() string {
	if r.Length < 0 {
		return fmt.Sprintf("malformed %v entry: only %v bytes left for the sub-header", r.Family, r.Available)
	}
	return fmt.Sprintf("malformed %v entry: declared length=%v, available=%v", r.Family, r.Length, r.Available)
}

// UnknownEntryError means the entry type code is not registered for its family.
// The entry is skipped.
type UnknownEntryError struct {
	Family string
	Code   uint16
	Length int
}

func (r *UnknownEntryError) Error() string {
	return fmt.Sprintf("unknown %v entry: type=%#x, length=%v", r.Family, r.Code, r.Length)
}

// EntryLengthError means the declared entry length cannot hold the layout of its
// type. The entry is skipped.
type EntryLengthError struct {
	Family string
	Code   uint16
	Length int
	Cause  error
}

func (r *EntryLengthError) Error() string {
	return fmt.Sprintf("invalid %v entry: type=%#x, length=%v: %v", r.Family, r.Code, r.Length, r.Cause)
}

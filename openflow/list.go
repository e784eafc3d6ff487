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
)

// ListLen returns the packed size of items.
func ListLen(items []Entry) int {
	length := 0
	for _, v := range items {
		length += v.Len()
	}

	return length
}

// PackList concatenates the wire form of items in their order.
func PackList(items []Entry) ([]byte, error) {
	result := make([]byte, 0, ListLen(items))
	for _, v := range items {
		e, err := PackEntry(v)
		if err != nil {
			return nil, err
		}
		result = append(result, e...)
	}

	return result, nil
}

// UnpackList decodes entries of the kind from the first budget bytes of data.
// Unknown entries are skipped. A malformed entry stops the loop: the entries
// decoded so far are returned together with the unconsumed bytes and the
// *MalformedEntryError, which the caller should treat as a truncation notice
// rather than a failure. rest always starts right after the last consumed entry.
func (r *Decoder) UnpackList(kind *EntryKind, data []byte, budget int) (items []Entry, rest []byte, err error) {
	if budget < 0 {
		budget = 0
	}
	if budget > len(data) {
		r.Report(TrailingDataMismatch, kind.Name, 0, fmt.Sprintf("list length %v exceeds the %v available bytes", budget, len(data)))
		budget = len(data)
	}

	buf := data[:budget]
	consumed := 0
	for consumed < budget {
		e, n, err := r.UnpackEntry(kind, buf[consumed:])
		if err != nil {
			if _, ok := err.(*MalformedEntryError); ok {
				return items, data[consumed:], err
			}
			// Skip the unknown or unusable entry.
			consumed += n
			continue
		}
		items = append(items, e)
		consumed += n
	}

	return items, data[consumed:], nil
}

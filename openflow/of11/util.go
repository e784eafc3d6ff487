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
	"fmt"

	"github.com/TrafficLab/oftest11/openflow"
)

func shortError(name string, expected, actual int) error {
	return fmt.Errorf("%v: %w: expected=%v, actual=%v", name, openflow.ErrShortBody, expected, actual)
}

func checkLen(name string, data []byte, expected int) error {
	if len(data) < expected {
		return shortError(name, expected, len(data))
	}

	return nil
}

// putString copies s into a NUL padded field of the size of v.
func putString(v []byte, s string) {
	n := copy(v, s)
	for i := n; i < len(v); i++ {
		v[i] = 0
	}
}

// getString returns the string stored in a NUL padded field.
func getString(v []byte) string {
	for i, c := range v {
		if c == 0 {
			return string(v[:i])
		}
	}

	return string(v)
}

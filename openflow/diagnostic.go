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
	"fmt"

	"github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("openflow")
)

type DiagnosticKind uint8

const (
	// MalformedEntry: an entry sub-header is too short to describe itself. The list stops there.
	MalformedEntry DiagnosticKind = iota
	// UnknownEntryType: an entry carries an unregistered type code. The entry is skipped.
	UnknownEntryType
	// EntryLengthMismatch: the declared entry length disagrees with the decoded entry.
	EntryLengthMismatch
	// TrailingDataMismatch: a declared message or list length disagrees with the consumed bytes.
	TrailingDataMismatch
)

func (r DiagnosticKind) String() string {
	switch r {
	case MalformedEntry:
		return "MalformedEntry"
	case UnknownEntryType:
		return "UnknownEntryType"
	case EntryLengthMismatch:
		return "EntryLengthMismatch"
	case TrailingDataMismatch:
		return "TrailingDataMismatch"
	default:
		return fmt.Sprintf("DiagnosticKind(%v)", uint8(r))
	}
}

// Diagnostic is one recoverable anomaly found while decoding.
type Diagnostic struct {
	Kind DiagnosticKind
	// Family is the entry family or the message name the anomaly belongs to.
	Family string
	Code   uint16
	Detail string
}

func (r Diagnostic) String() string {
	return fmt.Sprintf("%v: %v (code=%#x): %v", r.Kind, r.Family, r.Code, r.Detail)
}

// Diagnostics collects the recoverable anomalies of one decode call.
type Diagnostics struct {
	// Skipped counts entries dropped because of an unknown type code.
	Skipped int
	// Truncated counts lists that stopped early on a malformed entry.
	Truncated int
	// Mismatched counts length disagreements, including entries dropped because
	// their declared length cannot hold their layout.
	Mismatched int
	Events     []Diagnostic
}

// Clean reports whether nothing unusual was found.
func (r Diagnostics) Clean() bool {
	return len(r.Events) == 0
}

func (r Diagnostics) String() string {
	if r.Clean() {
		return "clean"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "skipped=%v, truncated=%v, mismatched=%v", r.Skipped, r.Truncated, r.Mismatched)
	for _, v := range r.Events {
		fmt.Fprintf(&buf, "; %v", v)
	}

	return buf.String()
}

func (r *Diagnostics) add(d Diagnostic) {
	switch d.Kind {
	case MalformedEntry:
		r.Truncated++
	case UnknownEntryType:
		r.Skipped++
	case EntryLengthMismatch, TrailingDataMismatch:
		r.Mismatched++
	}
	r.Events = append(r.Events, d)
}

// Decoder carries the diagnostics of one decode call through nested entries.
// It is not safe for concurrent use; use one Decoder per message.
type Decoder struct {
	Diagnostics Diagnostics
}

// Report records a recoverable anomaly and logs it.
func (r *Decoder) Report(kind DiagnosticKind, family string, code uint16, detail string) {
	d := Diagnostic{
		Kind:   kind,
		Family: family,
		Code:   code,
		Detail: detail,
	}
	r.Diagnostics.add(d)
	logger.Warningf("%v", d)
}

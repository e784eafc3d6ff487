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
)

type errorType struct {
	name  string
	codes []string
}

// Indexed by OFPET_* and then by the code of the type.
var errorTypes = []errorType{
	OFPET_HELLO_FAILED: {"HELLO_FAILED", []string{
		"INCOMPATIBLE", "EPERM",
	}},
	OFPET_BAD_REQUEST: {"BAD_REQUEST", []string{
		"BAD_VERSION", "BAD_TYPE", "BAD_STAT", "BAD_EXPERIMENTER", "BAD_SUBTYPE",
		"EPERM", "BAD_LEN", "BUFFER_EMPTY", "BUFFER_UNKNOWN", "BAD_TABLE_ID",
	}},
	OFPET_BAD_ACTION: {"BAD_ACTION", []string{
		"BAD_TYPE", "BAD_LEN", "BAD_EXPERIMENTER", "BAD_EXPERIMENTER_TYPE", "BAD_OUT_PORT",
		"BAD_ARGUMENT", "EPERM", "TOO_MANY", "BAD_QUEUE", "BAD_OUT_GROUP",
		"MATCH_INCONSISTENT", "UNSUPPORTED_ORDER", "BAD_TAG",
	}},
	OFPET_BAD_INSTRUCTION: {"BAD_INSTRUCTION", []string{
		"UNKNOWN_INST", "UNSUP_INST", "BAD_TABLE_ID", "UNSUP_METADATA", "UNSUP_METADATA_MASK",
		"UNSUP_EXP_INST",
	}},
	OFPET_BAD_MATCH: {"BAD_MATCH", []string{
		"BAD_TYPE", "BAD_LEN", "BAD_TAG", "BAD_DL_ADDR_MASK", "BAD_NW_ADDR_MASK",
		"BAD_WILDCARDS", "BAD_FIELD", "BAD_VALUE",
	}},
	OFPET_FLOW_MOD_FAILED: {"FLOW_MOD_FAILED", []string{
		"UNKNOWN", "TABLE_FULL", "BAD_TABLE_ID", "OVERLAP", "EPERM",
		"BAD_TIMEOUT", "BAD_COMMAND",
	}},
	OFPET_GROUP_MOD_FAILED: {"GROUP_MOD_FAILED", []string{
		"GROUP_EXISTS", "INVALID_GROUP", "WEIGHT_UNSUPPORTED", "OUT_OF_GROUPS", "OUT_OF_BUCKETS",
		"CHAINING_UNSUPPORTED", "WATCH_UNSUPPORTED", "LOOP", "UNKNOWN_GROUP",
	}},
	OFPET_PORT_MOD_FAILED: {"PORT_MOD_FAILED", []string{
		"BAD_PORT", "BAD_HW_ADDR", "BAD_CONFIG", "BAD_ADVERTISE",
	}},
	OFPET_TABLE_MOD_FAILED: {"TABLE_MOD_FAILED", []string{
		"BAD_TABLE", "BAD_CONFIG",
	}},
	OFPET_QUEUE_OP_FAILED: {"QUEUE_OP_FAILED", []string{
		"BAD_PORT", "BAD_QUEUE", "EPERM",
	}},
	OFPET_SWITCH_CONFIG_FAILED: {"SWITCH_CONFIG_FAILED", []string{
		"BAD_FLAGS", "BAD_LEN",
	}},
}

// ErrorTypeName returns the name of an OFPET_* value.
func ErrorTypeName(t uint16) string {
	if int(t) >= len(errorTypes) {
		return fmt.Sprintf("UNKNOWN(%v)", t)
	}

	return errorTypes[t].name
}

// ErrorCodeName returns the name of an error code within its type.
func ErrorCodeName(t, code uint16) string {
	if int(t) >= len(errorTypes) || int(code) >= len(errorTypes[t].codes) {
		return fmt.Sprintf("UNKNOWN(%v)", code)
	}

	return errorTypes[t].codes[code]
}

// ErrorString returns a human readable form of an error type and code such as
// BAD_REQUEST/BAD_TYPE.
func ErrorString(t, code uint16) string {
	return fmt.Sprintf("%v/%v", ErrorTypeName(t), ErrorCodeName(t, code))
}

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
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"net"
	"testing"

	"github.com/TrafficLab/oftest11/openflow"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

func mustDecodeHex(s string) []byte {
	v, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex sample")
	}

	return v
}

func testMatch() *Match {
	m := NewMatch()
	m.InPort = 1
	m.Wildcards = OFPFW_ALL &^ (OFPFW_IN_PORT | OFPFW_DL_TYPE)
	m.DLSrc = net.HardwareAddr{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	m.DLSrcMask = net.HardwareAddr{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	m.DLType = 0x0800
	m.NWSrc = net.IP{10, 0, 0, 1}
	m.NWSrcMask = net.IP{0, 0, 0, 255}

	return m
}

func testPort(number uint32) *Port {
	return &Port{
		Number:       number,
		HWAddr:       net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, byte(number)},
		Name:         "eth" + string(rune('0'+number)),
		State:        OFPPS_LIVE,
		Current:      OFPPF_1GB_FD | OFPPF_COPPER,
		CurrentSpeed: 1000000,
		MaxSpeed:     1000000,
	}
}

func testMessages() []*openflow.Message {
	f := NewFactory()

	return []*openflow.Message{
		f.NewHello(),
		f.NewError(7, OFPET_BAD_REQUEST, OFPBRC_BAD_TYPE, []byte{0x02, 0x63, 0x00, 0x08, 0x00, 0x00, 0x00, 0x07}),
		f.NewEchoRequest([]byte("ping")),
		f.NewEchoReply(3, []byte("ping")),
		{
			Header:  openflow.Header{Version: Version, Type: OFPT_EXPERIMENTER, XID: 9},
			Body:    &Experimenter{Experimenter: 0x2320},
			Payload: []byte{0x01, 0x02},
		},
		f.NewFeaturesRequest(),
		f.NewFeaturesReply(5, &FeaturesReply{
			DatapathID:   0xcafebabedeadbeef,
			NumBuffers:   256,
			NumTables:    1,
			Capabilities: OFPC_FLOW_STATS | OFPC_TABLE_STATS | OFPC_PORT_STATS | OFPC_GROUP_STATS,
		}, []*Port{testPort(1), testPort(2)}),
		f.NewGetConfigRequest(),
		f.NewGetConfigReply(6, &SwitchConfig{Flags: OFPC_FRAG_NORMAL, MissSendLen: OFP_DEFAULT_MISS_SEND_LEN}),
		f.NewSetConfig(&SwitchConfig{Flags: OFPC_FRAG_DROP, MissSendLen: 0xffff}),
		f.NewPacketIn(&PacketIn{BufferID: 1, InPort: 2, InPhyPort: 2, TotalLen: 4, Reason: OFPR_NO_MATCH}, []byte{0xde, 0xad, 0xbe, 0xef}),
		f.NewFlowRemoved(&FlowRemoved{
			Cookie:      0x1122334455667788,
			Priority:    100,
			Reason:      OFPRR_DELETE,
			DurationSec: 10,
			IdleTimeout: 30,
			PacketCount: 5,
			ByteCount:   500,
			Match:       testMatch(),
		}),
		f.NewPortStatus(OFPPR_MODIFY, *testPort(3)),
		f.NewPacketOut(&PacketOut{BufferID: OFP_NO_BUFFER, InPort: OFPP_CONTROLLER}, []openflow.Entry{
			NewActionOutput(1, 0),
			NewActionGroup(5),
		}, []byte{0x01, 0x02, 0x03}),
		f.NewFlowMod(&FlowMod{
			Cookie:      1,
			Command:     OFPFC_ADD,
			IdleTimeout: 10,
			Priority:    0x8000,
			BufferID:    OFP_NO_BUFFER,
			OutPort:     OFPP_ANY,
			OutGroup:    OFPG_ANY,
			Flags:       OFPFF_SEND_FLOW_REM,
			Match:       testMatch(),
		},
			&InstructionWriteMetadata{Metadata: 0x10, Mask: 0xff},
			NewInstructionApplyActions(
				NewActionUint16(OFPAT_SET_VLAN_VID, 10),
				NewActionUint8(OFPAT_SET_VLAN_PCP, 3),
				NewActionSetDLAddr(OFPAT_SET_DL_SRC, net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}),
				NewActionSetNWAddr(OFPAT_SET_NW_DST, net.IP{192, 168, 0, 1}),
				NewActionHeader(OFPAT_DEC_NW_TTL),
				NewActionUint32(OFPAT_SET_MPLS_LABEL, 0xfffff),
				NewActionOutput(OFPP_CONTROLLER, 128),
			),
			NewInstructionWriteActions(NewActionUint32(OFPAT_SET_QUEUE, 1)),
			&InstructionClearActions{},
			&InstructionGotoTable{TableID: 1},
			&InstructionExperimenter{Experimenter: 0x2320, Data: []byte{0x00, 0x00, 0x00, 0x01}},
		),
		f.NewGroupMod(&GroupMod{Command: OFPGC_ADD, Type: OFPGT_SELECT, GroupID: 1},
			NewBucket(1, NewActionOutput(1, 0)),
			NewBucket(2, NewActionUint16(OFPAT_PUSH_VLAN, 0x8100), NewActionOutput(2, 0)),
		),
		f.NewPortMod(&PortMod{
			PortNo:    1,
			HWAddr:    net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
			Config:    OFPPC_PORT_DOWN,
			Mask:      OFPPC_PORT_DOWN,
			Advertise: OFPPF_1GB_FD,
		}),
		f.NewTableMod(&TableMod{TableID: 0, Config: OFPTC_TABLE_MISS_DROP}),
		f.NewStatsRequest(OFPST_DESC, nil),
		f.NewStatsRequest(OFPST_FLOW, &FlowStatsRequest{TableID: OFPTT_ALL, OutPort: OFPP_ANY, OutGroup: OFPG_ANY, Match: NewMatch()}),
		f.NewStatsRequest(OFPST_AGGREGATE, &FlowStatsRequest{TableID: 0, OutPort: 1, OutGroup: OFPG_ANY, Cookie: 1, CookieMask: 1, Match: testMatch()}),
		f.NewStatsRequest(OFPST_TABLE, nil),
		f.NewStatsRequest(OFPST_PORT, &PortStatsRequest{PortNo: OFPP_ANY}),
		f.NewStatsRequest(OFPST_QUEUE, &QueueStatsRequest{PortNo: OFPP_ANY, QueueID: OFPQ_ALL}),
		f.NewStatsRequest(OFPST_GROUP, &GroupStatsRequest{GroupID: OFPG_ALL}),
		f.NewStatsRequest(OFPST_GROUP_DESC, nil),
		f.NewStatsRequest(OFPST_EXPERIMENTER, &ExperimenterStatsRequest{Experimenter: 0x2320, Data: []byte{0x01}}),
		f.NewStatsReply(10, OFPST_DESC, 0, []openflow.Entry{&DescStats{
			Manufacturer: "TrafficLab",
			Hardware:     "software",
			Software:     "oftest11",
			SerialNumber: "1",
			Datapath:     "test datapath",
		}}),
		f.NewStatsReply(11, OFPST_FLOW, OFPSF_REPLY_MORE, []openflow.Entry{
			&FlowStats{TableID: 0, Priority: 1, Cookie: 2, PacketCount: 3, ByteCount: 4, Match: NewMatch()},
			&FlowStats{TableID: 0, Priority: 2, Match: testMatch(), Instructions: []openflow.Entry{
				NewInstructionApplyActions(NewActionOutput(1, 0)),
			}},
		}),
		f.NewStatsReply(12, OFPST_AGGREGATE, 0, []openflow.Entry{&AggregateStats{PacketCount: 1, ByteCount: 2, FlowCount: 3}}),
		f.NewStatsReply(13, OFPST_TABLE, 0, []openflow.Entry{&TableStats{TableID: 0, Name: "classifier", Wildcards: OFPFW_ALL, MaxEntries: 1024, ActiveCount: 1}}),
		f.NewStatsReply(14, OFPST_PORT, 0, []openflow.Entry{&PortStats{PortNo: 1, RxPackets: 1, TxPackets: 2, Collisions: 3}, &PortStats{PortNo: 2}}),
		f.NewStatsReply(15, OFPST_QUEUE, 0, []openflow.Entry{&QueueStats{PortNo: 1, QueueID: 1, TxBytes: 10}}),
		f.NewStatsReply(16, OFPST_GROUP, 0, []openflow.Entry{&GroupStats{GroupID: 1, RefCount: 1, Buckets: []BucketCounter{{PacketCount: 1, ByteCount: 64}}}}),
		f.NewStatsReply(17, OFPST_GROUP_DESC, 0, []openflow.Entry{&GroupDescStats{Type: OFPGT_ALL, GroupID: 1, Buckets: []openflow.Entry{NewBucket(0, NewActionOutput(3, 0))}}}),
		f.NewStatsReply(18, OFPST_EXPERIMENTER, 0, []openflow.Entry{&ExperimenterStats{Experimenter: 0x2320, Data: []byte{0x01, 0x02}}}),
		f.NewBarrierRequest(),
		f.NewBarrierReply(19),
		f.NewQueueGetConfigRequest(1),
		f.NewQueueGetConfigReply(20, 1, []*Queue{
			{ID: 1, Properties: []openflow.Entry{&QueuePropertyMinRate{Rate: 500}}},
			{ID: 2, Properties: []openflow.Entry{&QueuePropertyNone{}}},
		}),
	}
}

func TestRoundTrip(t *testing.T) {
	types := make(map[uint8]bool)
	for _, v := range testMessages() {
		types[v.Header.Type] = true

		packed, err := Codec.Pack(v)
		if err != nil {
			t.Fatalf("unexpected pack error: %v: %v", Registry.Name(v.Header.Type), err)
		}
		if int(binary.BigEndian.Uint16(packed[2:4])) != len(packed) {
			t.Fatalf("%v: unexpected length field: expected=%v, actual=%v", Registry.Name(v.Header.Type), len(packed), binary.BigEndian.Uint16(packed[2:4]))
		}

		msg, diag, err := Codec.Unpack(packed)
		if err != nil {
			t.Fatalf("unexpected unpack error: %v: %v", Registry.Name(v.Header.Type), err)
		}
		if !diag.Clean() {
			t.Fatalf("%v: unexpected diagnostics: %v", Registry.Name(v.Header.Type), diag)
		}
		if !cmp.Equal(v, msg, cmpopts.EquateEmpty()) {
			t.Fatalf("unexpected message: expected=%v, actual=%v, diff=%v", spew.Sdump(v), spew.Sdump(msg), cmp.Diff(v, msg, cmpopts.EquateEmpty()))
		}
		if !Codec.Equal(v, msg) {
			t.Fatalf("%v: expected equal messages", Registry.Name(v.Header.Type))
		}
	}

	for _, v := range Registry.Types() {
		if !types[v] {
			t.Fatalf("message type %v is not covered", Registry.Name(v))
		}
	}
}

func TestPacketOutExplicitActions(t *testing.T) {
	// actions_len=8: one group action, then a 4-byte frame that must not be read as actions.
	data := mustDecodeHex("020d002400000001" + "ffffffff" + "00000001" + "0008" + "000000000000" + "0016000800000005" + "deadbeef")

	msg, diag, err := Codec.Unpack(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.Clean() {
		t.Fatalf("unexpected diagnostics: %v", diag)
	}
	expected := []openflow.Entry{NewActionGroup(5)}
	if !cmp.Equal(msg.List, expected) {
		t.Fatalf("unexpected actions: diff=%v", cmp.Diff(expected, msg.List))
	}
	if !bytes.Equal(msg.Payload, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("unexpected payload: %x", msg.Payload)
	}

	packed, err := Codec.Pack(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(packed, data) {
		t.Fatalf("unexpected packed message: expected=%x, actual=%x", data, packed)
	}

	// The same frame behind one output action.
	data = mustDecodeHex("020d002c00000002" + "ffffffff" + "fffffffd" + "0010" + "000000000000" + "00000010000000010000000000000000" + "deadbeef")
	msg, _, err = Codec.Unpack(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected = []openflow.Entry{NewActionOutput(1, 0)}
	if !cmp.Equal(msg.List, expected) || len(msg.Payload) != 4 {
		t.Fatalf("unexpected message: %v", spew.Sdump(msg))
	}
	if msg.Body.(*PacketOut).InPort != OFPP_CONTROLLER {
		t.Fatalf("unexpected in port: %v", msg.Body.(*PacketOut).InPort)
	}
}

func TestFlowStatsNestedInstructions(t *testing.T) {
	msg := NewFactory().NewStatsReply(1, OFPST_FLOW, 0, []openflow.Entry{
		&FlowStats{Priority: 1, Match: NewMatch(), Instructions: []openflow.Entry{
			NewInstructionApplyActions(NewActionOutput(2, 0)),
		}},
	})
	packed, err := Codec.Pack(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// header + stats header + entry (136 + 8 + 16)
	if len(packed) != 8+8+160 {
		t.Fatalf("unexpected message length: %v", len(packed))
	}
	if binary.BigEndian.Uint16(packed[16:18]) != 160 {
		t.Fatalf("unexpected entry length: %v", binary.BigEndian.Uint16(packed[16:18]))
	}

	decoded, diag, err := Codec.Unpack(packed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.Clean() {
		t.Fatalf("unexpected diagnostics: %v", diag)
	}
	if len(decoded.List) != 1 {
		t.Fatalf("unexpected number of entries: %v", len(decoded.List))
	}
	stats := decoded.List[0].(*FlowStats)
	if len(stats.Instructions) != 1 {
		t.Fatalf("unexpected number of instructions: %v", len(stats.Instructions))
	}
	apply := stats.Instructions[0].(*InstructionActions)
	if apply.Type != OFPIT_APPLY_ACTIONS || len(apply.Actions) != 1 {
		t.Fatalf("unexpected instruction: %v", spew.Sdump(apply))
	}
	if output := apply.Actions[0].(*ActionOutput); output.Port != 2 {
		t.Fatalf("unexpected action: %v", spew.Sdump(output))
	}
}

func TestEmptyStatsRequests(t *testing.T) {
	for _, statsType := range []uint16{OFPST_DESC, OFPST_TABLE, OFPST_GROUP_DESC} {
		msg := NewFactory().NewStatsRequest(statsType, nil)
		packed, err := Codec.Pack(msg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := mustDecodeHex("0212001000000001" + "0000000000000000")
		binary.BigEndian.PutUint16(expected[8:10], statsType)
		if !bytes.Equal(packed, expected) {
			t.Fatalf("%v: unexpected packed request: expected=%x, actual=%x", StatsName(statsType), expected, packed)
		}

		decoded, diag, err := Codec.Unpack(packed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !diag.Clean() {
			t.Fatalf("unexpected diagnostics: %v", diag)
		}
		req := decoded.Body.(*StatsRequest)
		if _, ok := req.Body.(*StatsEmpty); !ok || req.Type != statsType {
			t.Fatalf("unexpected request: %v", spew.Sdump(req))
		}
	}
}

func TestUnknownActionSkipped(t *testing.T) {
	// output(1), an experimenter action with 4 junk bytes, output(2)
	data := mustDecodeHex("00000010000000010000000000000000" + "ffff0008deadbeef" + "00000010000000020000000000000000")

	d := new(openflow.Decoder)
	actions, rest, err := d.UnpackList(ActionKind, data, len(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []openflow.Entry{NewActionOutput(1, 0), NewActionOutput(2, 0)}
	if !cmp.Equal(actions, expected) {
		t.Fatalf("unexpected actions: diff=%v", cmp.Diff(expected, actions))
	}
	if len(rest) != 0 || d.Diagnostics.Skipped != 1 {
		t.Fatalf("unexpected result: rest=%v, diagnostics=%v", len(rest), d.Diagnostics)
	}
}

func TestTruncatedActionList(t *testing.T) {
	// set_vlan_vid, group, and a 2-byte tail
	data := mustDecodeHex("0001000800640000" + "0016000800000005" + "0000")

	d := new(openflow.Decoder)
	actions, rest, err := d.UnpackList(ActionKind, data, len(data))
	if _, ok := err.(*openflow.MalformedEntryError); !ok {
		t.Fatalf("expected MalformedEntryError, but got %v", err)
	}
	expected := []openflow.Entry{NewActionUint16(OFPAT_SET_VLAN_VID, 100), NewActionGroup(5)}
	if !cmp.Equal(actions, expected) {
		t.Fatalf("unexpected actions: diff=%v", cmp.Diff(expected, actions))
	}
	if len(rest) != 2 || d.Diagnostics.Truncated != 1 {
		t.Fatalf("unexpected result: rest=%v, diagnostics=%v", len(rest), d.Diagnostics)
	}
}

func TestErrorPayloadIsOpaque(t *testing.T) {
	offending := mustDecodeHex("0200000800000009")
	msg := NewFactory().NewError(9, OFPET_HELLO_FAILED, OFPHFC_INCOMPATIBLE, offending)
	packed, err := Codec.Pack(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := mustDecodeHex("0201001400000009" + "00000000" + "0200000800000009")
	if !bytes.Equal(packed, expected) {
		t.Fatalf("unexpected packed error: expected=%x, actual=%x", expected, packed)
	}

	decoded, _, err := Codec.Unpack(packed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(decoded.Payload, offending) || decoded.List != nil {
		t.Fatalf("unexpected error message: %v", spew.Sdump(decoded))
	}
	if s := decoded.Body.(*Error).String(); s != "HELLO_FAILED/INCOMPATIBLE" {
		t.Fatalf("unexpected error string: %v", s)
	}
}

func TestUnsupportedMessageType(t *testing.T) {
	// OFPT_ROLE_REQUEST of OpenFlow 1.2 does not exist in 1.1.
	_, _, err := Codec.Unpack(mustDecodeHex("0218000800000001"))
	e, ok := errors.Cause(err).(*openflow.UnsupportedMessageTypeError)
	if !ok {
		t.Fatalf("expected UnsupportedMessageTypeError, but got %v", err)
	}
	if e.Type != 0x18 {
		t.Fatalf("unexpected type: %v", e.Type)
	}
}

func TestUnknownStatsReplyType(t *testing.T) {
	data := mustDecodeHex("0213001800000001" + "1234000000000000" + "0102030405060708")
	msg, diag, err := Codec.Unpack(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msg.List) != 0 || diag.Skipped != 1 {
		t.Fatalf("unexpected result: list=%v, diagnostics=%v", len(msg.List), diag)
	}
}

func TestUnknownStatsRequestType(t *testing.T) {
	data := mustDecodeHex("0212001400000001" + "1234000000000000" + "01020304")
	msg, diag, err := Codec.Unpack(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.Clean() {
		t.Fatalf("unexpected diagnostics: %v", diag)
	}
	raw, ok := msg.Body.(*StatsRequest).Body.(*StatsRaw)
	if !ok || !bytes.Equal(raw.Data, []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Fatalf("unexpected body: %v", spew.Sdump(msg.Body))
	}
}

func TestShortFlowMod(t *testing.T) {
	// A flow mod without its match.
	data := make([]byte, 0x30)
	copy(data, mustDecodeHex("020e003000000001"))
	_, _, err := Codec.Unpack(data)
	if err == nil {
		t.Fatal("expected error, but no error returns")
	}
	if !errors.Is(err, openflow.ErrShortBody) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMatch(t *testing.T) {
	if !NewMatch().IsWildcardAll() {
		t.Fatal("expected an all-wildcard match")
	}
	if testMatch().IsWildcardAll() {
		t.Fatal("unexpected all-wildcard match")
	}

	v, err := testMatch().MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != OFPMT_STANDARD_LENGTH || binary.BigEndian.Uint16(v[2:4]) != OFPMT_STANDARD_LENGTH {
		t.Fatalf("unexpected match length: %v", len(v))
	}

	m := new(Match)
	if err := m.UnmarshalBinary(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmp.Equal(m, testMatch()) {
		t.Fatalf("unexpected match: diff=%v", cmp.Diff(testMatch(), m))
	}

	binary.BigEndian.PutUint16(v[2:4], OFPMT_STANDARD_LENGTH-8)
	if err := m.UnmarshalBinary(v); !errors.Is(err, ErrBadMatchLength) {
		t.Fatalf("unexpected error: %v", err)
	}
	binary.BigEndian.PutUint16(v[0:2], 1)
	if err := m.UnmarshalBinary(v); !errors.Is(err, ErrUnsupportedMatchType) {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := NewMatch()
	bad.DLSrc = net.HardwareAddr{0x00}
	if _, err := bad.MarshalBinary(); err != ErrInvalidMACAddress {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorNames(t *testing.T) {
	src := []struct {
		Type, Code uint16
		Expected   string
	}{
		{OFPET_BAD_REQUEST, OFPBRC_BAD_TABLE_ID, "BAD_REQUEST/BAD_TABLE_ID"},
		{OFPET_BAD_ACTION, OFPBAC_BAD_TAG, "BAD_ACTION/BAD_TAG"},
		{OFPET_FLOW_MOD_FAILED, OFPFMFC_OVERLAP, "FLOW_MOD_FAILED/OVERLAP"},
		{OFPET_GROUP_MOD_FAILED, OFPGMFC_UNKNOWN_GROUP, "GROUP_MOD_FAILED/UNKNOWN_GROUP"},
		{OFPET_SWITCH_CONFIG_FAILED, OFPSCFC_BAD_LEN, "SWITCH_CONFIG_FAILED/BAD_LEN"},
		{OFPET_PORT_MOD_FAILED, 99, "PORT_MOD_FAILED/UNKNOWN(99)"},
		{42, 0, "UNKNOWN(42)/UNKNOWN(0)"},
	}

	for _, v := range src {
		if s := ErrorString(v.Type, v.Code); s != v.Expected {
			t.Fatalf("unexpected error string: expected=%v, actual=%v", v.Expected, s)
		}
	}
}

func TestFactoryTransactionID(t *testing.T) {
	f := NewFactory()
	if xid := f.NewHello().Header.XID; xid != 1 {
		t.Fatalf("unexpected first transaction ID: %v", xid)
	}
	if xid := f.NewEchoRequest(nil).Header.XID; xid != 2 {
		t.Fatalf("unexpected second transaction ID: %v", xid)
	}
	if xid := f.NewBarrierReply(77).Header.XID; xid != 77 {
		t.Fatalf("unexpected reply transaction ID: %v", xid)
	}
}

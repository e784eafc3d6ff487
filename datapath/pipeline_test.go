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

package datapath

import (
	"net"
	"strings"
	"testing"

	"github.com/TrafficLab/oftest11/openflow"
	"github.com/TrafficLab/oftest11/openflow/of11"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func TestPacketBuffer(t *testing.T) {
	b := newPacketBuffer(2)

	ids := []uint32{b.store(1, []byte{0x01}), b.store(2, []byte{0x02}), b.store(3, []byte{0x03})}
	for i, v := range ids {
		if v != uint32(i) {
			t.Fatalf("unexpected buffer id: expected=%v, actual=%v", i, v)
		}
	}
	if b.len() != 2 {
		t.Fatalf("unexpected buffer length: %v", b.len())
	}

	// The oldest frame was evicted.
	if _, err := b.take(0); err == nil {
		t.Fatal("expected error, but no error returns")
	}
	p, err := b.take(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.inPort != 3 || p.frame[0] != 0x03 {
		t.Fatalf("unexpected buffered packet: %+v", p)
	}
	// A buffer is used only once.
	if _, err := b.take(2); err == nil {
		t.Fatal("expected error, but no error returns")
	}

	b.nextID = of11.OFP_NO_BUFFER - 1
	if id := b.store(1, nil); id != of11.OFP_NO_BUFFER-1 {
		t.Fatalf("unexpected buffer id: %v", id)
	}
	if id := b.store(1, nil); id != 0 {
		t.Fatalf("buffer id should skip OFP_NO_BUFFER: %v", id)
	}
}

func TestDisabledPacketBuffer(t *testing.T) {
	b := newPacketBuffer(0)
	if id := b.store(1, []byte{0x01}); id != of11.OFP_NO_BUFFER {
		t.Fatalf("unexpected buffer id: %v", id)
	}
	_, err := b.take(0)
	e, ok := err.(*Error)
	if !ok || e.Type != of11.OFPET_BAD_REQUEST || e.Code != of11.OFPBRC_BUFFER_UNKNOWN {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSummary(t *testing.T) {
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
		DstMAC:       net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IP{10, 0, 0, 1},
		DstIP:    net.IP{10, 0, 0, 2},
	}
	udp := &layers.UDP{SrcPort: 10000, DstPort: 10001}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true}, eth, ip, udp, gopacket.Payload([]byte("hello"))); err != nil {
		t.Fatalf("failed to serialize a frame: %v", err)
	}

	src := []struct {
		Frame    []byte
		Expected string
	}{
		{buf.Bytes(), "Ethernet/IPv4/UDP/Payload"},
		{nil, "empty"},
	}
	for _, v := range src {
		if s := Summary(v.Frame); s != v.Expected {
			t.Fatalf("unexpected summary: expected=%v, actual=%v", v.Expected, s)
		}
	}

	if s := Summary([]byte{0x01, 0x02}); !strings.Contains(s, "error(") {
		t.Fatalf("a truncated frame should be reported: %v", s)
	}
}

func TestActionName(t *testing.T) {
	src := []struct {
		Action   openflow.Entry
		Expected string
	}{
		{of11.NewActionOutput(3, 0), "OUTPUT:3"},
		{of11.NewActionOutput(of11.OFPP_CONTROLLER, 128), "OUTPUT:CONTROLLER"},
		{of11.NewActionGroup(1), "GROUP"},
		{of11.NewActionHeader(of11.OFPAT_DEC_NW_TTL), "DEC_NW_TTL"},
	}
	for _, v := range src {
		if name := actionName(v.Action); name != v.Expected {
			t.Fatalf("unexpected action name: expected=%v, actual=%v", v.Expected, name)
		}
	}

	if err := (LogPipeline{}).Execute(1, []openflow.Entry{of11.NewActionOutput(2, 0)}, []byte{0x01}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

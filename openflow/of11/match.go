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
	"errors"
	"fmt"
	"net"
)

var (
	ErrUnsupportedMatchType = errors.New("unsupported match type")
	ErrBadMatchLength       = errors.New("bad match length")
	ErrInvalidMACAddress    = errors.New("invalid MAC address")
	ErrInvalidIPAddress     = errors.New("invalid IPv4 address")
)

// Match is ofp_match of the OFPMT_STANDARD type. Its fields are carried as is;
// a mask bit set to 1 means the corresponding bit is ignored.
type Match struct {
	InPort       uint32
	Wildcards    uint32
	DLSrc        net.HardwareAddr
	DLSrcMask    net.HardwareAddr
	DLDst        net.HardwareAddr
	DLDstMask    net.HardwareAddr
	DLVLAN       uint16
	DLVLANPCP    uint8
	DLType       uint16
	NWTOS        uint8
	NWProto      uint8
	NWSrc        net.IP
	NWSrcMask    net.IP
	NWDst        net.IP
	NWDstMask    net.IP
	TPSrc        uint16
	TPDst        uint16
	MPLSLabel    uint32
	MPLSTC       uint8
	Metadata     uint64
	MetadataMask uint64
}

// NewMatch returns a Match whose fields are all wildcarded.
func NewMatch() *Match {
	return &Match{
		Wildcards:    OFPFW_ALL,
		DLSrc:        make(net.HardwareAddr, 6),
		DLSrcMask:    broadcastMAC(),
		DLDst:        make(net.HardwareAddr, 6),
		DLDstMask:    broadcastMAC(),
		NWSrc:        net.IPv4zero.To4(),
		NWSrcMask:    net.IPv4bcast.To4(),
		NWDst:        net.IPv4zero.To4(),
		NWDstMask:    net.IPv4bcast.To4(),
		MetadataMask: 0xFFFFFFFFFFFFFFFF,
	}
}

func broadcastMAC() net.HardwareAddr {
	return net.HardwareAddr{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
}

// IsWildcardAll returns whether the match selects every packet.
func (r *Match) IsWildcardAll() bool {
	if r.Wildcards&OFPFW_ALL != OFPFW_ALL {
		return false
	}
	v, err := r.MarshalBinary()
	if err != nil {
		return false
	}

	masks := [][]byte{v[18:24], v[30:36], v[48:52], v[56:60], v[80:88]}
	for _, m := range masks {
		if bytes.Count(m, []byte{0xFF}) != len(m) {
			return false
		}
	}

	return true
}

func (r *Match) Len() int {
	return OFPMT_STANDARD_LENGTH
}

func (r *Match) String() string {
	return fmt.Sprintf("Match{InPort=%v, Wildcards=%#x, DLSrc=%v/%v, DLDst=%v/%v, DLVLAN=%v, DLVLANPCP=%v, DLType=%#x, NWTOS=%v, NWProto=%v, NWSrc=%v/%v, NWDst=%v/%v, TPSrc=%v, TPDst=%v, MPLSLabel=%v, MPLSTC=%v, Metadata=%#x/%#x}",
		r.InPort, r.Wildcards, r.DLSrc, r.DLSrcMask, r.DLDst, r.DLDstMask, r.DLVLAN, r.DLVLANPCP, r.DLType, r.NWTOS, r.NWProto,
		r.NWSrc, r.NWSrcMask, r.NWDst, r.NWDstMask, r.TPSrc, r.TPDst, r.MPLSLabel, r.MPLSTC, r.Metadata, r.MetadataMask)
}

func putMAC(v []byte, mac net.HardwareAddr) error {
	if mac == nil {
		return nil
	}
	if len(mac) != 6 {
		return ErrInvalidMACAddress
	}
	copy(v[0:6], mac)

	return nil
}

func putIPv4(v []byte, ip net.IP) error {
	if ip == nil {
		return nil
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return ErrInvalidIPAddress
	}
	copy(v[0:4], ip4)

	return nil
}

func getMAC(v []byte) net.HardwareAddr {
	mac := make(net.HardwareAddr, 6)
	copy(mac, v[0:6])

	return mac
}

func getIPv4(v []byte) net.IP {
	ip := make(net.IP, 4)
	copy(ip, v[0:4])

	return ip
}

func (r *Match) MarshalBinary() ([]byte, error) {
	v := make([]byte, OFPMT_STANDARD_LENGTH)
	binary.BigEndian.PutUint16(v[0:2], OFPMT_STANDARD)
	binary.BigEndian.PutUint16(v[2:4], OFPMT_STANDARD_LENGTH)
	binary.BigEndian.PutUint32(v[4:8], r.InPort)
	binary.BigEndian.PutUint32(v[8:12], r.Wildcards)

	macs := []struct {
		offset int
		addr   net.HardwareAddr
	}{
		{12, r.DLSrc}, {18, r.DLSrcMask}, {24, r.DLDst}, {30, r.DLDstMask},
	}
	for _, m := range macs {
		if err := putMAC(v[m.offset:], m.addr); err != nil {
			return nil, err
		}
	}

	binary.BigEndian.PutUint16(v[36:38], r.DLVLAN)
	v[38] = r.DLVLANPCP
	// v[39] is padding
	binary.BigEndian.PutUint16(v[40:42], r.DLType)
	v[42] = r.NWTOS
	v[43] = r.NWProto

	ips := []struct {
		offset int
		addr   net.IP
	}{
		{44, r.NWSrc}, {48, r.NWSrcMask}, {52, r.NWDst}, {56, r.NWDstMask},
	}
	for _, ip := range ips {
		if err := putIPv4(v[ip.offset:], ip.addr); err != nil {
			return nil, err
		}
	}

	binary.BigEndian.PutUint16(v[60:62], r.TPSrc)
	binary.BigEndian.PutUint16(v[62:64], r.TPDst)
	binary.BigEndian.PutUint32(v[64:68], r.MPLSLabel)
	v[68] = r.MPLSTC
	// v[69:72] is padding
	binary.BigEndian.PutUint64(v[72:80], r.Metadata)
	binary.BigEndian.PutUint64(v[80:88], r.MetadataMask)

	return v, nil
}

func (r *Match) UnmarshalBinary(data []byte) error {
	if len(data) < OFPMT_STANDARD_LENGTH {
		return shortError("match", OFPMT_STANDARD_LENGTH, len(data))
	}
	if t := binary.BigEndian.Uint16(data[0:2]); t != OFPMT_STANDARD {
		return fmt.Errorf("%w: type=%v", ErrUnsupportedMatchType, t)
	}
	if l := binary.BigEndian.Uint16(data[2:4]); l != OFPMT_STANDARD_LENGTH {
		return fmt.Errorf("%w: length=%v", ErrBadMatchLength, l)
	}

	r.InPort = binary.BigEndian.Uint32(data[4:8])
	r.Wildcards = binary.BigEndian.Uint32(data[8:12])
	r.DLSrc = getMAC(data[12:18])
	r.DLSrcMask = getMAC(data[18:24])
	r.DLDst = getMAC(data[24:30])
	r.DLDstMask = getMAC(data[30:36])
	r.DLVLAN = binary.BigEndian.Uint16(data[36:38])
	r.DLVLANPCP = data[38]
	r.DLType = binary.BigEndian.Uint16(data[40:42])
	r.NWTOS = data[42]
	r.NWProto = data[43]
	r.NWSrc = getIPv4(data[44:48])
	r.NWSrcMask = getIPv4(data[48:52])
	r.NWDst = getIPv4(data[52:56])
	r.NWDstMask = getIPv4(data[56:60])
	r.TPSrc = binary.BigEndian.Uint16(data[60:62])
	r.TPDst = binary.BigEndian.Uint16(data[62:64])
	r.MPLSLabel = binary.BigEndian.Uint32(data[64:68])
	r.MPLSTC = data[68]
	r.Metadata = binary.BigEndian.Uint64(data[72:80])
	r.MetadataMask = binary.BigEndian.Uint64(data[80:88])

	return nil
}

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
	"encoding/binary"
	"fmt"

	"github.com/TrafficLab/oftest11/openflow"
)

var statsNames = map[uint16]string{
	OFPST_DESC:         "DESC",
	OFPST_FLOW:         "FLOW",
	OFPST_AGGREGATE:    "AGGREGATE",
	OFPST_TABLE:        "TABLE",
	OFPST_PORT:         "PORT",
	OFPST_QUEUE:        "QUEUE",
	OFPST_GROUP:        "GROUP",
	OFPST_GROUP_DESC:   "GROUP_DESC",
	OFPST_EXPERIMENTER: "EXPERIMENTER",
}

func StatsName(t uint16) string {
	if v, ok := statsNames[t]; ok {
		return v
	}

	return fmt.Sprintf("UNKNOWN(%#x)", t)
}

const statsHeaderLen = 8

func marshalStatsHeader(t, flags uint16) []byte {
	v := make([]byte, statsHeaderLen)
	binary.BigEndian.PutUint16(v[0:2], t)
	binary.BigEndian.PutUint16(v[2:4], flags)
	// v[4:8] is padding

	return v
}

var statsRequestBodies = map[uint16]func() openflow.Body{
	OFPST_DESC:         func() openflow.Body { return new(StatsEmpty) },
	OFPST_FLOW:         func() openflow.Body { return new(FlowStatsRequest) },
	OFPST_AGGREGATE:    func() openflow.Body { return new(FlowStatsRequest) },
	OFPST_TABLE:        func() openflow.Body { return new(StatsEmpty) },
	OFPST_PORT:         func() openflow.Body { return new(PortStatsRequest) },
	OFPST_QUEUE:        func() openflow.Body { return new(QueueStatsRequest) },
	OFPST_GROUP:        func() openflow.Body { return new(GroupStatsRequest) },
	OFPST_GROUP_DESC:   func() openflow.Body { return new(StatsEmpty) },
	OFPST_EXPERIMENTER: func() openflow.Body { return new(ExperimenterStatsRequest) },
}

// StatsRequest is ofp_stats_request followed by its type specific body.
// A request of an unknown stats type keeps its body as StatsRaw.
type StatsRequest struct {
	Type  uint16
	Flags uint16
	Body  openflow.Body
}

func (r *StatsRequest) Len() int {
	if r.Body == nil {
		return statsHeaderLen
	}

	return statsHeaderLen + r.Body.Len()
}

func (r *StatsRequest) MarshalBinary() ([]byte, error) {
	v := marshalStatsHeader(r.Type, r.Flags)
	if r.Body == nil {
		return v, nil
	}

	body, err := r.Body.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return append(v, body...), nil
}

func (r *StatsRequest) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("stats request", data, statsHeaderLen); err != nil {
		return 0, err
	}
	r.Type = binary.BigEndian.Uint16(data[0:2])
	r.Flags = binary.BigEndian.Uint16(data[2:4])

	f, ok := statsRequestBodies[r.Type]
	if !ok {
		f = func() openflow.Body { return new(StatsRaw) }
	}
	r.Body = f()
	n, err := r.Body.Unpack(d, data[statsHeaderLen:])
	if err != nil {
		return 0, fmt.Errorf("%v stats request: %w", StatsName(r.Type), err)
	}

	return statsHeaderLen + n, nil
}

// StatsReply is ofp_stats_reply. Its entries follow as the message list and
// their family is selected by Type.
type StatsReply struct {
	Type  uint16
	Flags uint16
}

func (r *StatsReply) Len() int {
	return statsHeaderLen
}

func (r *StatsReply) MarshalBinary() ([]byte, error) {
	return marshalStatsHeader(r.Type, r.Flags), nil
}

func (r *StatsReply) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("stats reply", data, statsHeaderLen); err != nil {
		return 0, err
	}
	r.Type = binary.BigEndian.Uint16(data[0:2])
	r.Flags = binary.BigEndian.Uint16(data[2:4])

	return statsHeaderLen, nil
}

var statsReplyKinds = map[uint16]*openflow.EntryKind{
	OFPST_DESC: openflow.NewEntryKind("desc stats", descStatsLength, openflow.FixedHeader(descStatsLength), map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(DescStats) },
	}),
	OFPST_FLOW: openflow.NewEntryKind("flow stats", flowStatsLength, openflow.LengthHeader, map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(FlowStats) },
	}),
	OFPST_AGGREGATE: openflow.NewEntryKind("aggregate stats", aggregateStatsLength, openflow.FixedHeader(aggregateStatsLength), map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(AggregateStats) },
	}),
	OFPST_TABLE: openflow.NewEntryKind("table stats", tableStatsLength, openflow.FixedHeader(tableStatsLength), map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(TableStats) },
	}),
	OFPST_PORT: openflow.NewEntryKind("port stats", portStatsLength, openflow.FixedHeader(portStatsLength), map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(PortStats) },
	}),
	OFPST_QUEUE: openflow.NewEntryKind("queue stats", queueStatsLength, openflow.FixedHeader(queueStatsLength), map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(QueueStats) },
	}),
	OFPST_GROUP: openflow.NewEntryKind("group stats", groupStatsLength, openflow.LengthHeader, map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(GroupStats) },
	}),
	OFPST_GROUP_DESC: openflow.NewEntryKind("group desc stats", groupDescStatsLength, openflow.LengthHeader, map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(GroupDescStats) },
	}),
	OFPST_EXPERIMENTER: openflow.NewEntryKind("experimenter stats", 8, openflow.RestHeader, map[uint16]func() openflow.Entry{
		0: func() openflow.Entry { return new(ExperimenterStats) },
	}),
}

// StatsReplyKind returns the entry family of a stats reply type, or nil if the
// type is unknown.
func StatsReplyKind(t uint16) *openflow.EntryKind {
	return statsReplyKinds[t]
}

func statsReplyKind(body openflow.Body) *openflow.EntryKind {
	reply, ok := body.(*StatsReply)
	if !ok {
		return nil
	}

	return StatsReplyKind(reply.Type)
}

// StatsEmpty is the empty body of the desc, table and group desc requests.
type StatsEmpty struct{}

func (r *StatsEmpty) Len() int {
	return 0
}

func (r *StatsEmpty) MarshalBinary() ([]byte, error) {
	return []byte{}, nil
}

func (r *StatsEmpty) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	return 0, nil
}

// StatsRaw keeps the body of a stats request whose type is unknown.
type StatsRaw struct {
	Data []byte
}

func (r *StatsRaw) Len() int {
	return len(r.Data)
}

func (r *StatsRaw) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), r.Data...), nil
}

func (r *StatsRaw) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	r.Data = append([]byte(nil), data...)
	return len(data), nil
}

// FlowStatsRequest is ofp_flow_stats_request, which is also used as
// ofp_aggregate_stats_request.
type FlowStatsRequest struct {
	TableID    uint8
	OutPort    uint32
	OutGroup   uint32
	Cookie     uint64
	CookieMask uint64
	Match      *Match
}

func (r *FlowStatsRequest) Len() int {
	return 32 + OFPMT_STANDARD_LENGTH
}

func (r *FlowStatsRequest) MarshalBinary() ([]byte, error) {
	match, err := marshalMatch(r.Match)
	if err != nil {
		return nil, err
	}

	v := make([]byte, 32, r.Len())
	v[0] = r.TableID
	// v[1:4] is padding
	binary.BigEndian.PutUint32(v[4:8], r.OutPort)
	binary.BigEndian.PutUint32(v[8:12], r.OutGroup)
	// v[12:16] is padding
	binary.BigEndian.PutUint64(v[16:24], r.Cookie)
	binary.BigEndian.PutUint64(v[24:32], r.CookieMask)

	return append(v, match...), nil
}

func (r *FlowStatsRequest) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("flow stats request", data, r.Len()); err != nil {
		return 0, err
	}
	r.TableID = data[0]
	r.OutPort = binary.BigEndian.Uint32(data[4:8])
	r.OutGroup = binary.BigEndian.Uint32(data[8:12])
	r.Cookie = binary.BigEndian.Uint64(data[16:24])
	r.CookieMask = binary.BigEndian.Uint64(data[24:32])
	r.Match = new(Match)
	if err := r.Match.UnmarshalBinary(data[32:]); err != nil {
		return 0, err
	}

	return r.Len(), nil
}

type PortStatsRequest struct {
	PortNo uint32
}

func (r *PortStatsRequest) Len() int {
	return 8
}

func (r *PortStatsRequest) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.PortNo)
	// v[4:8] is padding

	return v, nil
}

func (r *PortStatsRequest) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("port stats request", data, r.Len()); err != nil {
		return 0, err
	}
	r.PortNo = binary.BigEndian.Uint32(data[0:4])

	return r.Len(), nil
}

type QueueStatsRequest struct {
	PortNo  uint32
	QueueID uint32
}

func (r *QueueStatsRequest) Len() int {
	return 8
}

func (r *QueueStatsRequest) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.PortNo)
	binary.BigEndian.PutUint32(v[4:8], r.QueueID)

	return v, nil
}

func (r *QueueStatsRequest) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("queue stats request", data, r.Len()); err != nil {
		return 0, err
	}
	r.PortNo = binary.BigEndian.Uint32(data[0:4])
	r.QueueID = binary.BigEndian.Uint32(data[4:8])

	return r.Len(), nil
}

type GroupStatsRequest struct {
	GroupID uint32
}

func (r *GroupStatsRequest) Len() int {
	return 8
}

func (r *GroupStatsRequest) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.GroupID)
	// v[4:8] is padding

	return v, nil
}

func (r *GroupStatsRequest) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("group stats request", data, r.Len()); err != nil {
		return 0, err
	}
	r.GroupID = binary.BigEndian.Uint32(data[0:4])

	return r.Len(), nil
}

// ExperimenterStatsRequest carries the experimenter ID and opaque data to the
// end of the message.
type ExperimenterStatsRequest struct {
	Experimenter uint32
	Data         []byte
}

func (r *ExperimenterStatsRequest) Len() int {
	return 8 + len(r.Data)
}

func (r *ExperimenterStatsRequest) MarshalBinary() ([]byte, error) {
	v := make([]byte, 8, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.Experimenter)
	// v[4:8] is padding

	return append(v, r.Data...), nil
}

func (r *ExperimenterStatsRequest) Unpack(d *openflow.Decoder, data []byte) (int, error) {
	if err := checkLen("experimenter stats request", data, 8); err != nil {
		return 0, err
	}
	r.Experimenter = binary.BigEndian.Uint32(data[0:4])
	r.Data = append([]byte(nil), data[8:]...)

	return len(data), nil
}

const (
	descStatsLength      = 3*DESC_STR_LEN + SERIAL_NUM_LEN + DESC_STR_LEN
	flowStatsLength      = 48 + OFPMT_STANDARD_LENGTH
	aggregateStatsLength = 24
	tableStatsLength     = 88
	portStatsLength      = 104
	queueStatsLength     = 32
	groupStatsLength     = 32
	bucketCounterLength  = 16
	groupDescStatsLength = 8
)

// DescStats is ofp_desc_stats.
type DescStats struct {
	Manufacturer string
	Hardware     string
	Software     string
	SerialNumber string
	Datapath     string
}

func (r *DescStats) Len() int {
	return descStatsLength
}

func (r *DescStats) MarshalBinary() ([]byte, error) {
	v := make([]byte, descStatsLength)
	putString(v[0:256], r.Manufacturer)
	putString(v[256:512], r.Hardware)
	putString(v[512:768], r.Software)
	putString(v[768:800], r.SerialNumber)
	putString(v[800:1056], r.Datapath)

	return v, nil
}

func (r *DescStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("desc stats", data, descStatsLength); err != nil {
		return err
	}
	r.Manufacturer = getString(data[0:256])
	r.Hardware = getString(data[256:512])
	r.Software = getString(data[512:768])
	r.SerialNumber = getString(data[768:800])
	r.Datapath = getString(data[800:1056])

	return nil
}

// FlowStats is ofp_flow_stats. It owns its instruction list, whose size is the
// entry length minus the fixed part.
type FlowStats struct {
	TableID      uint8
	DurationSec  uint32
	DurationNsec uint32
	Priority     uint16
	IdleTimeout  uint16
	HardTimeout  uint16
	Cookie       uint64
	PacketCount  uint64
	ByteCount    uint64
	Match        *Match
	Instructions []openflow.Entry
}

func (r *FlowStats) Len() int {
	return flowStatsLength + openflow.ListLen(r.Instructions)
}

func (r *FlowStats) MarshalBinary() ([]byte, error) {
	match, err := marshalMatch(r.Match)
	if err != nil {
		return nil, err
	}
	instructions, err := openflow.PackList(r.Instructions)
	if err != nil {
		return nil, err
	}

	v := make([]byte, 48, flowStatsLength+len(instructions))
	binary.BigEndian.PutUint16(v[0:2], uint16(flowStatsLength+len(instructions)))
	v[2] = r.TableID
	// v[3] is padding
	binary.BigEndian.PutUint32(v[4:8], r.DurationSec)
	binary.BigEndian.PutUint32(v[8:12], r.DurationNsec)
	binary.BigEndian.PutUint16(v[12:14], r.Priority)
	binary.BigEndian.PutUint16(v[14:16], r.IdleTimeout)
	binary.BigEndian.PutUint16(v[16:18], r.HardTimeout)
	// v[18:24] is padding
	binary.BigEndian.PutUint64(v[24:32], r.Cookie)
	binary.BigEndian.PutUint64(v[32:40], r.PacketCount)
	binary.BigEndian.PutUint64(v[40:48], r.ByteCount)
	v = append(v, match...)

	return append(v, instructions...), nil
}

func (r *FlowStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("flow stats", data, flowStatsLength); err != nil {
		return err
	}
	r.TableID = data[2]
	r.DurationSec = binary.BigEndian.Uint32(data[4:8])
	r.DurationNsec = binary.BigEndian.Uint32(data[8:12])
	r.Priority = binary.BigEndian.Uint16(data[12:14])
	r.IdleTimeout = binary.BigEndian.Uint16(data[14:16])
	r.HardTimeout = binary.BigEndian.Uint16(data[16:18])
	r.Cookie = binary.BigEndian.Uint64(data[24:32])
	r.PacketCount = binary.BigEndian.Uint64(data[32:40])
	r.ByteCount = binary.BigEndian.Uint64(data[40:48])
	r.Match = new(Match)
	if err := r.Match.UnmarshalBinary(data[48:]); err != nil {
		return err
	}
	r.Instructions, _, _ = d.UnpackList(InstructionKind, data[flowStatsLength:], len(data)-flowStatsLength)

	return nil
}

// AggregateStats is ofp_aggregate_stats_reply.
type AggregateStats struct {
	PacketCount uint64
	ByteCount   uint64
	FlowCount   uint32
}

func (r *AggregateStats) Len() int {
	return aggregateStatsLength
}

func (r *AggregateStats) MarshalBinary() ([]byte, error) {
	v := make([]byte, aggregateStatsLength)
	binary.BigEndian.PutUint64(v[0:8], r.PacketCount)
	binary.BigEndian.PutUint64(v[8:16], r.ByteCount)
	binary.BigEndian.PutUint32(v[16:20], r.FlowCount)
	// v[20:24] is padding

	return v, nil
}

func (r *AggregateStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("aggregate stats", data, aggregateStatsLength); err != nil {
		return err
	}
	r.PacketCount = binary.BigEndian.Uint64(data[0:8])
	r.ByteCount = binary.BigEndian.Uint64(data[8:16])
	r.FlowCount = binary.BigEndian.Uint32(data[16:20])

	return nil
}

// TableStats is ofp_table_stats.
type TableStats struct {
	TableID      uint8
	Name         string
	Wildcards    uint32
	Match        uint32
	Instructions uint32
	WriteActions uint32
	ApplyActions uint32
	Config       uint32
	MaxEntries   uint32
	ActiveCount  uint32
	LookupCount  uint64
	MatchedCount uint64
}

func (r *TableStats) Len() int {
	return tableStatsLength
}

func (r *TableStats) MarshalBinary() ([]byte, error) {
	v := make([]byte, tableStatsLength)
	v[0] = r.TableID
	// v[1:8] is padding
	putString(v[8:40], r.Name)
	binary.BigEndian.PutUint32(v[40:44], r.Wildcards)
	binary.BigEndian.PutUint32(v[44:48], r.Match)
	binary.BigEndian.PutUint32(v[48:52], r.Instructions)
	binary.BigEndian.PutUint32(v[52:56], r.WriteActions)
	binary.BigEndian.PutUint32(v[56:60], r.ApplyActions)
	binary.BigEndian.PutUint32(v[60:64], r.Config)
	binary.BigEndian.PutUint32(v[64:68], r.MaxEntries)
	binary.BigEndian.PutUint32(v[68:72], r.ActiveCount)
	binary.BigEndian.PutUint64(v[72:80], r.LookupCount)
	binary.BigEndian.PutUint64(v[80:88], r.MatchedCount)

	return v, nil
}

func (r *TableStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("table stats", data, tableStatsLength); err != nil {
		return err
	}
	r.TableID = data[0]
	r.Name = getString(data[8:40])
	r.Wildcards = binary.BigEndian.Uint32(data[40:44])
	r.Match = binary.BigEndian.Uint32(data[44:48])
	r.Instructions = binary.BigEndian.Uint32(data[48:52])
	r.WriteActions = binary.BigEndian.Uint32(data[52:56])
	r.ApplyActions = binary.BigEndian.Uint32(data[56:60])
	r.Config = binary.BigEndian.Uint32(data[60:64])
	r.MaxEntries = binary.BigEndian.Uint32(data[64:68])
	r.ActiveCount = binary.BigEndian.Uint32(data[68:72])
	r.LookupCount = binary.BigEndian.Uint64(data[72:80])
	r.MatchedCount = binary.BigEndian.Uint64(data[80:88])

	return nil
}

// PortStats is ofp_port_stats.
type PortStats struct {
	PortNo     uint32
	RxPackets  uint64
	TxPackets  uint64
	RxBytes    uint64
	TxBytes    uint64
	RxDropped  uint64
	TxDropped  uint64
	RxErrors   uint64
	TxErrors   uint64
	RxFrameErr uint64
	RxOverErr  uint64
	RxCRCErr   uint64
	Collisions uint64
}

func (r *PortStats) counters() []*uint64 {
	return []*uint64{
		&r.RxPackets, &r.TxPackets, &r.RxBytes, &r.TxBytes, &r.RxDropped, &r.TxDropped,
		&r.RxErrors, &r.TxErrors, &r.RxFrameErr, &r.RxOverErr, &r.RxCRCErr, &r.Collisions,
	}
}

func (r *PortStats) Len() int {
	return portStatsLength
}

func (r *PortStats) MarshalBinary() ([]byte, error) {
	v := make([]byte, portStatsLength)
	binary.BigEndian.PutUint32(v[0:4], r.PortNo)
	// v[4:8] is padding
	for i, c := range r.counters() {
		binary.BigEndian.PutUint64(v[8+i*8:16+i*8], *c)
	}

	return v, nil
}

func (r *PortStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("port stats", data, portStatsLength); err != nil {
		return err
	}
	r.PortNo = binary.BigEndian.Uint32(data[0:4])
	for i, c := range r.counters() {
		*c = binary.BigEndian.Uint64(data[8+i*8 : 16+i*8])
	}

	return nil
}

// QueueStats is ofp_queue_stats.
type QueueStats struct {
	PortNo    uint32
	QueueID   uint32
	TxBytes   uint64
	TxPackets uint64
	TxErrors  uint64
}

func (r *QueueStats) Len() int {
	return queueStatsLength
}

func (r *QueueStats) MarshalBinary() ([]byte, error) {
	v := make([]byte, queueStatsLength)
	binary.BigEndian.PutUint32(v[0:4], r.PortNo)
	binary.BigEndian.PutUint32(v[4:8], r.QueueID)
	binary.BigEndian.PutUint64(v[8:16], r.TxBytes)
	binary.BigEndian.PutUint64(v[16:24], r.TxPackets)
	binary.BigEndian.PutUint64(v[24:32], r.TxErrors)

	return v, nil
}

func (r *QueueStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("queue stats", data, queueStatsLength); err != nil {
		return err
	}
	r.PortNo = binary.BigEndian.Uint32(data[0:4])
	r.QueueID = binary.BigEndian.Uint32(data[4:8])
	r.TxBytes = binary.BigEndian.Uint64(data[8:16])
	r.TxPackets = binary.BigEndian.Uint64(data[16:24])
	r.TxErrors = binary.BigEndian.Uint64(data[24:32])

	return nil
}

// BucketCounter is ofp_bucket_counter.
type BucketCounter struct {
	PacketCount uint64
	ByteCount   uint64
}

// GroupStats is ofp_group_stats followed by one counter per bucket.
type GroupStats struct {
	GroupID     uint32
	RefCount    uint32
	PacketCount uint64
	ByteCount   uint64
	Buckets     []BucketCounter
}

func (r *GroupStats) Len() int {
	return groupStatsLength + bucketCounterLength*len(r.Buckets)
}

func (r *GroupStats) MarshalBinary() ([]byte, error) {
	v := make([]byte, r.Len())
	binary.BigEndian.PutUint16(v[0:2], uint16(r.Len()))
	// v[2:4] is padding
	binary.BigEndian.PutUint32(v[4:8], r.GroupID)
	binary.BigEndian.PutUint32(v[8:12], r.RefCount)
	// v[12:16] is padding
	binary.BigEndian.PutUint64(v[16:24], r.PacketCount)
	binary.BigEndian.PutUint64(v[24:32], r.ByteCount)
	for i, b := range r.Buckets {
		offset := groupStatsLength + i*bucketCounterLength
		binary.BigEndian.PutUint64(v[offset:offset+8], b.PacketCount)
		binary.BigEndian.PutUint64(v[offset+8:offset+16], b.ByteCount)
	}

	return v, nil
}

func (r *GroupStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("group stats", data, groupStatsLength); err != nil {
		return err
	}
	r.GroupID = binary.BigEndian.Uint32(data[4:8])
	r.RefCount = binary.BigEndian.Uint32(data[8:12])
	r.PacketCount = binary.BigEndian.Uint64(data[16:24])
	r.ByteCount = binary.BigEndian.Uint64(data[24:32])

	r.Buckets = nil
	for buf := data[groupStatsLength:]; len(buf) >= bucketCounterLength; buf = buf[bucketCounterLength:] {
		r.Buckets = append(r.Buckets, BucketCounter{
			PacketCount: binary.BigEndian.Uint64(buf[0:8]),
			ByteCount:   binary.BigEndian.Uint64(buf[8:16]),
		})
	}

	return nil
}

// GroupDescStats is ofp_group_desc_stats. It owns its bucket list.
type GroupDescStats struct {
	Type    uint8
	GroupID uint32
	Buckets []openflow.Entry
}

func (r *GroupDescStats) Len() int {
	return groupDescStatsLength + openflow.ListLen(r.Buckets)
}

func (r *GroupDescStats) MarshalBinary() ([]byte, error) {
	buckets, err := openflow.PackList(r.Buckets)
	if err != nil {
		return nil, err
	}

	v := make([]byte, groupDescStatsLength, groupDescStatsLength+len(buckets))
	binary.BigEndian.PutUint16(v[0:2], uint16(groupDescStatsLength+len(buckets)))
	v[2] = r.Type
	// v[3] is padding
	binary.BigEndian.PutUint32(v[4:8], r.GroupID)

	return append(v, buckets...), nil
}

func (r *GroupDescStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("group desc stats", data, groupDescStatsLength); err != nil {
		return err
	}
	r.Type = data[2]
	r.GroupID = binary.BigEndian.Uint32(data[4:8])
	r.Buckets, _, _ = d.UnpackList(BucketKind, data[groupDescStatsLength:], len(data)-groupDescStatsLength)

	return nil
}

// ExperimenterStats is the experimenter stats reply body: the experimenter ID
// and opaque data to the end of the message.
type ExperimenterStats struct {
	Experimenter uint32
	Data         []byte
}

func (r *ExperimenterStats) Len() int {
	return 8 + len(r.Data)
}

func (r *ExperimenterStats) MarshalBinary() ([]byte, error) {
	v := make([]byte, 8, r.Len())
	binary.BigEndian.PutUint32(v[0:4], r.Experimenter)
	// v[4:8] is padding

	return append(v, r.Data...), nil
}

func (r *ExperimenterStats) Unpack(d *openflow.Decoder, data []byte) error {
	if err := checkLen("experimenter stats", data, 8); err != nil {
		return err
	}
	r.Experimenter = binary.BigEndian.Uint32(data[0:4])
	r.Data = append([]byte(nil), data[8:]...)

	return nil
}

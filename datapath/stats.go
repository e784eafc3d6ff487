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
	"fmt"

	"github.com/TrafficLab/oftest11/openflow"
	"github.com/TrafficLab/oftest11/openflow/of11"
)

const (
	// Stats reply header: ofp_header and ofp_stats_reply.
	statsReplyHeaderLen = openflow.HeaderLen + 8

	supportedInstructions = 1<<of11.OFPIT_GOTO_TABLE | 1<<of11.OFPIT_WRITE_METADATA | 1<<of11.OFPIT_WRITE_ACTIONS |
		1<<of11.OFPIT_APPLY_ACTIONS | 1<<of11.OFPIT_CLEAR_ACTIONS

	// Every action type from OUTPUT to DEC_NW_TTL.
	supportedActions = 1<<(of11.OFPAT_DEC_NW_TTL+1) - 1
)

func (r *Datapath) stats(xid uint32, req *of11.StatsRequest) ([]*openflow.Message, error) {
	var entries []openflow.Entry

	switch req.Type {
	case of11.OFPST_DESC:
		d := r.config.Description
		entries = append(entries, &of11.DescStats{
			Manufacturer: d.Manufacturer,
			Hardware:     d.Hardware,
			Software:     d.Software,
			SerialNumber: d.SerialNumber,
			Datapath:     d.Datapath,
		})

	case of11.OFPST_FLOW:
		flows, err := r.flows.query(req.Body.(*of11.FlowStatsRequest))
		if err != nil {
			return nil, err
		}
		now := r.clock()
		for _, v := range flows {
			entries = append(entries, flowStats(v, now))
		}

	case of11.OFPST_AGGREGATE:
		flows, err := r.flows.query(req.Body.(*of11.FlowStatsRequest))
		if err != nil {
			return nil, err
		}
		aggregate := &of11.AggregateStats{FlowCount: uint32(len(flows))}
		for _, v := range flows {
			aggregate.PacketCount += v.packetCount
			aggregate.ByteCount += v.byteCount
		}
		entries = append(entries, aggregate)

	case of11.OFPST_TABLE:
		for _, t := range r.flows.tables {
			entries = append(entries, &of11.TableStats{
				TableID:      t.id,
				Name:         fmt.Sprintf("table%v", t.id),
				Wildcards:    of11.OFPFW_ALL,
				Match:        of11.OFPFW_ALL,
				Instructions: supportedInstructions,
				WriteActions: supportedActions,
				ApplyActions: supportedActions,
				Config:       t.config,
				MaxEntries:   maxFlowEntries,
				ActiveCount:  uint32(len(t.entries)),
				LookupCount:  t.lookupCount,
				MatchedCount: t.matchedCount,
			})
		}

	case of11.OFPST_PORT:
		portNo := req.Body.(*of11.PortStatsRequest).PortNo
		for _, v := range r.ports.list() {
			if portNo == of11.OFPP_ANY || portNo == v.desc.Number {
				stats := v.stats
				entries = append(entries, &stats)
			}
		}

	case of11.OFPST_QUEUE:
		queues, err := r.queueStats(req.Body.(*of11.QueueStatsRequest))
		if err != nil {
			return nil, err
		}
		entries = queues

	case of11.OFPST_GROUP:
		for _, g := range r.groups.selectGroups(req.Body.(*of11.GroupStatsRequest).GroupID) {
			entries = append(entries, r.groupStats(g))
		}

	case of11.OFPST_GROUP_DESC:
		for _, g := range r.groups.selectGroups(of11.OFPG_ALL) {
			entries = append(entries, &of11.GroupDescStats{Type: g.groupType, GroupID: g.id, Buckets: g.buckets})
		}

	case of11.OFPST_EXPERIMENTER:
		return nil, newError(of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_EXPERIMENTER)

	default:
		return nil, newError(of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_STAT)
	}

	return r.splitStatsReply(xid, req.Type, entries), nil
}

func (r *Datapath) queueStats(req *of11.QueueStatsRequest) ([]openflow.Entry, error) {
	var ports []*port
	if req.PortNo == of11.OFPP_ANY {
		ports = r.ports.list()
	} else {
		p, ok := r.ports.get(req.PortNo)
		if !ok {
			return nil, newError(of11.OFPET_QUEUE_OP_FAILED, of11.OFPQOFC_BAD_PORT)
		}
		ports = []*port{p}
	}

	var entries []openflow.Entry
	for _, p := range ports {
		if req.QueueID == of11.OFPQ_ALL {
			for _, q := range p.queues {
				stats := q.stats
				entries = append(entries, &stats)
			}
			continue
		}
		q, ok := p.queue(req.QueueID)
		if !ok {
			if req.PortNo == of11.OFPP_ANY {
				continue
			}
			return nil, newError(of11.OFPET_QUEUE_OP_FAILED, of11.OFPQOFC_BAD_QUEUE)
		}
		stats := q.stats
		entries = append(entries, &stats)
	}

	return entries, nil
}

func (r *Datapath) groupStats(g *group) *of11.GroupStats {
	var refCount uint32
	for _, t := range r.flows.tables {
		for _, v := range t.entries {
			if outputs(v.instructions, of11.OFPP_ANY, g.id) {
				refCount++
			}
		}
	}

	return &of11.GroupStats{
		GroupID:     g.id,
		RefCount:    refCount,
		PacketCount: g.packetCount,
		ByteCount:   g.byteCount,
		Buckets:     make([]of11.BucketCounter, len(g.buckets)),
	}
}

// splitStatsReply packs entries into as many replies as the message length
// allows. Every reply but the last carries OFPSF_REPLY_MORE.
func (r *Datapath) splitStatsReply(xid uint32, statsType uint16, entries []openflow.Entry) []*openflow.Message {
	var replies []*openflow.Message
	var chunk []openflow.Entry
	length := statsReplyHeaderLen

	for _, v := range entries {
		if length+v.Len() > openflow.MaxMessageLen && len(chunk) > 0 {
			replies = append(replies, r.factory.NewStatsReply(xid, statsType, of11.OFPSF_REPLY_MORE, chunk))
			chunk = nil
			length = statsReplyHeaderLen
		}
		chunk = append(chunk, v)
		length += v.Len()
	}

	return append(replies, r.factory.NewStatsReply(xid, statsType, 0, chunk))
}

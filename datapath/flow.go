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
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"github.com/TrafficLab/oftest11/openflow"
	"github.com/TrafficLab/oftest11/openflow/of11"
)

// Capacity of each flow table.
const maxFlowEntries = 4096

type flowEntry struct {
	tableID      uint8
	priority     uint16
	match        *of11.Match
	packedMatch  string
	cookie       uint64
	idleTimeout  uint16
	hardTimeout  uint16
	flags        uint16
	instructions []openflow.Entry
	created      time.Time
	lastUsed     time.Time
	packetCount  uint64
	byteCount    uint64
}

func (r *flowEntry) key() string {
	return flowKey(r.priority, r.packedMatch)
}

func (r *flowEntry) String() string {
	return fmt.Sprintf("Flow{Table=%v, Priority=%v, Cookie=%#x, Match=%v, Instructions=%v}", r.tableID, r.priority, r.cookie, r.match, len(r.instructions))
}

// flowKey identifies a flow entry in its table by priority and packed match.
func flowKey(priority uint16, packedMatch string) string {
	v := make([]byte, 2)
	binary.BigEndian.PutUint16(v, priority)

	return string(v) + packedMatch
}

func packMatch(m *of11.Match) (string, error) {
	v, err := m.MarshalBinary()
	if err != nil {
		return "", newError(of11.OFPET_BAD_MATCH, of11.OFPBMC_BAD_LEN)
	}

	return string(v), nil
}

// outputs reports whether the instructions send packets to port or group.
func outputs(instructions []openflow.Entry, port, group uint32) bool {
	for _, v := range instructions {
		inst, ok := v.(*of11.InstructionActions)
		if !ok {
			continue
		}
		for _, a := range inst.Actions {
			switch action := a.(type) {
			case *of11.ActionOutput:
				if port != of11.OFPP_ANY && action.Port == port {
					return true
				}
			case *of11.ActionUint32:
				if action.Type == of11.OFPAT_GROUP && group != of11.OFPG_ANY && action.Value == group {
					return true
				}
			}
		}
	}

	return false
}

// flowFilter selects the entries a modify, delete or stats request applies to.
type flowFilter struct {
	strict      bool
	priority    uint16
	match       *of11.Match
	packedMatch string
	cookie      uint64
	cookieMask  uint64
	outPort     uint32
	outGroup    uint32
}

func newFlowFilter(match *of11.Match, cookie, cookieMask uint64, outPort, outGroup uint32) (*flowFilter, error) {
	if match == nil {
		match = of11.NewMatch()
	}
	packed, err := packMatch(match)
	if err != nil {
		return nil, err
	}

	return &flowFilter{
		match:       match,
		packedMatch: packed,
		cookie:      cookie,
		cookieMask:  cookieMask,
		outPort:     outPort,
		outGroup:    outGroup,
	}, nil
}

func (r *flowFilter) selects(e *flowEntry) bool {
	if e.cookie&r.cookieMask != r.cookie&r.cookieMask {
		return false
	}
	if r.outPort != of11.OFPP_ANY || r.outGroup != of11.OFPG_ANY {
		if !outputs(e.instructions, r.outPort, r.outGroup) {
			return false
		}
	}
	if r.strict {
		return e.priority == r.priority && e.packedMatch == r.packedMatch
	}
	// Without packet matching, a non-strict filter selects either everything
	// or the entries with the identical match.
	if r.match.IsWildcardAll() {
		return true
	}

	return e.packedMatch == r.packedMatch
}

type flowTable struct {
	id           uint8
	config       uint32
	entries      map[string]*flowEntry
	lookupCount  uint64
	matchedCount uint64
}

func (r *flowTable) selected(f *flowFilter) []*flowEntry {
	var result []*flowEntry
	for _, v := range r.entries {
		if f.selects(v) {
			result = append(result, v)
		}
	}
	sortFlows(result)

	return result
}

func sortFlows(flows []*flowEntry) {
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].tableID != flows[j].tableID {
			return flows[i].tableID < flows[j].tableID
		}
		if flows[i].priority != flows[j].priority {
			return flows[i].priority > flows[j].priority
		}
		return flows[i].packedMatch < flows[j].packedMatch
	})
}

type flowRemoval struct {
	entry  *flowEntry
	reason uint8
}

type flowStore struct {
	tables []*flowTable
}

func newFlowStore(numTables uint8) *flowStore {
	s := &flowStore{tables: make([]*flowTable, numTables)}
	for i := range s.tables {
		s.tables[i] = &flowTable{id: uint8(i), entries: make(map[string]*flowEntry)}
	}

	return s
}

func (r *flowStore) table(id uint8) (*flowTable, bool) {
	if int(id) >= len(r.tables) {
		return nil, false
	}

	return r.tables[id], true
}

// selectTables returns every table for OFPTT_ALL, or the single table id.
func (r *flowStore) selectTables(id uint8) ([]*flowTable, bool) {
	if id == of11.OFPTT_ALL {
		return r.tables, true
	}
	t, ok := r.table(id)
	if !ok {
		return nil, false
	}

	return []*flowTable{t}, true
}

func (r *flowStore) count() int {
	n := 0
	for _, t := range r.tables {
		n += len(t.entries)
	}

	return n
}

// apply executes a flow mod and returns the entries it removed.
func (r *flowStore) apply(mod *of11.FlowMod, instructions []openflow.Entry, now time.Time) ([]flowRemoval, error) {
	switch mod.Command {
	case of11.OFPFC_ADD:
		return nil, r.add(mod, instructions, now)
	case of11.OFPFC_MODIFY, of11.OFPFC_MODIFY_STRICT:
		return nil, r.modify(mod, instructions, now)
	case of11.OFPFC_DELETE, of11.OFPFC_DELETE_STRICT:
		return r.delete(mod)
	default:
		return nil, newError(of11.OFPET_FLOW_MOD_FAILED, of11.OFPFMFC_BAD_COMMAND)
	}
}

func (r *flowStore) add(mod *of11.FlowMod, instructions []openflow.Entry, now time.Time) error {
	t, ok := r.table(mod.TableID)
	if !ok {
		return newError(of11.OFPET_FLOW_MOD_FAILED, of11.OFPFMFC_BAD_TABLE_ID)
	}
	match := mod.Match
	if match == nil {
		match = of11.NewMatch()
	}
	packed, err := packMatch(match)
	if err != nil {
		return err
	}

	e := &flowEntry{
		tableID:      t.id,
		priority:     mod.Priority,
		match:        match,
		packedMatch:  packed,
		cookie:       mod.Cookie,
		idleTimeout:  mod.IdleTimeout,
		hardTimeout:  mod.HardTimeout,
		flags:        mod.Flags,
		instructions: instructions,
		created:      now,
		lastUsed:     now,
	}
	_, exists := t.entries[e.key()]
	if exists && mod.Flags&of11.OFPFF_CHECK_OVERLAP != 0 {
		return newError(of11.OFPET_FLOW_MOD_FAILED, of11.OFPFMFC_OVERLAP)
	}
	if !exists && len(t.entries) >= maxFlowEntries {
		return newError(of11.OFPET_FLOW_MOD_FAILED, of11.OFPFMFC_TABLE_FULL)
	}
	// An identical entry is replaced and its counters are cleared.
	t.entries[e.key()] = e
	logger.Debugf("added a flow entry: %v", e)

	return nil
}

func (r *flowStore) modify(mod *of11.FlowMod, instructions []openflow.Entry, now time.Time) error {
	t, ok := r.table(mod.TableID)
	if !ok {
		return newError(of11.OFPET_FLOW_MOD_FAILED, of11.OFPFMFC_BAD_TABLE_ID)
	}
	f, err := newFlowFilter(mod.Match, mod.Cookie, mod.CookieMask, of11.OFPP_ANY, of11.OFPG_ANY)
	if err != nil {
		return err
	}
	f.strict = mod.Command == of11.OFPFC_MODIFY_STRICT
	f.priority = mod.Priority

	targets := t.selected(f)
	if len(targets) == 0 {
		return r.add(mod, instructions, now)
	}
	for _, v := range targets {
		v.instructions = instructions
		logger.Debugf("modified a flow entry: %v", v)
	}

	return nil
}

func (r *flowStore) delete(mod *of11.FlowMod) ([]flowRemoval, error) {
	tables, ok := r.selectTables(mod.TableID)
	if !ok {
		return nil, newError(of11.OFPET_FLOW_MOD_FAILED, of11.OFPFMFC_BAD_TABLE_ID)
	}
	f, err := newFlowFilter(mod.Match, mod.Cookie, mod.CookieMask, mod.OutPort, mod.OutGroup)
	if err != nil {
		return nil, err
	}
	f.strict = mod.Command == of11.OFPFC_DELETE_STRICT
	f.priority = mod.Priority

	var removed []flowRemoval
	for _, t := range tables {
		for _, v := range t.selected(f) {
			delete(t.entries, v.key())
			removed = append(removed, flowRemoval{entry: v, reason: of11.OFPRR_DELETE})
			logger.Debugf("deleted a flow entry: %v", v)
		}
	}

	return removed, nil
}

// deleteGroupFlows removes the entries that forward to a deleted group.
func (r *flowStore) deleteGroupFlows(groupID uint32) []flowRemoval {
	var removed []flowRemoval
	for _, t := range r.tables {
		for k, v := range t.entries {
			if outputs(v.instructions, of11.OFPP_ANY, groupID) {
				delete(t.entries, k)
				removed = append(removed, flowRemoval{entry: v, reason: of11.OFPRR_GROUP_DELETE})
			}
		}
	}

	return removed
}

// expire removes the entries whose idle or hard timeout has elapsed at now.
func (r *flowStore) expire(now time.Time) []flowRemoval {
	var removed []flowRemoval
	for _, t := range r.tables {
		for k, v := range t.entries {
			var reason uint8
			switch {
			case v.hardTimeout > 0 && !now.Before(v.created.Add(time.Duration(v.hardTimeout)*time.Second)):
				reason = of11.OFPRR_HARD_TIMEOUT
			case v.idleTimeout > 0 && !now.Before(v.lastUsed.Add(time.Duration(v.idleTimeout)*time.Second)):
				reason = of11.OFPRR_IDLE_TIMEOUT
			default:
				continue
			}
			delete(t.entries, k)
			removed = append(removed, flowRemoval{entry: v, reason: reason})
			logger.Debugf("expired a flow entry: %v", v)
		}
	}

	return removed
}

// query returns the entries a flow or aggregate stats request selects.
func (r *flowStore) query(req *of11.FlowStatsRequest) ([]*flowEntry, error) {
	tables, ok := r.selectTables(req.TableID)
	if !ok {
		return nil, newError(of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_TABLE_ID)
	}
	f, err := newFlowFilter(req.Match, req.Cookie, req.CookieMask, req.OutPort, req.OutGroup)
	if err != nil {
		return nil, err
	}

	var result []*flowEntry
	for _, t := range tables {
		result = append(result, t.selected(f)...)
	}
	sortFlows(result)

	return result, nil
}

func flowRemoved(e *flowEntry, reason uint8, now time.Time) *of11.FlowRemoved {
	d := now.Sub(e.created)

	return &of11.FlowRemoved{
		Cookie:       e.cookie,
		Priority:     e.priority,
		Reason:       reason,
		TableID:      e.tableID,
		DurationSec:  uint32(d / time.Second),
		DurationNsec: uint32(d % time.Second),
		IdleTimeout:  e.idleTimeout,
		PacketCount:  e.packetCount,
		ByteCount:    e.byteCount,
		Match:        e.match,
	}
}

func flowStats(e *flowEntry, now time.Time) *of11.FlowStats {
	d := now.Sub(e.created)

	return &of11.FlowStats{
		TableID:      e.tableID,
		DurationSec:  uint32(d / time.Second),
		DurationNsec: uint32(d % time.Second),
		Priority:     e.priority,
		IdleTimeout:  e.idleTimeout,
		HardTimeout:  e.hardTimeout,
		Cookie:       e.cookie,
		PacketCount:  e.packetCount,
		ByteCount:    e.byteCount,
		Match:        e.match,
		Instructions: e.instructions,
	}
}

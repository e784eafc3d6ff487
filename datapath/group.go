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
	"sort"

	"github.com/TrafficLab/oftest11/openflow"
	"github.com/TrafficLab/oftest11/openflow/of11"
)

type group struct {
	id          uint32
	groupType   uint8
	buckets     []openflow.Entry
	packetCount uint64
	byteCount   uint64
}

func (r *group) String() string {
	return fmt.Sprintf("Group{ID=%v, Type=%v, Buckets=%v}", r.id, r.groupType, len(r.buckets))
}

type groupTable struct {
	groups map[uint32]*group
}

func newGroupTable() *groupTable {
	return &groupTable{groups: make(map[uint32]*group)}
}

func validateGroup(groupType uint8, buckets []openflow.Entry) error {
	switch groupType {
	case of11.OFPGT_ALL, of11.OFPGT_SELECT, of11.OFPGT_FF:
	case of11.OFPGT_INDIRECT:
		if len(buckets) != 1 {
			return newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_INVALID_GROUP)
		}
	default:
		return newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_INVALID_GROUP)
	}

	for _, v := range buckets {
		b, ok := v.(*of11.Bucket)
		if !ok {
			return newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_INVALID_GROUP)
		}
		if b.Weight != 0 && groupType != of11.OFPGT_SELECT {
			return newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_INVALID_GROUP)
		}
	}

	return nil
}

// apply executes a group mod. It returns the ids of the deleted groups.
func (r *groupTable) apply(mod *of11.GroupMod, buckets []openflow.Entry) ([]uint32, error) {
	switch mod.Command {
	case of11.OFPGC_ADD:
		if mod.GroupID > of11.OFPG_MAX {
			return nil, newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_INVALID_GROUP)
		}
		if _, ok := r.groups[mod.GroupID]; ok {
			return nil, newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_GROUP_EXISTS)
		}
		if err := validateGroup(mod.Type, buckets); err != nil {
			return nil, err
		}
		g := &group{id: mod.GroupID, groupType: mod.Type, buckets: buckets}
		r.groups[mod.GroupID] = g
		logger.Debugf("added a group: %v", g)

		return nil, nil

	case of11.OFPGC_MODIFY:
		g, ok := r.groups[mod.GroupID]
		if !ok {
			return nil, newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_UNKNOWN_GROUP)
		}
		if err := validateGroup(mod.Type, buckets); err != nil {
			return nil, err
		}
		g.groupType = mod.Type
		g.buckets = buckets
		logger.Debugf("modified a group: %v", g)

		return nil, nil

	case of11.OFPGC_DELETE:
		if mod.GroupID == of11.OFPG_ALL {
			ids := r.ids()
			r.groups = make(map[uint32]*group)
			logger.Debug("deleted all the groups")
			return ids, nil
		}
		if _, ok := r.groups[mod.GroupID]; !ok {
			return nil, newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_UNKNOWN_GROUP)
		}
		delete(r.groups, mod.GroupID)
		logger.Debugf("deleted a group: ID=%v", mod.GroupID)

		return []uint32{mod.GroupID}, nil

	default:
		return nil, newError(of11.OFPET_GROUP_MOD_FAILED, of11.OFPGMFC_INVALID_GROUP)
	}
}

func (r *groupTable) ids() []uint32 {
	ids := make([]uint32, 0, len(r.groups))
	for id := range r.groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// selectGroups returns every group for OFPG_ALL, or the single group id.
func (r *groupTable) selectGroups(id uint32) []*group {
	if id == of11.OFPG_ALL {
		result := make([]*group, 0, len(r.groups))
		for _, v := range r.ids() {
			result = append(result, r.groups[v])
		}
		return result
	}

	g, ok := r.groups[id]
	if !ok {
		return nil
	}

	return []*group{g}
}

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
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/TrafficLab/oftest11/metrics"
	"github.com/TrafficLab/oftest11/openflow"
	"github.com/TrafficLab/oftest11/openflow/of11"
	"github.com/TrafficLab/oftest11/openflow/transceiver"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var (
	logger = logging.MustGetLogger("datapath")
)

const (
	// Interval of the flow expiration check.
	expireInterval = 1 * time.Second
	// Bytes of an offending request copied into an error reply.
	errorDataLen = 64
	capabilities = of11.OFPC_FLOW_STATS | of11.OFPC_TABLE_STATS | of11.OFPC_PORT_STATS | of11.OFPC_GROUP_STATS | of11.OFPC_QUEUE_STATS
)

// Datapath is an OpenFlow 1.1 switch without packet matching: every frame
// handed to PacketIn misses the flow tables.
type Datapath struct {
	mutex        sync.Mutex
	config       Config
	switchConfig of11.SwitchConfig
	ports        *portTable
	flows        *flowStore
	groups       *groupTable
	buffers      *packetBuffer
	// Execute must not call back into the datapath.
	pipeline Pipeline
	factory  *of11.Factory
	// Controller connection. nil if we are disconnected.
	writer transceiver.Writer
	clock  func() time.Time
}

func New(config Config, pipeline Pipeline) (*Datapath, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid datapath config")
	}
	if pipeline == nil {
		pipeline = LogPipeline{}
	}

	return &Datapath{
		config:       config,
		switchConfig: of11.SwitchConfig{Flags: of11.OFPC_FRAG_NORMAL, MissSendLen: config.MissSendLen},
		ports:        newPortTable(config.Ports),
		flows:        newFlowStore(config.NumTables),
		groups:       newGroupTable(),
		buffers:      newPacketBuffer(config.NumBuffers),
		pipeline:     pipeline,
		factory:      of11.NewFactory(),
		clock:        time.Now,
	}, nil
}

// Serve exchanges messages with a controller on conn until ctx is canceled or the connection is closed.
func (r *Datapath) Serve(ctx context.Context, conn io.ReadWriteCloser) error {
	t := transceiver.NewTransceiver(transceiver.NewStream(conn, 0), r)

	r.mutex.Lock()
	r.writer = t
	r.mutex.Unlock()

	defer func() {
		r.mutex.Lock()
		r.writer = nil
		r.mutex.Unlock()
	}()

	return t.Run(ctx)
}

func (r *Datapath) String() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return fmt.Sprintf("Datapath ID=%#016x, Ports=%v, Flows=%v, Groups=%v, Buffered=%v, Connected=%v",
		r.config.DatapathID, len(r.ports.ports), r.flows.count(), len(r.groups.groups), r.buffers.len(), r.writer != nil)
}

// Run expires flow entries until ctx is canceled.
func (r *Datapath) Run(ctx context.Context) {
	ticker := time.NewTicker(expireInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.send(r.expire())
		}
	}
}

func (r *Datapath) expire() []*openflow.Message {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.clock()
	removed := r.flows.expire(now)
	if len(removed) > 0 {
		r.updateFlowMetrics()
	}

	return r.flowRemovedMessages(removed, now)
}

// send writes asynchronous messages to the controller, if any.
func (r *Datapath) send(msgs []*openflow.Message) {
	if len(msgs) == 0 {
		return
	}

	r.mutex.Lock()
	w := r.writer
	r.mutex.Unlock()

	if w == nil {
		logger.Debugf("drop %v message(s): not connected to a controller", len(msgs))
		return
	}
	for _, v := range msgs {
		if err := w.Write(v); err != nil {
			logger.Errorf("failed to send %v: %v", of11.Registry.Name(v.Header.Type), err)
			return
		}
	}
}

// OnMessage handles a message from the controller. A rejected message is
// answered with an ERROR that echoes the head of packet.
func (r *Datapath) OnMessage(w transceiver.Writer, msg *openflow.Message, packet []byte) error {
	replies, err := r.handle(msg)
	if err != nil {
		e, ok := errors.Cause(err).(*Error)
		if !ok {
			return err
		}
		logger.Warningf("rejected %v (xid=%v): %v", of11.Registry.Name(msg.Header.Type), msg.Header.XID, e)
		metrics.RecordErrorReply(e.Error())
		return w.Write(r.factory.NewError(msg.Header.XID, e.Type, e.Code, errorData(packet)))
	}

	for _, v := range replies {
		if err := w.Write(v); err != nil {
			return errors.Wrapf(err, "failed to send %v", of11.Registry.Name(v.Header.Type))
		}
	}

	return nil
}

func errorData(packet []byte) []byte {
	if len(packet) > errorDataLen {
		packet = packet[:errorDataLen]
	}
	v := make([]byte, len(packet))
	copy(v, packet)

	return v
}

func (r *Datapath) handle(msg *openflow.Message) ([]*openflow.Message, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	xid := msg.Header.XID
	switch msg.Header.Type {
	case of11.OFPT_FEATURES_REQUEST:
		return []*openflow.Message{r.featuresReply(xid)}, nil
	case of11.OFPT_GET_CONFIG_REQUEST:
		c := r.switchConfig
		return []*openflow.Message{r.factory.NewGetConfigReply(xid, &c)}, nil
	case of11.OFPT_SET_CONFIG:
		return nil, r.setConfig(msg.Body.(*of11.SwitchConfig))
	case of11.OFPT_FLOW_MOD:
		return r.flowMod(msg.Body.(*of11.FlowMod), msg.List)
	case of11.OFPT_GROUP_MOD:
		return r.groupMod(msg.Body.(*of11.GroupMod), msg.List)
	case of11.OFPT_PORT_MOD:
		return r.portMod(msg.Body.(*of11.PortMod))
	case of11.OFPT_TABLE_MOD:
		return nil, r.tableMod(msg.Body.(*of11.TableMod))
	case of11.OFPT_PACKET_OUT:
		return nil, r.packetOut(msg.Body.(*of11.PacketOut), msg.List, msg.Payload)
	case of11.OFPT_STATS_REQUEST:
		return r.stats(xid, msg.Body.(*of11.StatsRequest))
	case of11.OFPT_BARRIER_REQUEST:
		// Every request is done once its handler returns.
		return []*openflow.Message{r.factory.NewBarrierReply(xid)}, nil
	case of11.OFPT_QUEUE_GET_CONFIG_REQUEST:
		return r.queueGetConfig(xid, msg.Body.(*of11.QueueGetConfig))
	case of11.OFPT_EXPERIMENTER:
		return nil, newError(of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_EXPERIMENTER)
	case of11.OFPT_ERROR:
		logger.Errorf("controller reported an error (xid=%v): %v", xid, msg.Body.(*of11.Error))
		return nil, nil
	default:
		// Messages only a switch sends.
		return nil, newError(of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_TYPE)
	}
}

func (r *Datapath) featuresReply(xid uint32) *openflow.Message {
	features := &of11.FeaturesReply{
		DatapathID:   r.config.DatapathID,
		NumBuffers:   r.config.NumBuffers,
		NumTables:    r.config.NumTables,
		Capabilities: capabilities,
	}
	var ports []*of11.Port
	for _, v := range r.ports.list() {
		desc := v.desc
		ports = append(ports, &desc)
	}

	return r.factory.NewFeaturesReply(xid, features, ports)
}

func (r *Datapath) setConfig(c *of11.SwitchConfig) error {
	switch c.Flags & of11.OFPC_FRAG_MASK {
	case of11.OFPC_FRAG_NORMAL, of11.OFPC_FRAG_DROP:
	default:
		// We cannot reassemble fragments.
		return newError(of11.OFPET_SWITCH_CONFIG_FAILED, of11.OFPSCFC_BAD_FLAGS)
	}
	r.switchConfig = *c
	logger.Infof("switch config changed: flags=%#x, miss_send_len=%v", c.Flags, c.MissSendLen)

	return nil
}

func (r *Datapath) validateActions(actions []openflow.Entry) error {
	for _, v := range actions {
		switch a := v.(type) {
		case *of11.ActionOutput:
			if a.Port == 0 || a.Port == of11.OFPP_ANY {
				return newError(of11.OFPET_BAD_ACTION, of11.OFPBAC_BAD_OUT_PORT)
			}
			if _, ok := r.ports.get(a.Port); !ok && a.Port <= of11.OFPP_MAX {
				return newError(of11.OFPET_BAD_ACTION, of11.OFPBAC_BAD_OUT_PORT)
			}
		case *of11.ActionUint32:
			if a.Type != of11.OFPAT_GROUP {
				continue
			}
			if _, ok := r.groups.groups[a.Value]; !ok {
				return newError(of11.OFPET_BAD_ACTION, of11.OFPBAC_BAD_OUT_GROUP)
			}
		}
	}

	return nil
}

func (r *Datapath) validateInstructions(tableID uint8, instructions []openflow.Entry) error {
	for _, v := range instructions {
		switch inst := v.(type) {
		case *of11.InstructionGotoTable:
			// The pipeline only goes forward.
			if inst.TableID <= tableID || inst.TableID >= r.config.NumTables {
				return newError(of11.OFPET_BAD_INSTRUCTION, of11.OFPBIC_BAD_TABLE_ID)
			}
		case *of11.InstructionActions:
			if err := r.validateActions(inst.Actions); err != nil {
				return err
			}
		case *of11.InstructionExperimenter:
			return newError(of11.OFPET_BAD_INSTRUCTION, of11.OFPBIC_UNSUP_EXP_INST)
		}
	}

	return nil
}

func applyActions(instructions []openflow.Entry) []openflow.Entry {
	var actions []openflow.Entry
	for _, v := range instructions {
		if inst, ok := v.(*of11.InstructionActions); ok && inst.Type == of11.OFPIT_APPLY_ACTIONS {
			actions = append(actions, inst.Actions...)
		}
	}

	return actions
}

func (r *Datapath) flowMod(mod *of11.FlowMod, instructions []openflow.Entry) ([]*openflow.Message, error) {
	isDelete := mod.Command == of11.OFPFC_DELETE || mod.Command == of11.OFPFC_DELETE_STRICT
	if !isDelete {
		if err := r.validateInstructions(mod.TableID, instructions); err != nil {
			return nil, err
		}
	}

	now := r.clock()
	removed, err := r.flows.apply(mod, instructions, now)
	if err != nil {
		return nil, err
	}
	r.updateFlowMetrics()

	if !isDelete && mod.BufferID != of11.OFP_NO_BUFFER {
		// The flow entry stays even if the buffer is gone.
		packet, err := r.buffers.take(mod.BufferID)
		if err != nil {
			return nil, err
		}
		if err := r.execute(packet.inPort, applyActions(instructions), packet.frame); err != nil {
			return nil, err
		}
	}

	return r.flowRemovedMessages(removed, now), nil
}

func (r *Datapath) flowRemovedMessages(removed []flowRemoval, now time.Time) []*openflow.Message {
	var msgs []*openflow.Message
	for _, v := range removed {
		if v.entry.flags&of11.OFPFF_SEND_FLOW_REM == 0 {
			continue
		}
		msgs = append(msgs, r.factory.NewFlowRemoved(flowRemoved(v.entry, v.reason, now)))
	}

	return msgs
}

func (r *Datapath) updateFlowMetrics() {
	for _, t := range r.flows.tables {
		metrics.SetFlowEntries(strconv.Itoa(int(t.id)), len(t.entries))
	}
}

func (r *Datapath) groupMod(mod *of11.GroupMod, buckets []openflow.Entry) ([]*openflow.Message, error) {
	if mod.Command != of11.OFPGC_DELETE {
		for _, v := range buckets {
			if b, ok := v.(*of11.Bucket); ok {
				if err := r.validateActions(b.Actions); err != nil {
					return nil, err
				}
			}
		}
	}

	deleted, err := r.groups.apply(mod, buckets)
	if err != nil {
		return nil, err
	}

	now := r.clock()
	var removed []flowRemoval
	for _, id := range deleted {
		removed = append(removed, r.flows.deleteGroupFlows(id)...)
	}
	if len(removed) > 0 {
		r.updateFlowMetrics()
	}

	return r.flowRemovedMessages(removed, now), nil
}

func (r *Datapath) portMod(mod *of11.PortMod) ([]*openflow.Message, error) {
	desc, err := r.ports.modify(mod)
	if err != nil {
		return nil, err
	}
	logger.Infof("port %v modified: config=%#x, advertised=%#x", desc.Number, desc.Config, desc.Advertised)

	return []*openflow.Message{r.factory.NewPortStatus(of11.OFPPR_MODIFY, desc)}, nil
}

func (r *Datapath) tableMod(mod *of11.TableMod) error {
	if mod.Config&^of11.OFPTC_TABLE_MISS_MASK != 0 || mod.Config&of11.OFPTC_TABLE_MISS_MASK == of11.OFPTC_TABLE_MISS_MASK {
		return newError(of11.OFPET_TABLE_MOD_FAILED, of11.OFPTMFC_BAD_CONFIG)
	}
	tables, ok := r.flows.selectTables(mod.TableID)
	if !ok {
		return newError(of11.OFPET_TABLE_MOD_FAILED, of11.OFPTMFC_BAD_TABLE)
	}
	for _, t := range tables {
		t.config = mod.Config
	}

	return nil
}

func (r *Datapath) packetOut(po *of11.PacketOut, actions []openflow.Entry, frame []byte) error {
	if err := r.validateActions(actions); err != nil {
		return err
	}

	inPort := po.InPort
	if po.BufferID != of11.OFP_NO_BUFFER {
		packet, err := r.buffers.take(po.BufferID)
		if err != nil {
			return err
		}
		inPort = packet.inPort
		frame = packet.frame
	}

	return r.execute(inPort, actions, frame)
}

// execute counts the frames sent out of physical ports and hands them to the pipeline.
func (r *Datapath) execute(inPort uint32, actions []openflow.Entry, frame []byte) error {
	for _, v := range actions {
		output, ok := v.(*of11.ActionOutput)
		if !ok {
			continue
		}
		switch output.Port {
		case of11.OFPP_ALL, of11.OFPP_FLOOD:
			for _, p := range r.ports.list() {
				if p.desc.Number != inPort {
					p.transmit(len(frame))
				}
			}
		case of11.OFPP_IN_PORT:
			if p, ok := r.ports.get(inPort); ok {
				p.transmit(len(frame))
			}
		default:
			if p, ok := r.ports.get(output.Port); ok {
				p.transmit(len(frame))
			}
		}
	}

	if err := r.pipeline.Execute(inPort, actions, frame); err != nil {
		return errors.Wrap(err, "pipeline")
	}

	return nil
}

func (r *Datapath) queueGetConfig(xid uint32, req *of11.QueueGetConfig) ([]*openflow.Message, error) {
	p, ok := r.ports.get(req.Port)
	if !ok {
		return nil, newError(of11.OFPET_QUEUE_OP_FAILED, of11.OFPQOFC_BAD_PORT)
	}

	var queues []*of11.Queue
	for _, v := range p.queues {
		q := &of11.Queue{ID: v.config.ID}
		if v.config.MinRate > 0 {
			q.Properties = []openflow.Entry{&of11.QueuePropertyMinRate{Rate: v.config.MinRate}}
		} else {
			q.Properties = []openflow.Entry{&of11.QueuePropertyNone{}}
		}
		queues = append(queues, q)
	}

	return []*openflow.Message{r.factory.NewQueueGetConfigReply(xid, req.Port, queues)}, nil
}

// PacketIn hands a frame received on a port to the datapath. The frame
// misses every flow table and goes to the controller unless a table or the
// port says otherwise.
func (r *Datapath) PacketIn(inPort uint32, frame []byte) error {
	msg, err := r.packetIn(inPort, frame)
	if err != nil {
		return err
	}
	if msg != nil {
		r.send([]*openflow.Message{msg})
	}

	return nil
}

func (r *Datapath) packetIn(inPort uint32, frame []byte) (*openflow.Message, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, ok := r.ports.get(inPort)
	if !ok {
		return nil, errors.Errorf("unknown port: %v", inPort)
	}
	if p.desc.Config&(of11.OFPPC_PORT_DOWN|of11.OFPPC_NO_RECV) != 0 {
		p.stats.RxDropped++
		return nil, nil
	}
	p.receive(len(frame))

	var table *flowTable
	for _, t := range r.flows.tables {
		t.lookupCount++
		table = t
		if t.config&of11.OFPTC_TABLE_MISS_MASK != of11.OFPTC_TABLE_MISS_CONTINUE {
			break
		}
	}
	switch table.config & of11.OFPTC_TABLE_MISS_MASK {
	case of11.OFPTC_TABLE_MISS_DROP, of11.OFPTC_TABLE_MISS_CONTINUE:
		// The last table drops what continues past it.
		return nil, nil
	}
	if p.desc.Config&of11.OFPPC_NO_PACKET_IN != 0 {
		return nil, nil
	}

	data := frame
	bufferID := r.buffers.store(inPort, frame)
	if bufferID != of11.OFP_NO_BUFFER && len(data) > int(r.switchConfig.MissSendLen) {
		data = data[:r.switchConfig.MissSendLen]
	}

	return r.factory.NewPacketIn(&of11.PacketIn{
		BufferID:  bufferID,
		InPort:    inPort,
		InPhyPort: inPort,
		TotalLen:  uint16(len(frame)),
		Reason:    of11.OFPR_NO_MATCH,
		TableID:   table.id,
	}, data), nil
}

// SetLinkState changes the link state of a port and notifies the controller.
func (r *Datapath) SetLinkState(number uint32, up bool) error {
	r.mutex.Lock()
	p, ok := r.ports.get(number)
	if !ok {
		r.mutex.Unlock()
		return errors.Errorf("unknown port: %v", number)
	}
	if up {
		p.desc.State = (p.desc.State &^ of11.OFPPS_LINK_DOWN) | of11.OFPPS_LIVE
	} else {
		p.desc.State = (p.desc.State | of11.OFPPS_LINK_DOWN) &^ of11.OFPPS_LIVE
	}
	msg := r.factory.NewPortStatus(of11.OFPPR_MODIFY, p.desc)
	r.mutex.Unlock()

	r.send([]*openflow.Message{msg})

	return nil
}

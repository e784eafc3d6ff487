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

package transceiver

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/TrafficLab/oftest11/metrics"
	"github.com/TrafficLab/oftest11/openflow"
	"github.com/TrafficLab/oftest11/openflow/of11"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var (
	logger = logging.MustGetLogger("transceiver")
)

const (
	// Allowed idle time before we send an echo request to the controller.
	maxIdleTime = 10 * time.Second
	// Unanswered echo requests before we give up on the controller.
	maxPendingEcho = 3
	// Time to wait for the controller's HELLO.
	helloTimeout = 30 * time.Second
	// I/O timeouts (These timeouts should be less than maxIdleTime).
	readTimeout  = 1 * time.Second
	writeTimeout = readTimeout * 2
	// Bytes of an offending message copied into an error reply.
	errorDataLen = 64
)

type Writer interface {
	Write(msg *openflow.Message) error
}

type WriteCloser interface {
	Writer
	Close() error
}

// Handler receives every decoded message except HELLO and echo, which the
// transceiver answers by itself. packet is the message as received and is only
// valid until OnMessage returns.
type Handler interface {
	OnMessage(w Writer, msg *openflow.Message, packet []byte) error
}

type Transceiver struct {
	stream      *Stream
	handler     Handler
	factory     *of11.Factory
	version     uint8
	pingCounter uint
	closed      bool
}

func NewTransceiver(stream *Stream, handler Handler) *Transceiver {
	if stream == nil {
		panic("stream is nil")
	}
	if handler == nil {
		panic("handler is nil")
	}

	return &Transceiver{
		stream:  stream,
		handler: handler,
		factory: of11.NewFactory(),
	}
}

func (r *Transceiver) Version() (negotiated bool, version uint8) {
	if r.version == 0 {
		// Not yet negotiated
		return false, 0
	}

	return true, r.version
}

func isTimeout(err error) bool {
	type Timeout interface {
		Timeout() bool
	}

	if v, ok := errors.Cause(err).(Timeout); ok {
		return v.Timeout()
	}

	return false
}

func isTemporaryErr(err error) bool {
	e, ok := errors.Cause(err).(interface {
		Temporary() bool
	})
	return ok && e.Temporary()
}

func (r *Transceiver) sendEchoRequest() error {
	if r.pingCounter >= maxPendingEcho {
		return errors.New("controller does not respond to our echo request")
	}

	// We use the current timestamp to check network latency between the controller and us.
	timestamp := make([]byte, 8)
	binary.BigEndian.PutUint64(timestamp, uint64(time.Now().UnixNano()))
	if err := r.Write(r.factory.NewEchoRequest(timestamp)); err != nil {
		return errors.Wrap(err, "failed to send ECHO_REQUEST message")
	}
	r.pingCounter++

	return nil
}

// Run exchanges messages with the controller until ctx is canceled or the
// connection is closed. It closes the stream when it returns.
func (r *Transceiver) Run(ctx context.Context) error {
	defer logger.Info("transceiver is closed")
	defer r.Close()

	r.stream.SetReadTimeout(readTimeout)
	r.stream.SetWriteTimeout(writeTimeout)

	// The switch always says HELLO first.
	if err := r.Write(r.factory.NewHello()); err != nil {
		return errors.Wrap(err, "failed to send HELLO message")
	}

	readerCtx, cancelReader := context.WithCancel(ctx)
	defer cancelReader()
	reader := r.runReader(readerCtx)

	// Negotiate the protocol version
	if err := r.negotiate(ctx, reader); err != nil {
		return errors.Wrap(err, "failed to negotiate the protocol version")
	}

	// Infinite loop
	for {
		var packet []byte
		var ok bool
		select {
		case <-ctx.Done():
			logger.Info("context done")
			return nil
		case packet, ok = <-reader:
			if !ok {
				logger.Info("the reader channel is closed")
				return nil
			}
		}

		// Dispatch the incoming packet
		if err := r.dispatch(packet); err != nil {
			if !isTemporaryErr(err) {
				return err
			}
			// Ignore the temporary error. Just log the error and keep go on.
			logger.Errorf("failed to dispatch the packet: %v", err)
		}
	}
}

func (r *Transceiver) negotiate(ctx context.Context, reader <-chan []byte) error {
	select {
	case <-ctx.Done():
		return errors.New("context done")
	case <-time.After(helloTimeout):
		return errors.New("inactive for too long")
	case packet, ok := <-reader:
		if !ok {
			return errors.New("the reader channel is closed")
		}
		// The first message should be HELLO.
		if packet[1] != of11.OFPT_HELLO {
			return errors.New("missing HELLO message")
		}
		xid := binary.BigEndian.Uint32(packet[4:8])

		// We speak only one version, so the peer should speak at least it.
		if packet[0] < of11.Version {
			reply := r.factory.NewError(xid, of11.OFPET_HELLO_FAILED, of11.OFPHFC_INCOMPATIBLE, truncate(packet))
			if err := r.Write(reply); err != nil {
				logger.Errorf("failed to send HELLO_FAILED error: %v", err)
			}
			return errors.Wrapf(openflow.ErrUnsupportedVersion, "peer version %#x", packet[0])
		}
		r.version = of11.Version
		logger.Infof("negotiated to openflow version 1.1 with %v (peer version=%#x)", r.stream.RemoteAddr(), packet[0])

		return nil
	}
}

func (r *Transceiver) runReader(ctx context.Context) <-chan []byte {
	// Buffered channel
	c := make(chan []byte, 4096)
	go func() {
		// The channel c will be closed when this goroutine returns in order to notice the connection has been closed.
		defer close(c)
		defer logger.Info("transceiver reader is closed")

		lastActivated := time.Now()
		for {
			select {
			case <-ctx.Done():
				logger.Info("context done")
				return
			default:
			}

			// Read the next packet
			packet, err := r.stream.ReadMessage()
			if err != nil {
				if !isTimeout(err) {
					logger.Errorf("failed to read the next packet: %v", err)
					return
				}
				// Timeout occurs. Send a ping request if necessary.
				if time.Now().After(lastActivated.Add(maxIdleTime)) {
					if err := r.sendEchoRequest(); err != nil {
						logger.Errorf("failed to send an echo request: %v", err)
						return
					}
					lastActivated = time.Now()
				}
				continue
			}
			// Update the timestamp
			lastActivated = time.Now()

			ok, err := r.handleEcho(packet)
			if err != nil {
				logger.Errorf("failed to handle the echo request or response: %v", err)
				return
			}
			if ok {
				// Do not forward the echo request and response
				// packets because this reader handles them.
				continue
			}

			// Forward messages except the echo request and response.
			select {
			case c <- packet:
			default:
				// Drop the packet if we cannot immediately carry it.
				logger.Error("transceiver buffer full: drop the incoming packet!")
			}
		}
	}()

	return c
}

func (r *Transceiver) Write(msg *openflow.Message) error {
	packet, err := of11.Codec.Pack(msg)
	if err != nil {
		return err
	}

	if _, err := r.stream.Write(packet); err != nil {
		return err
	}
	metrics.RecordMessage(metrics.Sent, of11.Registry.Name(msg.Header.Type))

	return nil
}

func (r *Transceiver) handleEcho(packet []byte) (ok bool, err error) {
	if packet[0] != of11.Version {
		return false, nil
	}

	switch packet[1] {
	case of11.OFPT_ECHO_REQUEST:
		return true, r.handleEchoRequest(packet)
	case of11.OFPT_ECHO_REPLY:
		return true, r.handleEchoReply(packet)
	default:
		// Do not anything for other types of the message
		return false, nil
	}
}

func (r *Transceiver) handleEchoRequest(packet []byte) error {
	msg, _, err := of11.Codec.Unpack(packet)
	if err != nil {
		return err
	}
	metrics.RecordMessage(metrics.Received, "ECHO_REQUEST")

	// Copy transaction ID and data from the incoming echo request message
	if err := r.Write(r.factory.NewEchoReply(msg.Header.XID, msg.Payload)); err != nil {
		return errors.Wrap(err, "failed to send ECHO_REPLY message")
	}

	return nil
}

func (r *Transceiver) handleEchoReply(packet []byte) error {
	msg, _, err := of11.Codec.Unpack(packet)
	if err != nil {
		return err
	}
	metrics.RecordMessage(metrics.Received, "ECHO_REPLY")
	// Any reply proves the controller is alive.
	r.pingCounter = 0

	if len(msg.Payload) != 8 {
		logger.Debug("unexpected ECHO_REPLY data")
		return nil
	}
	sent := time.Unix(0, int64(binary.BigEndian.Uint64(msg.Payload)))
	latency := time.Since(sent)
	logger.Debugf("controller latency: %v", latency)
	metrics.RecordEchoLatency(latency)

	return nil
}

func truncate(packet []byte) []byte {
	if len(packet) > errorDataLen {
		return packet[:errorDataLen]
	}

	return packet
}

func (r *Transceiver) sendError(packet []byte, errType, code uint16) error {
	xid := binary.BigEndian.Uint32(packet[4:8])
	reply := r.factory.NewError(xid, errType, code, truncate(packet))
	if err := r.Write(reply); err != nil {
		return errors.Wrapf(err, "failed to send %v error", of11.ErrorString(errType, code))
	}
	metrics.RecordErrorReply(of11.ErrorString(errType, code))

	return nil
}

func (r *Transceiver) dispatch(packet []byte) error {
	if packet[0] != r.version {
		logger.Errorf("mis-matched OpenFlow version: negotiated=%v, packet=%v", r.version, packet[0])
		metrics.RecordDecodeError("version")
		return r.sendError(packet, of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_VERSION)
	}

	msg, diag, err := of11.Codec.Unpack(packet)
	if !diag.Clean() {
		metrics.RecordDiagnostics(diag)
	}
	if err != nil {
		switch {
		case isUnsupportedType(err):
			logger.Warningf("unsupported message: %v", err)
			metrics.RecordDecodeError("type")
			return r.sendError(packet, of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_TYPE)
		case errors.Is(err, openflow.ErrShortBody):
			logger.Warningf("short message: %v", err)
			metrics.RecordDecodeError("length")
			return r.sendError(packet, of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_LEN)
		case errors.Is(err, of11.ErrUnsupportedMatchType):
			logger.Warningf("bad match: %v", err)
			metrics.RecordDecodeError("match")
			return r.sendError(packet, of11.OFPET_BAD_MATCH, of11.OFPBMC_BAD_TYPE)
		case errors.Is(err, of11.ErrBadMatchLength):
			logger.Warningf("bad match: %v", err)
			metrics.RecordDecodeError("match")
			return r.sendError(packet, of11.OFPET_BAD_MATCH, of11.OFPBMC_BAD_LEN)
		default:
			// The stream has already framed the packet, so the body is at fault.
			logger.Warningf("malformed message: %v", err)
			metrics.RecordDecodeError("body")
			return r.sendError(packet, of11.OFPET_BAD_REQUEST, of11.OFPBRC_BAD_LEN)
		}
	}
	metrics.RecordMessage(metrics.Received, of11.Registry.Name(msg.Header.Type))
	if !diag.Clean() {
		logger.Warningf("%v: %v", of11.Codec.String(msg), diag)
	}

	if msg.Header.Type == of11.OFPT_HELLO {
		logger.Debug("ignore HELLO after negotiation")
		return nil
	}

	return r.handler.OnMessage(r, msg, packet)
}

func isUnsupportedType(err error) bool {
	_, ok := errors.Cause(err).(*openflow.UnsupportedMessageTypeError)
	return ok
}

func (r *Transceiver) Close() error {
	if r.closed {
		return nil
	}

	if err := r.stream.Close(); err != nil {
		return err
	}
	r.closed = true

	return nil
}

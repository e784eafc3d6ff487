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
	"bufio"
	"encoding/binary"
	"io"
	"net"
	"sync"
	"time"

	"github.com/TrafficLab/oftest11/openflow"
)

// Stream is a buffered OpenFlow channel on top of a socket.
type Stream struct {
	// Underlying socket.
	channel io.ReadWriteCloser

	reader struct {
		mutex sync.Mutex
		// NOTE:
		// rd needs locking because Peek() returns a slice of the reader's
		// internal buffer, which is overwritten by subsequent reads.
		rd      *bufio.Reader
		timeout time.Duration
	}

	writer struct {
		mutex   sync.Mutex
		timeout time.Duration
	}
}

type deadline interface {
	SetReadDeadline(time.Time) error
	SetWriteDeadline(time.Time) error
}

// NewStream returns a new buffered channel. bufSize should hold at least one
// maximum sized OpenFlow message.
func NewStream(channel io.ReadWriteCloser, bufSize int) *Stream {
	if bufSize < openflow.MaxMessageLen {
		bufSize = openflow.MaxMessageLen
	}

	c := new(Stream)
	c.channel = channel
	c.reader.rd = bufio.NewReaderSize(channel, bufSize)

	return c
}

func (r *Stream) RemoteAddr() string {
	v, ok := r.channel.(interface {
		RemoteAddr() net.Addr
	})
	if !ok {
		return "unknown"
	}

	return v.RemoteAddr().String()
}

// SetReadTimeout sets the read timeout of the underlying socket if it implements the deadline interface.
func (r *Stream) SetReadTimeout(t time.Duration) {
	r.reader.mutex.Lock()
	defer r.reader.mutex.Unlock()

	r.reader.timeout = t
}

// SetWriteTimeout sets the write timeout of the underlying socket if it implements the deadline interface.
func (r *Stream) SetWriteTimeout(t time.Duration) {
	r.writer.mutex.Lock()
	defer r.writer.mutex.Unlock()

	r.writer.timeout = t
}

// ReadMessage reads the next OpenFlow message as a whole, header included.
// A header whose length field cannot hold the header itself returns
// ErrInvalidPacketLength and the stream is unusable afterwards.
func (r *Stream) ReadMessage() ([]byte, error) {
	r.reader.mutex.Lock()
	defer r.reader.mutex.Unlock()

	r.setReadDeadline()

	header, err := r.reader.rd.Peek(openflow.HeaderLen)
	if err != nil {
		return nil, err
	}
	length := int(binary.BigEndian.Uint16(header[2:4]))
	if length < openflow.HeaderLen {
		return nil, openflow.ErrInvalidPacketLength
	}

	// Wait until we have the whole message in the reader or timeout.
	if _, err := r.reader.rd.Peek(length); err != nil {
		return nil, err
	}
	packet := make([]byte, length)
	if _, err := io.ReadFull(r.reader.rd, packet); err != nil {
		return nil, err
	}

	return packet, nil
}

// NOTE: The caller should lock the reader mutex before calling this function.
func (r *Stream) setReadDeadline() {
	// Directly use the underlying socket, instead of the reader, to set I/O timeout.
	d, ok := r.channel.(deadline)
	if !ok {
		return
	}

	if r.reader.timeout > 0 {
		d.SetReadDeadline(time.Now().Add(r.reader.timeout))
	} else {
		d.SetReadDeadline(time.Time{})
	}
}

// Write writes p as a whole. Concurrent writers never interleave.
func (r *Stream) Write(p []byte) (n int, err error) {
	r.writer.mutex.Lock()
	defer r.writer.mutex.Unlock()

	if d, ok := r.channel.(deadline); ok {
		if r.writer.timeout > 0 {
			d.SetWriteDeadline(time.Now().Add(r.writer.timeout))
		} else {
			d.SetWriteDeadline(time.Time{})
		}
	}

	return r.channel.Write(p)
}

func (r *Stream) Close() error {
	return r.channel.Close()
}

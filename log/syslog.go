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

package log

import (
	"fmt"
	slog "log/syslog"
	"runtime"
	"strings"

	"github.com/op/go-logging"
)

const DefaultFacility = slog.LOG_DAEMON

var facilities = map[string]slog.Priority{
	"kern":   slog.LOG_KERN,
	"user":   slog.LOG_USER,
	"daemon": slog.LOG_DAEMON,
	"local0": slog.LOG_LOCAL0,
	"local1": slog.LOG_LOCAL1,
	"local2": slog.LOG_LOCAL2,
	"local3": slog.LOG_LOCAL3,
	"local4": slog.LOG_LOCAL4,
	"local5": slog.LOG_LOCAL5,
	"local6": slog.LOG_LOCAL6,
	"local7": slog.LOG_LOCAL7,
}

// ParseFacility returns DefaultFacility for an empty or unknown facility name.
func ParseFacility(facility string) (slog.Priority, bool) {
	if facility == "" {
		return DefaultFacility, true
	}
	ret, ok := facilities[strings.ToLower(facility)]
	if !ok {
		return DefaultFacility, false
	}

	return ret, true
}

// Syslog is a go-logging backend for the local syslog daemon.
type Syslog struct {
	writer *slog.Writer
	// Indexed by go-logging level. Each method keeps the facility of writer.
	emit map[logging.Level]func(string) error
}

// NewSyslog returns a backend that writes to the local syslog daemon under
// facility. Records are tagged with prefix and the ID of the logging goroutine.
func NewSyslog(facility slog.Priority, prefix string) (*Syslog, error) {
	w, err := slog.New(facility|slog.LOG_CRIT, prefix)
	if err != nil {
		return nil, err
	}

	return &Syslog{
		writer: w,
		emit: map[logging.Level]func(string) error{
			logging.CRITICAL: w.Crit,
			logging.ERROR:    w.Err,
			logging.WARNING:  w.Warning,
			logging.NOTICE:   w.Notice,
			logging.INFO:     w.Info,
			logging.DEBUG:    w.Debug,
		},
	}, nil
}

func (r *Syslog) Log(level logging.Level, calldepth int, record *logging.Record) error {
	emit, ok := r.emit[level]
	if !ok {
		return fmt.Errorf("unexpected log level: %v", level)
	}

	return emit(fmt.Sprintf("%v (TID=%v)", record.Formatted(calldepth+1), goroutineID()))
}

func (r *Syslog) Close() error {
	return r.writer.Close()
}

func goroutineID() string {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return strings.Fields(strings.TrimPrefix(string(buf[:n]), "goroutine "))[0]
}

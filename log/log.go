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

// Package log builds the go-logging backends of the switch.
package log

import (
	"io"
	slog "log/syslog"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

const (
	DefaultLevel = logging.INFO

	format = `%{level}: %{shortpkg}.%{shortfunc}: %{message}`
)

// Output names accepted by Config.Output. Any other value is a file path.
const (
	OutputSyslog = "syslog"
	OutputStderr = "stderr"
)

type Config struct {
	Output string
	Level  logging.Level
	Prefix string
	// Facility is used by the syslog output. Zero means LOG_KERN, so use
	// ParseFacility to fill it.
	Facility slog.Priority
	Rotation Rotation
}

// Logger is the installed backend of every go-logging logger.
type Logger struct {
	mutex   sync.Mutex
	leveled logging.LeveledBackend
	closer  io.Closer
}

// Init installs a backend for c.Output as the default backend.
func Init(c Config) (*Logger, error) {
	var backend logging.Backend
	var closer io.Closer

	switch c.Output {
	case OutputSyslog:
		b, err := NewSyslog(c.Facility, c.Prefix)
		if err != nil {
			return nil, errors.Wrap(err, "syslog backend")
		}
		backend = b
		closer = b
	case "", OutputStderr:
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	default:
		b := NewFileBackend(c.Output, c.Rotation)
		backend = b
		closer = b
	}
	backend = logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))

	leveled := logging.AddModuleLevel(backend)
	// Set log level for all modules
	leveled.SetLevel(c.Level, "")
	logging.SetBackend(leveled)

	return &Logger{leveled: leveled, closer: closer}, nil
}

// SetLevel changes the level of all modules.
func (r *Logger) SetLevel(level logging.Level) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.leveled.SetLevel(level, "")
}

func (r *Logger) Level() logging.Level {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.leveled.GetLevel("")
}

func (r *Logger) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// ParseLevel returns DefaultLevel if level is not a valid level name.
func ParseLevel(level string) (logging.Level, bool) {
	ret, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return DefaultLevel, false
	}

	return ret, true
}

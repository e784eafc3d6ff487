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
	"github.com/op/go-logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits the size of a log file. Zero values take the defaults of lumberjack.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// FileBackend writes log lines to a file rotated by size.
type FileBackend struct {
	*logging.LogBackend
	writer *lumberjack.Logger
}

func NewFileBackend(path string, r Rotation) *FileBackend {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   r.Compress,
	}

	return &FileBackend{
		LogBackend: logging.NewLogBackend(w, "", 0),
		writer:     w,
	}
}

// Rotate closes the current file and opens a new one.
func (r *FileBackend) Rotate() error {
	return r.writer.Rotate()
}

func (r *FileBackend) Close() error {
	return r.writer.Close()
}

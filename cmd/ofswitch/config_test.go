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

package main

import (
	"bytes"
	"net"
	"testing"

	"github.com/TrafficLab/oftest11/datapath"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func readConfig(t *testing.T, yaml string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(yaml)); err != nil {
		t.Fatalf("failed to read the config: %v", err)
	}

	return v
}

func TestDatapathConfig(t *testing.T) {
	v := readConfig(t, `
controller:
  address: 10.0.0.1:6633
datapath:
  id: 42
  num_tables: 8
  num_buffers: 0
  miss_send_len: 64
  description:
    serial_number: SN-1
  ports:
    - number: 1
      name: eth1
      hw_addr: "02:00:00:00:00:01"
      queues:
        - id: 1
          min_rate: 100
    - number: 2
      speed: 10000000
`)
	if err := validateConfig(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := datapathConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := datapath.DefaultConfig()
	expected.DatapathID = 42
	expected.NumTables = 8
	expected.NumBuffers = 0
	expected.MissSendLen = 64
	expected.Description.SerialNumber = "SN-1"
	expected.Ports = []datapath.PortConfig{
		{Number: 1, Name: "eth1", HWAddr: net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}, Queues: []datapath.QueueConfig{{ID: 1, MinRate: 100}}},
		{Number: 2, Speed: 10000000},
	}
	if !cmp.Equal(c, expected) {
		t.Fatalf("unexpected config: %v", cmp.Diff(expected, c))
	}
}

func TestDefaultDatapathConfig(t *testing.T) {
	c, err := datapathConfig(readConfig(t, "log:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmp.Equal(c, datapath.DefaultConfig()) {
		t.Fatalf("unexpected config: %v", spew.Sdump(c))
	}
}

func TestInvalidConfig(t *testing.T) {
	src := []string{
		"log:\n  level: verbose\n",
		"log:\n  facility: mail\n",
		"controller:\n  address: localhost\n",
		"controller:\n  retry_interval: 0s\n",
		"datapath:\n  num_tables: 0\n",
		"datapath:\n  num_tables: 255\n",
	}
	for _, v := range src {
		if err := validateConfig(readConfig(t, v)); err == nil {
			t.Fatalf("expected error, but no error returns: %q", v)
		}
	}

	// A listening switch does not need the controller address.
	if err := validateConfig(readConfig(t, "controller:\n  listen: \":6653\"\n  address: localhost\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ports := []string{
		"datapath:\n  ports:\n    - number: 1\n      hw_addr: bogus\n",
		"datapath:\n  ports:\n    - number: 1\n    - number: 1\n",
		"datapath:\n  ports:\n    - number: 0\n",
	}
	for _, v := range ports {
		if _, err := datapathConfig(readConfig(t, v)); err == nil {
			t.Fatalf("expected error, but no error returns: %q", v)
		}
	}
}

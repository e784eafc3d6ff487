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
	"net"
	"time"

	"github.com/TrafficLab/oftest11/datapath"
	"github.com/TrafficLab/oftest11/log"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type queueConfig struct {
	ID      uint32 `mapstructure:"id"`
	MinRate uint16 `mapstructure:"min_rate"`
}

type portConfig struct {
	Number uint32        `mapstructure:"number"`
	Name   string        `mapstructure:"name"`
	HWAddr string        `mapstructure:"hw_addr"`
	Speed  uint32        `mapstructure:"speed"`
	Queues []queueConfig `mapstructure:"queues"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", log.OutputSyslog)
	v.SetDefault("log.facility", "daemon")
	v.SetDefault("controller.address", "127.0.0.1:6633")
	v.SetDefault("controller.retry_interval", 5*time.Second)
	v.SetDefault("datapath.id", uint64(datapath.DefaultDatapathID))
	v.SetDefault("datapath.num_tables", datapath.DefaultNumTables)
	v.SetDefault("datapath.num_buffers", datapath.DefaultNumBuffers)
}

func validateConfig(v *viper.Viper) error {
	if len(v.GetString("controller.listen")) == 0 {
		if _, _, err := net.SplitHostPort(v.GetString("controller.address")); err != nil {
			return errors.Wrap(err, "invalid controller.address")
		}
		if v.GetDuration("controller.retry_interval") <= 0 {
			return errors.New("invalid controller.retry_interval")
		}
	}
	if _, ok := log.ParseLevel(v.GetString("log.level")); !ok {
		return errors.New("invalid log.level")
	}
	if _, ok := log.ParseFacility(v.GetString("log.facility")); !ok {
		return errors.New("invalid log.facility")
	}
	if n := v.GetInt("datapath.num_tables"); n <= 0 || n > 0xFE {
		return errors.New("invalid datapath.num_tables")
	}
	if n := v.GetInt64("datapath.num_buffers"); n < 0 || n > 0xFFFFFFFE {
		return errors.New("invalid datapath.num_buffers")
	}

	return nil
}

// datapathConfig maps the datapath section of v to a validated datapath configuration.
func datapathConfig(v *viper.Viper) (datapath.Config, error) {
	c := datapath.DefaultConfig()
	if v.IsSet("datapath.id") {
		c.DatapathID = v.GetUint64("datapath.id")
	}
	if v.IsSet("datapath.num_tables") {
		c.NumTables = uint8(v.GetUint("datapath.num_tables"))
	}
	if v.IsSet("datapath.num_buffers") {
		c.NumBuffers = v.GetUint32("datapath.num_buffers")
	}
	if v.IsSet("datapath.miss_send_len") {
		c.MissSendLen = uint16(v.GetUint("datapath.miss_send_len"))
	}
	for key, field := range map[string]*string{
		"datapath.description.manufacturer":  &c.Description.Manufacturer,
		"datapath.description.hardware":      &c.Description.Hardware,
		"datapath.description.software":      &c.Description.Software,
		"datapath.description.serial_number": &c.Description.SerialNumber,
		"datapath.description.datapath":      &c.Description.Datapath,
	} {
		if v.IsSet(key) {
			*field = v.GetString(key)
		}
	}

	var ports []portConfig
	if err := v.UnmarshalKey("datapath.ports", &ports); err != nil {
		return datapath.Config{}, errors.Wrap(err, "invalid datapath.ports")
	}
	for _, p := range ports {
		port := datapath.PortConfig{
			Number: p.Number,
			Name:   p.Name,
			Speed:  p.Speed,
		}
		if len(p.HWAddr) > 0 {
			addr, err := net.ParseMAC(p.HWAddr)
			if err != nil {
				return datapath.Config{}, errors.Wrapf(err, "invalid hw_addr of port %v", p.Number)
			}
			port.HWAddr = addr
		}
		for _, q := range p.Queues {
			port.Queues = append(port.Queues, datapath.QueueConfig{ID: q.ID, MinRate: q.MinRate})
		}
		c.Ports = append(c.Ports, port)
	}

	if err := c.Validate(); err != nil {
		return datapath.Config{}, err
	}

	return c, nil
}

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
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/TrafficLab/oftest11/datapath"
	"github.com/TrafficLab/oftest11/log"
	"github.com/TrafficLab/oftest11/metrics"

	"github.com/fsnotify/fsnotify"
	"github.com/op/go-logging"
	"github.com/spf13/viper"
)

const (
	programName    = "ofswitch"
	programVersion = "0.1.0"
)

var (
	logger            = logging.MustGetLogger("main")
	loggerInstalled   *log.Logger
	showVersion       = flag.Bool("version", false, "Show program version and exit")
	defaultConfigFile = flag.String("config", fmt.Sprintf("/usr/local/etc/%v.yaml", programName), "absolute path of the configuration file")
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	flag.Parse()
	if *showVersion {
		fmt.Printf("Version: %v\n", programVersion)
		os.Exit(0)
	}

	initConfig()
	if err := initLog(); err != nil {
		logger.Fatalf("failed to init log: %v", err)
	}
	defer loggerInstalled.Close()

	conf, err := datapathConfig(viper.GetViper())
	if err != nil {
		logger.Fatalf("invalid datapath configuration: %v", err)
	}
	dp, err := datapath.New(conf, nil)
	if err != nil {
		logger.Fatalf("failed to create the datapath: %v", err)
	}
	logger.Infof("%v %v started: %v", programName, programVersion, dp)

	metrics.RegisterMetrics()
	ctx, cancel := context.WithCancel(context.Background())
	initSignalHandler(dp, cancel)
	initMetricsServer(ctx)
	go dp.Run(ctx)

	if addr := viper.GetString("controller.listen"); len(addr) > 0 {
		listen(ctx, addr, dp)
	} else {
		connect(ctx, viper.GetString("controller.address"), viper.GetDuration("controller.retry_interval"), dp)
	}
}

func initConfig() {
	viper.SetConfigFile(*defaultConfigFile)
	setDefaults(viper.GetViper())
	// Read the config file.
	if err := viper.ReadInConfig(); err != nil {
		logger.Fatalf("failed to read the config file: %v", err)
	}
	// Watching and re-reading config file whenever it changes.
	viper.OnConfigChange(func(e fsnotify.Event) {
		// Ignore the WRITE operation to avoid reading empty config.
		if e.Op != fsnotify.Write {
			return
		}

		if loggerInstalled != nil {
			level, ok := log.ParseLevel(viper.GetString("log.level"))
			if !ok {
				logger.Warningf("invalid log level=%v, defaulting to %v..", viper.GetString("log.level"), level)
			}
			// Set log level for all modules
			loggerInstalled.SetLevel(level)
			logger.Infof("log level changed to %v", level)
		}
	})
	viper.WatchConfig()
	if err := validateConfig(viper.GetViper()); err != nil {
		logger.Fatalf("failed to validate the configuration: %v", err)
	}
}

func initLog() error {
	level, ok := log.ParseLevel(viper.GetString("log.level"))
	facility, _ := log.ParseFacility(viper.GetString("log.facility"))
	l, err := log.Init(log.Config{
		Output:   viper.GetString("log.output"),
		Level:    level,
		Prefix:   programName,
		Facility: facility,
		Rotation: log.Rotation{
			MaxSizeMB:  viper.GetInt("log.max_size_mb"),
			MaxBackups: viper.GetInt("log.max_backups"),
			MaxAgeDays: viper.GetInt("log.max_age_days"),
			Compress:   viper.GetBool("log.compress"),
		},
	})
	if err != nil {
		return err
	}
	if !ok {
		logger.Infof("invalid log level=%v, defaulting to %v..", viper.GetString("log.level"), level)
	}
	loggerInstalled = l

	return nil
}

func initMetricsServer(ctx context.Context) {
	addr := viper.GetString("metrics.address")
	if len(addr) == 0 {
		return
	}

	go func() {
		if err := metrics.Serve(ctx, addr); err != nil {
			logger.Errorf("failed to run the metrics server: %v", err)
		}
	}()
}

func initSignalHandler(dp *datapath.Datapath, cancel context.CancelFunc) {
	go func() {
		c := make(chan os.Signal, 5)
		signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

		for {
			s := <-c
			if s == syscall.SIGTERM || s == syscall.SIGINT {
				// Graceful shutdown
				logger.Warning("Shutting down...")
				cancel()
				// Timeout for cancelation
				time.Sleep(5 * time.Second)
				os.Exit(0)
			} else if s == syscall.SIGHUP {
				fmt.Println("* Datapath status:")
				fmt.Println(dp.String())
			}
		}
	}()
}

type keepAliver interface {
	SetKeepAlive(keepalive bool) error
	SetKeepAlivePeriod(d time.Duration) error
}

func enableKeepAlive(conn net.Conn) {
	v, ok := conn.(keepAliver)
	if !ok {
		return
	}
	if err := v.SetKeepAlive(true); err != nil {
		logger.Errorf("failed to enable socket keepalive: %v", err)
		return
	}
	v.SetKeepAlivePeriod(5 * time.Second)
}

// connect keeps an active connection to the controller at addr.
func connect(ctx context.Context, addr string, retry time.Duration, dp *datapath.Datapath) {
	dialer := &net.Dialer{Timeout: 5 * time.Second}

	for {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		metrics.RecordConnection(err == nil)
		if err != nil {
			logger.Errorf("failed to connect to the controller %v: %v", addr, err)
		} else {
			logger.Infof("connected to the controller %v", addr)
			enableKeepAlive(conn)
			if err := dp.Serve(ctx, conn); err != nil {
				logger.Errorf("controller session closed: %v", err)
			} else {
				logger.Infof("controller session closed")
			}
		}

		select {
		case <-ctx.Done():
			logger.Debug("terminating the connector loop...")
			return
		case <-time.After(retry):
		}
	}
}

// listen waits for a controller on addr. Controllers are served one at a time.
func listen(ctx context.Context, addr string, dp *datapath.Datapath) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Errorf("failed to listen on %v: %v", addr, err)
		return
	}
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				logger.Debug("terminating the main listener loop...")
				return
			default:
			}
			logger.Errorf("failed to accept a new connection: %v", err)
			continue
		}
		metrics.RecordConnection(true)
		logger.Infof("new controller is connected from %v", conn.RemoteAddr())

		enableKeepAlive(conn)
		if err := dp.Serve(ctx, conn); err != nil {
			logger.Errorf("controller session closed: %v", err)
		}
	}
}

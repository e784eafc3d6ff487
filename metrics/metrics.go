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

package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/TrafficLab/oftest11/openflow"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	logger = logging.MustGetLogger("metrics")

	registerOnce sync.Once

	messages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ofswitch",
			Subsystem: "openflow",
			Name:      "messages_total",
			Help:      "OpenFlow messages exchanged with the controller.",
		},
		[]string{"direction", "type"},
	)
	diagnostics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ofswitch",
			Subsystem: "codec",
			Name:      "diagnostics_total",
			Help:      "Recoverable anomalies found while decoding OpenFlow messages.",
		},
		[]string{"kind", "family"},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ofswitch",
			Subsystem: "codec",
			Name:      "decode_errors_total",
			Help:      "OpenFlow messages that could not be decoded.",
		},
		[]string{"reason"},
	)
	echoLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ofswitch",
			Subsystem: "openflow",
			Name:      "echo_latency_seconds",
			Help:      "Round trip time of echo requests sent to the controller.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	connections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ofswitch",
			Subsystem: "openflow",
			Name:      "connections_total",
			Help:      "Controller connection attempts.",
		},
		[]string{"result"},
	)
	flowEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ofswitch",
			Subsystem: "datapath",
			Name:      "flow_entries",
			Help:      "Number of entries in each flow table.",
		},
		[]string{"table"},
	)
	errorReplies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ofswitch",
			Subsystem: "datapath",
			Name:      "error_replies_total",
			Help:      "OFPT_ERROR messages sent to the controller.",
		},
		[]string{"error"},
	)
)

const (
	Received = "rx"
	Sent     = "tx"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(messages, diagnostics, decodeErrors, echoLatency, connections, flowEntries, errorReplies)
	})
}

func RecordMessage(direction, msgType string) {
	RegisterMetrics()
	messages.WithLabelValues(direction, msgType).Inc()
}

// RecordDiagnostics counts every event of a decode call.
func RecordDiagnostics(d openflow.Diagnostics) {
	RegisterMetrics()
	for _, v := range d.Events {
		diagnostics.WithLabelValues(v.Kind.String(), v.Family).Inc()
	}
}

func RecordDecodeError(reason string) {
	RegisterMetrics()
	decodeErrors.WithLabelValues(reason).Inc()
}

func RecordEchoLatency(d time.Duration) {
	RegisterMetrics()
	echoLatency.Observe(d.Seconds())
}

func RecordConnection(success bool) {
	RegisterMetrics()
	result := "success"
	if !success {
		result = "failure"
	}
	connections.WithLabelValues(result).Inc()
}

func SetFlowEntries(table string, n int) {
	RegisterMetrics()
	flowEntries.WithLabelValues(table).Set(float64(n))
}

func RecordErrorReply(name string) {
	RegisterMetrics()
	errorReplies.WithLabelValues(name).Inc()
}

// Serve exposes the default registry on addr until ctx is canceled.
func Serve(ctx context.Context, addr string) error {
	RegisterMetrics()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("failed to shutdown the metrics server: %v", err)
		}
	}()

	logger.Infof("serving metrics on %v", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "metrics server")
	}

	return nil
}

/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics exports debug log activity as Prometheus metrics.
//
// A Sink is a debuglog.Sink; pass it as handler.Options.Sink (alone or in a
// debuglog.Tee) to count the events a Handler records.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dirpx.dev/dfault/debuglog"
)

// noFault is the fault label of entries that carry no fault.
const noFault = "none"

// Sink counts recorded entries by kind and fault name.
type Sink struct {
	handled *prometheus.CounterVec
}

// NewSink registers the dfault_handled_total counter with reg and returns a
// Sink feeding it. A nil reg registers with prometheus.DefaultRegisterer.
func NewSink(reg prometheus.Registerer) *Sink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Sink{
		handled: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dfault_handled_total",
				Help: "Total number of faults, errors and debug messages recorded by handlers",
			},
			[]string{"kind", "fault"},
		),
	}
}

// Record implements debuglog.Sink.
func (s *Sink) Record(e debuglog.Entry) {
	fault := noFault
	if e.Fault != nil {
		fault = e.Fault.Name()
	}
	s.handled.WithLabelValues(e.Kind.String(), fault).Inc()
}

// Collector exposes the underlying counter vector.
func (s *Sink) Collector() *prometheus.CounterVec { return s.handled }

// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labnet_resolutions_total",
			Help: "Total number of identifier resolutions by match kind",
		},
		[]string{"kind"},
	)
	resolutionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labnet_resolution_failures_total",
			Help: "Total number of failed identifier resolutions by reason",
		},
		[]string{"reason"},
	)
)

func observe(res *Result, err error) {
	if err != nil {
		reason, _ := ReasonOf(err)
		resolutionFailures.WithLabelValues(string(reason)).Inc()
		return
	}
	resolutionsTotal.WithLabelValues(string(res.Kind)).Inc()
}

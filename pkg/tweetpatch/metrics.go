/*
Copyright 2025 The Tweetpatch Authors.

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

package tweetpatch

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	ferror "github.com/tweetpatch/tweetpatch/pkg/error"
)

var (
	updatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tweetpatch_updates_total",
			Help: "Number of update attempts that reached the document, by status code",
		},
		[]string{"code"},
	)
	lastUpdateTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tweetpatch_last_update_timestamp_seconds",
			Help: "Unix time of the last successful update",
		},
	)
)

func observeUpdate(err error) {
	if err == nil {
		updatesTotal.WithLabelValues(strconv.Itoa(200)).Inc()
		lastUpdateTime.SetToCurrentTime()
		return
	}
	code, _ := ferror.GetHTTPError(err)
	updatesTotal.WithLabelValues(strconv.Itoa(code)).Inc()
}

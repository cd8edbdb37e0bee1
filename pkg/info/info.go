/*
Copyright 2017 The Fission Authors.

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

package info

import (
	"encoding/json"
	"runtime"
	"time"
)

// Set at build time with -ldflags "-X github.com/tweetpatch/tweetpatch/pkg/info.Version=...".
var (
	GitCommit string // $(git rev-parse HEAD)
	BuildDate string // $(date -u +'%Y-%m-%dT%H:%M:%SZ')
	Version   string // tweetpatch release version
)

type (
	BuildMeta struct {
		GitCommit string `json:"GitCommit,omitempty"`
		BuildDate string `json:"BuildDate,omitempty"`
		Version   string `json:"Version,omitempty"`
		GoVersion string `json:"GoVersion,omitempty"`
	}

	Time struct {
		Timezone    string    `json:"Timezone,omitempty"`
		CurrentTime time.Time `json:"CurrentTime"`
	}

	ServerInfo struct {
		Build      BuildMeta `json:"Build"`
		ServerTime Time      `json:"ServerTime"`
	}
)

func BuildInfo() BuildMeta {
	version := Version
	if version == "" {
		version = "dev"
	}
	return BuildMeta{
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		Version:   version,
		GoVersion: runtime.Version(),
	}
}

func (info BuildMeta) String() string {
	v, _ := json.Marshal(info)
	return string(v)
}

func TimeInfo() Time {
	t := time.Now()
	zone, _ := t.Local().Zone()
	return Time{
		Timezone:    zone,
		CurrentTime: t,
	}
}

func ApiInfo() ServerInfo {
	return ServerInfo{
		Build:      BuildInfo(),
		ServerTime: TimeInfo(),
	}
}

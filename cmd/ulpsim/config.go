// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
)

// config holds the settings of a run. Flag defaults come from the
// environment, which may be populated from a .env file.
type config struct {
	image      string
	intervalUS uint32
	duration   time.Duration
	hold       time.Duration
	realtime   bool
	traceDB    string
	device     string
}

func envConfig() config {
	if err := godotenv.Load(); err != nil {
		glog.V(1).Infof("no .env file: %v", err)
	}
	return config{
		image:      os.Getenv("ULP_IMAGE"),
		intervalUS: uint32(envInt("ULP_INTERVAL_US", 1000000)),
		duration:   envDuration("ULP_DURATION", 5*time.Second),
		hold:       envDuration("ULP_HOLD", time.Second),
		realtime:   envBool("ULP_REALTIME", false),
		traceDB:    os.Getenv("ULP_TRACE_DB"),
		device:     os.Getenv("ULP_DEVICE"),
	}
}

func envInt(key string, def uint64) uint64 {
	if s, ok := os.LookupEnv(key); ok {
		v, err := strconv.ParseUint(s, 0, 32)
		if err == nil {
			return v
		}
		glog.Warningf("%s: %v, using %d", key, err, def)
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if s, ok := os.LookupEnv(key); ok {
		v, err := time.ParseDuration(s)
		if err == nil {
			return v
		}
		glog.Warningf("%s: %v, using %s", key, err, def)
	}
	return def
}

func envBool(key string, def bool) bool {
	if s, ok := os.LookupEnv(key); ok {
		v, err := strconv.ParseBool(s)
		if err == nil {
			return v
		}
		glog.Warningf("%s: %v, using %t", key, err, def)
	}
	return def
}

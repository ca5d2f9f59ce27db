// Copyright 2025 Andrew McRae
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
	"flag"
	"log"
	"os"

	"powernode/node"
)

var configFile = flag.String("config", "", "Config file")
var logDate = flag.Bool("logtime", false, "Log date and time")

func main() {
	flag.Parse()
	if !*logDate {
		// Turn off date/time tags on logs
		log.SetFlags(0)
	}
	conf, err := os.ReadFile(*configFile)
	if err != nil {
		log.Fatalf("Can't read config %s: %v", *configFile, err)
	}
	n, err := node.New(conf)
	if err != nil {
		log.Fatalf("Initialisation error: %v", err)
	}
	if err := n.Run(); err != nil {
		log.Fatalf("Run error: %v", err)
	}
}

// Package main — точка входа channel-control (HTTP API + alert worker).
package main

import (
	"log"

	"github.com/streamops/channel-control/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

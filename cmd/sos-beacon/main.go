package main

import (
	"github.com/oshokin/sos-beacon/cmd/sos-beacon/cmd"
)

func main() {
	cmd.Execute()
}

// fivegscan - 5G harness log analyzer
//
// fivegscan classifies the lines of a 5G test harness log, extracts RTT
// samples and reports packet, error and latency spike metrics.
package main

import (
	"os"

	"github.com/ccollicutt/fivegscan/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

//go:build statsview
// +build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is used when Launch is given an empty address
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// Launch starts the stats server in a new goroutine
func Launch(output io.Writer, address string) error {
	if address == "" {
		address = DefaultAddress
	}

	go func() {
		viewer.SetConfiguration(viewer.WithAddr(address))
		statsview.New().Start()
	}()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", address, path)
	return nil
}

// Available reports whether the stats server was compiled in
func Available() bool {
	return true
}

// Package statsview provides an optional HTTP server running locally that
// offers runtime statistics of the interpreter process.
//
// After launch, graphical statistics are viewable at
//
//	localhost:12600/debug/statsview
//
// and the standard Go pprof statistics at
//
//	localhost:12600/debug/pprof/
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the listen address of the statistics server.
const Address = "localhost:12600"

const url = "/debug/statsview"

// URL returns the address of the statistics page.
func URL() string {
	return "http://" + Address + url
}

// Launch starts the statistics server in a new goroutine.
func Launch(logger *log.Logger) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Info("Stats server available", log.String("url", URL()))
}

// Package statsview serves live runtime charts (heap, goroutines, GC) over
// HTTP while the game runs. The server is only compiled in with the
// statsview build tag:
//
//	go build -tags statsview ./cmd/ringquest
//	ringquest -statsview localhost:12600
//
// and the charts are then at http://localhost:12600/debug/statsview
package statsview

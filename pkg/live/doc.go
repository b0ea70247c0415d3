// Package live serves one in-memory document over HTTP and pushes every
// change to connected browsers.
//
// Routes:
//
//	GET  /                 current document as HTML
//	GET  /query?selector=  matching elements as JSON
//	POST /ops              run a script (YAML or JSON body)
//	GET  /live             WebSocket stream of snapshots
//	GET  /metrics          Prometheus metrics
//	GET  /healthz          liveness
//
// Scripts run one at a time. Host calls are counted into the server's own
// Prometheus registry and logged through slog.
package live

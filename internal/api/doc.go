// Package api implements the HTTP server.
//
// Three routes are exposed:
//
//	POST /api/v1/solve         problem document in, layout JSON out
//	GET  /api/v1/layouts/{id}  fetch a previously solved layout
//	GET  /healthz              liveness probe
//
// The solve route accepts the same YAML/JSON problem documents as the CLI
// (see [spec.Read]) and never fails on an unsatisfiable problem; the outcome
// travels inside the layout. Solved layouts are saved to the configured
// [store.Store] and announced through the Location header.
package api

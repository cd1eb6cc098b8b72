// Package http implements the local HTTP API of skyshelf.
//
// It exposes the query state, filtered post pages, authors and statistics of
// every collection as JSON, accepts refetch and cache clearing commands, and
// streams orchestrator state changes over a websocket. Request tracing,
// access logging, response compression and ETags are handled by middleware
// before requests reach the service layer.
package http

// Package http implements the HTTP transport of both runtimes.
//
// [Handler] serves the remote products API (list, register, heartbeat,
// version, metrics and the static application shell). [LocalHandler] serves
// the client's loopback API on top of the sync coordinator and proxies shell
// requests through the asset cache. Request tracing, access logging,
// metrics, response compression and integrity checks are applied here before
// requests reach the service layer.
package http

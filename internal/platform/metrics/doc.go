// Package metrics owns the Prometheus collectors of the service: HTTP
// request counters and latencies labelled by chi route pattern, task
// operation outcomes and cache hit rates. Every Metrics value has its own
// registry, exposed through Handler.
package metrics

/*
Package observability turns schema and property-access events into Prometheus metrics.

Metrics exposes a domain.Hooks value that can be passed to the registry and to
every object, so that accepted and rejected accesses, schema builds and enum
resolutions are counted per class.
*/
package observability

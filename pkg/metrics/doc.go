// Package metrics exposes Prometheus metrics for a gateway instance.
//
// Every Server owns a Metrics value with its own registry, served at
// /metrics:
//
//   - mockigd_control_calls_total: control calls (labels: action, outcome)
//   - mockigd_control_call_duration_seconds: control call latency (labels: action)
//   - mockigd_mock_hits_total: calls answered per mock (labels: mock_id)
//   - mockigd_responder_failures_total: custom responder errors and panics
//   - mockigd_discovery_responses_total: answered searches (labels: st)
//   - mockigd_mocks_registered: registry size
//   - mockigd_uptime_seconds: time since the server was created
//
// # Label Conventions
//
// The action label is the catalog operation name. Names outside the catalog
// are reported as "unknown" and unparsable payloads as "invalid", which
// keeps cardinality bounded whatever clients send.
package metrics

// Package sink delivers finished onboarding forms to external destinations.
//
// The primary destination is the spreadsheet webhook, which is called in
// opaque mode: only transport failures are visible, never the response.
// Optional sinks archive each submission to S3-compatible object storage
// or append it to a local xlsx workbook. Fanout sends one submission to
// all configured sinks in parallel and implements onboarding.Deliverer.
package sink

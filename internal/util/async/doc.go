// Package async provides utilities for parallel task execution with
// error collection.
//
// The [Run] function executes multiple operations concurrently and
// reports every outcome. It is used by the sink fan-out to deliver one
// submission to several destinations at once.
package async

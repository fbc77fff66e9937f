// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - FormBuilder: Fluent builder for creating filled-in onboarding forms
//   - RecordingDeliverer: Deliverer that keeps every form it receives
//   - NoSleep: Wizard option that skips the submission pause
//
// Usage:
//
//	form := testing.NewFormBuilder().
//	    WithBusinessName("Luna Coffee").
//	    WithImage(onboarding.ProductA, "data:image/png;base64,AA==").
//	    Build()
//
//	rec := &testing.RecordingDeliverer{}
//	w := onboarding.NewWizard(rec, testing.NoSleep())
package testing

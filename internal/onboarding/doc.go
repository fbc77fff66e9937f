// Package onboarding implements the merchant onboarding state machine.
//
// A Wizard owns the current step and the accumulated FormState. Front ends
// (the Bubble Tea TUI, the huh prompt runner and the HTTP adapter) drive it
// through a small command set: advance, retreat, set-field,
// set-product-field and submit. Submission is best-effort: whatever the
// Deliverer reports, the wizard always ends on the SUCCESS step.
package onboarding

// Package prompt drives the onboarding wizard with line-oriented huh forms.
//
// It is the front end used when stdout is not a terminal or when the user
// asks for accessible mode. Each step becomes one form; the loop in Run
// turns the answers into wizard commands, so navigation and submission
// behave exactly as in the full-screen interface.
package prompt

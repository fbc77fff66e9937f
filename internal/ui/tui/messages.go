// Package tui provides a Bubble Tea front end for the onboarding wizard.
package tui

import "github.com/imamik/onboard/internal/onboarding"

// TickMsg advances the spinner while work is in flight.
type TickMsg struct{}

// deliveredMsg reports that the submission delivery and pacing delay are over.
type deliveredMsg struct{}

// imageEncodedMsg carries the result of encoding an image file.
type imageEncodedMsg struct {
	product onboarding.ProductKey
	path    string
	payload string
	err     error
}

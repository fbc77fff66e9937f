package prompt

import "errors"

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("onboarding aborted")

package dialogue

import "errors"

var (
	// ErrMissingDeviceID indicates the request carried no device identity.
	ErrMissingDeviceID = errors.New("device_id is required")

	// ErrMissingUserInput indicates an empty user turn.
	ErrMissingUserInput = errors.New("user_input is required")
)

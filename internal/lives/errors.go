package lives

import "errors"

// ErrLiveNotFound is returned when the requested live does not exist.
var ErrLiveNotFound = errors.New("live not found")

package workers

import "errors"

// ErrUnknownRefreshCollection is returned when the refresh job is configured
// with a collection that does not exist.
var ErrUnknownRefreshCollection = errors.New("unknown collection in refresh list")

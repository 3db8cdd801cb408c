package format

import "errors"

// ErrInvalidLoadCount is returned when asked for other than 1 to 3 load averages.
var ErrInvalidLoadCount = errors.New("number of load averages must be 1, 2 or 3")

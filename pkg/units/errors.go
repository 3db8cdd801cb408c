package units

import "errors"

// ErrParse is returned when a humanized byte string cannot be read back.
var ErrParse = errors.New("malformed byte string")

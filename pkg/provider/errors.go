package provider

import "errors"

var (
	// ErrRead is matched by every ReadError.
	ErrRead = errors.New("failed to read system metric")

	// ErrUnknownProvider is returned by New for an unrecognized name.
	ErrUnknownProvider = errors.New("unknown metrics provider")

	// ErrNoSensor is returned when no temperature sensor can be found.
	ErrNoSensor = errors.New("no temperature sensor found")

	// ErrMalformed is returned when an OS source has an unexpected layout.
	ErrMalformed = errors.New("malformed system data")
)

// ReadError is returned when a provider could not supply a reading.
type ReadError struct {
	Source string
	Err    error
}

func (e ReadError) Error() string {
	return "read " + e.Source + ": " + e.Err.Error()
}

func (e ReadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRead) hold for every ReadError.
func (e ReadError) Is(target error) bool {
	return target == ErrRead
}

func readError(source string, err error) error {
	return ReadError{Source: source, Err: err}
}

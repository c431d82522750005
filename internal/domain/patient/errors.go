package patient

import "errors"

// ErrPatientNotFound is returned by write operations against an id that no
// longer exists. Reads treat absence as a nil result instead.
var ErrPatientNotFound = errors.New("patient not found")

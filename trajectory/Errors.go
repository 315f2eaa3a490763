package trajectory

import "errors"

// BufferError implements errors unique to a trajectory buffer.
type BufferError struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *BufferError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

var errOutOfRangeBatch = errors.New("batch size and training length " +
	"too large given the current number of data points")

var errLengthMismatch = errors.New("fields are not of same length")

// IsOutOfRangeBatch returns whether or not an error reports that a
// requested batch size and training length combination exceeds the
// number of sequences available in a field.
func IsOutOfRangeBatch(err error) bool {
	if bufferErr, ok := err.(*BufferError); ok {
		err = bufferErr.Err
	}
	return err == errOutOfRangeBatch
}

// IsLengthMismatch returns whether or not an error reports that an
// operation requiring equal-length fields was called on fields of
// differing lengths.
func IsLengthMismatch(err error) bool {
	if bufferErr, ok := err.(*BufferError); ok {
		err = bufferErr.Err
	}
	return err == errLengthMismatch
}

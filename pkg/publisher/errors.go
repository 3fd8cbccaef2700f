package publisher

import (
	"fmt"
)

// ErrReadFolder implements "error", for the description see Error.
type ErrReadFolder struct {
	Folder string
	Err    error
}

func (err ErrReadFolder) Error() string {
	return fmt.Sprintf("unable to read the release folder '%s': %v", err.Folder, err.Err)
}

func (err ErrReadFolder) Unwrap() error {
	return err.Err
}

// ErrUpload means an object was not uploaded. The objects uploaded before
// it are left in place.
type ErrUpload struct {
	Key string
	Err error
}

func (err ErrUpload) Error() string {
	return fmt.Sprintf("unable to upload '%s': %v", err.Key, err.Err)
}

func (err ErrUpload) Unwrap() error {
	return err.Err
}

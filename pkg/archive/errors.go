package archive

import (
	"fmt"
)

// ErrOpenArchive implements "error", for the description see Error.
type ErrOpenArchive struct {
	Path string
	Err  error
}

func (err ErrOpenArchive) Error() string {
	return fmt.Sprintf("unable to open archive '%s': %v", err.Path, err.Err)
}

func (err ErrOpenArchive) Unwrap() error {
	return err.Err
}

// ErrUnsafePath means an archive entry points outside of the destination directory.
type ErrUnsafePath struct {
	Name string
}

func (err ErrUnsafePath) Error() string {
	return fmt.Sprintf("archive entry '%s' points outside of the destination directory", err.Name)
}

// ErrExtract implements "error", for the description see Error.
type ErrExtract struct {
	Name string
	Err  error
}

func (err ErrExtract) Error() string {
	return fmt.Sprintf("unable to extract '%s': %v", err.Name, err.Err)
}

func (err ErrExtract) Unwrap() error {
	return err.Err
}

// ErrPack implements "error", for the description see Error.
type ErrPack struct {
	Path string
	Err  error
}

func (err ErrPack) Error() string {
	return fmt.Sprintf("unable to create archive '%s': %v", err.Path, err.Err)
}

func (err ErrPack) Unwrap() error {
	return err.Err
}

package releasecatalog

import (
	"fmt"

	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// ErrUnknownScheme implements "error", for the description see Error.
type ErrUnknownScheme struct {
	URL    string
	Scheme string
}

func (err ErrUnknownScheme) Error() string {
	return fmt.Sprintf("unknown catalog scheme '%s' in '%s' (expected fs://, mysql:// or object://)", err.Scheme, err.URL)
}

// IsConfigurationFault returns true.
func (err ErrUnknownScheme) IsConfigurationFault() bool {
	return true
}

// ErrNoObjectStorage implements "error", for the description see Error.
type ErrNoObjectStorage struct{}

func (err ErrNoObjectStorage) Error() string {
	return "the object:// catalog requires an object storage, but it is not configured"
}

// IsConfigurationFault returns true.
func (err ErrNoObjectStorage) IsConfigurationFault() bool {
	return true
}

// ErrAlreadyExists implements "error", for the description see Error.
type ErrAlreadyExists struct {
	Tag types.Tag
	Err error
}

func (err ErrAlreadyExists) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("tag '%s' already has a release record", err.Tag)
	}
	return fmt.Sprintf("tag '%s' already has a release record: %v", err.Tag, err.Err)
}

func (err ErrAlreadyExists) Unwrap() error {
	return err.Err
}

// ErrNotFound implements "error", for the description see Error.
type ErrNotFound struct {
	Tag types.Tag
}

func (err ErrNotFound) Error() string {
	return fmt.Sprintf("tag '%s' has no release record", err.Tag)
}

// ErrInitMySQL implements "error", for the description see Error.
type ErrInitMySQL struct {
	Err error
}

func (err ErrInitMySQL) Error() string {
	return fmt.Sprintf("unable to initialize a MySQL client: %v", err.Err)
}

func (err ErrInitMySQL) Unwrap() error {
	return err.Err
}

// ErrMySQLPing implements "error", for the description see Error.
type ErrMySQLPing struct {
	Err error
}

func (err ErrMySQLPing) Error() string {
	return fmt.Sprintf("unable to ping the MySQL server: %v", err.Err)
}

func (err ErrMySQLPing) Unwrap() error {
	return err.Err
}

// ErrUnableToInsert implements "error", for the description see Error.
type ErrUnableToInsert struct {
	Tag types.Tag
	Err error
}

func (err ErrUnableToInsert) Error() string {
	return fmt.Sprintf("unable to insert the record of '%s': %v", err.Tag, err.Err)
}

func (err ErrUnableToInsert) Unwrap() error {
	return err.Err
}

// ErrSelect implements "error", for the description see Error.
type ErrSelect struct {
	Err error
}

func (err ErrSelect) Error() string {
	return fmt.Sprintf("unable to select rows from MySQL: %v", err.Err)
}

func (err ErrSelect) Unwrap() error {
	return err.Err
}

// ErrReadRecord implements "error", for the description see Error.
type ErrReadRecord struct {
	Tag types.Tag
	Err error
}

func (err ErrReadRecord) Error() string {
	return fmt.Sprintf("unable to read the record of '%s': %v", err.Tag, err.Err)
}

func (err ErrReadRecord) Unwrap() error {
	return err.Err
}

// ErrWriteRecord implements "error", for the description see Error.
type ErrWriteRecord struct {
	Tag types.Tag
	Err error
}

func (err ErrWriteRecord) Error() string {
	return fmt.Sprintf("unable to write the record of '%s': %v", err.Tag, err.Err)
}

func (err ErrWriteRecord) Unwrap() error {
	return err.Err
}

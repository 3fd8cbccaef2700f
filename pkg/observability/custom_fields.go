package observability

type FieldPID int

type FieldUID int

type FieldUsername string

type FieldHostname string

// FieldRunID identifies a single run of the release pipeline.
type FieldRunID string

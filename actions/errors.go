package actions

import (
	"fmt"
)

// StepNamer is implemented by all pipeline error types so callers can name the
// failing step without unwrapping.
type StepNamer interface {
	FailedStep() string
}

// SchemaError is returned when a DDL statement fails during schema reset.
type SchemaError struct {
	Statement string
	Err       error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema reset failed on %q: %v", e.Statement, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) FailedStep() string { return "reset_schema" }

// LoadError is returned when a COPY into a staging table fails.
// RejectedRows holds the stl_load_errors count for the COPY when Redshift
// supplies one, else -1.
type LoadError struct {
	Relation     string
	RejectedRows int64
	Err          error
}

func (e *LoadError) Error() string {
	if e.RejectedRows >= 0 {
		return fmt.Sprintf("load of %v failed with %v rejected record(s): %v", e.Relation, e.RejectedRows, e.Err)
	}
	return fmt.Sprintf("load of %v failed: %v", e.Relation, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) FailedStep() string { return "load_" + e.Relation }

// TransformError is returned when one of the INSERT..SELECT transform steps fails.
type TransformError struct {
	Step string
	Err  error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform step %v failed: %v", e.Step, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

func (e *TransformError) FailedStep() string { return e.Step }

// FailedStepName extracts the failing step identity from a pipeline error.
// Returns empty string for nil or foreign errors.
func FailedStepName(err error) string {
	if err == nil {
		return ""
	}
	if s, ok := err.(StepNamer); ok {
		return s.FailedStep()
	}
	return ""
}

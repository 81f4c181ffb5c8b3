package actions

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadErrorMessageWithRejects(t *testing.T) {
	cause := errors.New("copy aborted")
	err := &LoadError{Relation: "staging_events", RejectedRows: 3, Err: cause}
	if !strings.Contains(err.Error(), "3 rejected record(s)") {
		t.Fatal("rejected count missing from message: ", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to unwrap")
	}
}

func TestLoadErrorMessageUnknownRejects(t *testing.T) {
	err := &LoadError{Relation: "staging_songs", RejectedRows: -1, Err: errors.New("boom")}
	if strings.Contains(err.Error(), "rejected") {
		t.Fatal("unknown reject count should not be reported: ", err.Error())
	}
}

func TestFailedStepName(t *testing.T) {
	if got := FailedStepName(nil); got != "" {
		t.Fatal("expected empty step for nil error; got ", got)
	}
	if got := FailedStepName(errors.New("plain")); got != "" {
		t.Fatal("expected empty step for a foreign error; got ", got)
	}
	if got := FailedStepName(&TransformError{Step: "dim_users", Err: errors.New("x")}); got != "dim_users" {
		t.Fatal("unexpected step: ", got)
	}
	if got := FailedStepName(&SchemaError{Statement: "DROP", Err: errors.New("x")}); got != "reset_schema" {
		t.Fatal("unexpected step: ", got)
	}
}

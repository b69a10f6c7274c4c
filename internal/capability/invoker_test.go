package capability

import (
	"errors"
	"strings"
	"testing"
)

func TestError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(InitiateComms, cause)

	if !errors.Is(err, cause) {
		t.Error("Unwrap must expose the cause")
	}
	if !strings.Contains(err.Error(), InitiateComms) {
		t.Errorf("message must carry the capability name: %s", err.Error())
	}
}

func TestError_TimeoutMessage(t *testing.T) {
	err := &Error{Capability: AnalyzeImpact, Timeout: true, Err: errors.New("deadline exceeded")}

	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("timeout errors should say so: %s", err.Error())
	}
}

func TestError_ErrorsAsThroughWrapping(t *testing.T) {
	inner := NewError(LookupPolicy, errors.New("not found"))
	wrapped := errors.Join(errors.New("tier 1"), inner)

	var cerr *Error
	if !errors.As(wrapped, &cerr) {
		t.Fatal("errors.As should find the capability error")
	}
	if cerr.Capability != LookupPolicy {
		t.Errorf("wrong capability: %s", cerr.Capability)
	}
}

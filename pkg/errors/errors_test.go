package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeUnsupportedLockfile, "no collector for %s", "go.sum"), "UNSUPPORTED_LOCKFILE: no collector for go.sum"},
		{"wrapped", Wrap(ErrCodeInvalidPolicy, errors.New("bad outcome"), "license MIT"), "INVALID_POLICY: license MIT: bad outcome"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "GET registry.npmjs.org")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestCodeLookup(t *testing.T) {
	nested := fmt.Errorf("check: %w", Wrap(ErrCodeInvalidLockfile, New(ErrCodeInvalidInput, "inner"), "outer"))

	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
	}{
		{"direct", New(ErrCodeFileNotFound, ".licrc"), ErrCodeFileNotFound, true, ErrCodeFileNotFound},
		{"other code", New(ErrCodeFileNotFound, ".licrc"), ErrCodeNetwork, false, ErrCodeFileNotFound},
		{"outermost code wins", nested, ErrCodeInvalidLockfile, true, ErrCodeInvalidLockfile},
		{"plain", errors.New("plain"), ErrCodeInternal, false, ""},
		{"nil", nil, ErrCodeInternal, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "no dependency file given")); got != "no dependency file given" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestUserMessageWithCause(t *testing.T) {
	err := Wrap(ErrCodeInvalidLockfile, errors.New("unexpected EOF"), "parse package-lock.json")
	want := "parse package-lock.json: unexpected EOF"
	if got := UserMessage(err); got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"non compliant", New(ErrCodeNonCompliant, "2 invalid dependencies"), 1},
		{"unsupported lockfile", New(ErrCodeUnsupportedLockfile, "go.sum"), 2},
		{"invalid lockfile", New(ErrCodeInvalidLockfile, "bad json"), 2},
		{"invalid policy", New(ErrCodeInvalidPolicy, "bad outcome"), 2},
		{"file not found", New(ErrCodeFileNotFound, ".licrc"), 2},
		{"internal", New(ErrCodeInternal, "boom"), 3},
		{"plain", errors.New("plain"), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorIsMatchesCode(t *testing.T) {
	sentinel := New(ErrCodeInvalidLockfile, "invalid lockfile")
	err := Wrap(ErrCodeInvalidLockfile, errors.New("eof"), "parse yarn.lock")

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should match errors with the same code")
	}
	if errors.Is(New(ErrCodeNetwork, "down"), sentinel) {
		t.Error("errors.Is should not match a different code")
	}
	if !errors.Is(fmt.Errorf("run: %w", err), sentinel) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

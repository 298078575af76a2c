package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/npillmayer/vstyle/errors"
)

func TestErrorCodes(t *testing.T) {
	err := errors.New(errors.ErrCodeConfiguration, "unknown gradient kind %q", "spiral")
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected error to be a configuration error, is %v", err)
	}
	if errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("expected error not to be a spec error")
	}
	if err.Error() != `INVALID_CONFIGURATION: unknown gradient kind "spiral"` {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestErrorWrap(t *testing.T) {
	cause := stderrors.New("bad yaml")
	err := errors.Wrap(errors.ErrCodeInvalidSpec, cause, "cannot decode %s", "marks.yaml")
	wrapped := fmt.Errorf("loading: %w", err)
	if errors.GetCode(wrapped) != errors.ErrCodeInvalidSpec {
		t.Errorf("expected code INVALID_SPEC, is %q", errors.GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, cause) {
		t.Errorf("expected cause to be reachable by errors.Is")
	}
	if errors.GetCode(cause) != "" {
		t.Errorf("expected plain error to have no code")
	}
}

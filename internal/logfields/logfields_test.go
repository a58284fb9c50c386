package logfields

import (
	"errors"
	"testing"
)

func TestError_NilError(t *testing.T) {
	attr := Error(nil)
	if attr.Value.String() != "" {
		t.Errorf("expected empty string for nil error, got %q", attr.Value.String())
	}
}

func TestError_WrapsMessage(t *testing.T) {
	attr := Error(errors.New("push rejected"))
	if attr.Key != KeyError {
		t.Errorf("expected key %q, got %q", KeyError, attr.Key)
	}
	if attr.Value.String() != "push rejected" {
		t.Errorf("unexpected value: %q", attr.Value.String())
	}
}

func TestStep_Key(t *testing.T) {
	attr := Step("docs")
	if attr.Key != KeyStep || attr.Value.String() != "docs" {
		t.Errorf("unexpected attr: %v", attr)
	}
}

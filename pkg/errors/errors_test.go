package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad format: %s", "webp")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "bad format: webp" {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "INVALID_INPUT") {
		t.Errorf("Error() should contain code: %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetching %s", "http://example.com/bg.png")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() should include cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeExportTainted, "surface is tainted")

	if !Is(err, ErrCodeExportTainted) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeExportFailed) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeExportTainted) {
		t.Error("Is should not match plain errors")
	}

	// Code survives wrapping with fmt.Errorf
	wrapped := fmt.Errorf("export: %w", err)
	if !Is(wrapped, ErrCodeExportTainted) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeStore, "save rejected")); got != ErrCodeStore {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeStore)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeExportFailed, "fallback surface produced no bytes")
	if msg := UserMessage(err); msg != "fallback surface produced no bytes" {
		t.Errorf("UserMessage = %q", msg)
	}
	plain := stderrors.New("boom")
	if msg := UserMessage(plain); msg != "boom" {
		t.Errorf("UserMessage on plain error = %q", msg)
	}
}

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeOK, 200},
		{CodeUnauthorized, 401},
		{CodeNotFound, 404},
		{CodeInternalServerError, 500},
		{CodeMissingHeader, 200},
		{CodeMissingParam, 200},
		{CodeFolderNotExist, 200},
		{CodeWorkspaceCurrentCannotDelete, 200},
		{CodeTagNotExist, 200},
	}

	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("Code(%d).HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(E(CodeFolderNotEmpty)); got != CodeFolderNotEmpty {
		t.Errorf("CodeOf(business error) = %d", got)
	}
	if got := CodeOf(fmt.Errorf("wrapped: %w", E(CodeAppNotExist))); got != CodeAppNotExist {
		t.Errorf("CodeOf(wrapped business error) = %d", got)
	}
	if got := CodeOf(errors.New("driver exploded")); got != CodeInternalServerError {
		t.Errorf("CodeOf(plain error) = %d, want internal", got)
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("load folder: %w", E(CodeFolderNotExist))
	if !IsCode(err, CodeFolderNotExist) {
		t.Error("IsCode() missed wrapped business error")
	}
	if IsCode(err, CodeFolderNotEmpty) {
		t.Error("IsCode() matched wrong code")
	}
	if IsCode(errors.New("plain"), CodeFolderNotExist) {
		t.Error("IsCode() matched non-business error")
	}
}

func TestEfArgs(t *testing.T) {
	err := Ef(CodeMissingParam, "field", "name")
	if err.Args["field"] != "name" {
		t.Errorf("Args = %v", err.Args)
	}
	// Odd trailing key is dropped rather than panicking.
	err = Ef(CodeIllegalParam, "field", "seq", "dangling")
	if len(err.Args) != 1 {
		t.Errorf("Args = %v, want single pair", err.Args)
	}
}

package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()

	if err := Authorize(owner, owner, "edit this"); err != nil {
		t.Fatalf("owner denied: %v", err)
	}

	for name, actor := range map[string]uuid.UUID{"stranger": uuid.New(), "anonymous": uuid.Nil} {
		err := Authorize(actor, owner, "edit this")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("%s: err = %v, want ErrForbidden", name, err)
		}
		if Message(err) != "You are not authorized to edit this" {
			t.Errorf("%s: message = %q", name, Message(err))
		}
	}
}

func TestErrorKinds(t *testing.T) {
	err := uploadError("Failed to upload avatar", errors.New("boom"))
	if !errors.Is(err, ErrUpload) {
		t.Fatal("upload error does not match ErrUpload")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("upload error matches ErrNotFound")
	}
	if Message(err) != "Failed to upload avatar" {
		t.Errorf("Message = %q", Message(err))
	}
	if Message(errors.New("plain")) != "plain" {
		t.Error("Message of a plain error should be its text")
	}
}

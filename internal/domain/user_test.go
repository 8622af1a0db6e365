package domain

import (
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser(" Kaue@Example.COM ", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "kaue@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}

	_, err = NewUser("", "correct-horse-battery")
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	_, err = NewUser("not-an-email", "correct-horse-battery")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	_, err = NewUser("kaue@example.com", "short")
	if err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	_, err = NewUser("kaue@example.com", strings.Repeat("x", 73))
	if err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidateStoredHash(t *testing.T) {
	t.Parallel()

	user, err := NewUser("kaue@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Users loaded from storage have only the hash
	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error for stored user, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

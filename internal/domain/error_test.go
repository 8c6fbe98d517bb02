package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      &Error{Code: EINVALID, Message: "count must be at least 1"},
			expected: "count must be at least 1",
		},
		{
			name:     "with operation",
			err:      &Error{Code: ENOTFOUND, Op: "cart.update", Message: "cart line not found"},
			expected: "cart.update: cart line not found",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "checkout",
				Message: "failed to create order",
				Err:     errors.New("connection reset"),
			},
			expected: "checkout: failed to create order: connection reset",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to create order",
				Err:     errors.New("connection reset"),
			},
			expected: "failed to create order: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"domain error", &Error{Code: ECONFLICT}, ECONFLICT},
		{"wrapped domain error", fmt.Errorf("checkout: %w", EmptyCart("checkout")), EEMPTYCART},
		{"plain error", errors.New("boom"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage_HidesInternalDetails(t *testing.T) {
	internal := Internal(errors.New("pq: relation missing"), "order.list", "failed to list orders")
	if got := ErrorMessage(internal); got != "An internal error occurred. Please try again later." {
		t.Errorf("ErrorMessage(internal) = %q", got)
	}

	if got := ErrorMessage(errors.New("raw")); got != "An internal error occurred. Please try again later." {
		t.Errorf("ErrorMessage(raw) = %q", got)
	}

	if got := ErrorMessage(EmptyCart("checkout")); got != "Your cart is empty" {
		t.Errorf("ErrorMessage(empty cart) = %q", got)
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, EINTERNAL, "op", "msg") != nil {
		t.Fatal("WrapError(nil) should return nil")
	}

	underlying := errors.New("deadlock detected")
	err := WrapError(underlying, EINTERNAL, "checkout", "failed to create order")
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find the underlying error")
	}
	if ErrorOp(err) != "checkout" {
		t.Errorf("ErrorOp() = %q, want %q", ErrorOp(err), "checkout")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(Conflict("review.create", "duplicate"), ECONFLICT) {
		t.Error("expected conflict code")
	}
	if IsCode(NotFound("order.get", "order", "7"), ECONFLICT) {
		t.Error("not found should not match conflict")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("checkout", "email", "must be a valid email address")
	if got := err.Error(); got != "checkout: email: must be a valid email address" {
		t.Errorf("Error() = %q", got)
	}

	err = AddFieldError(err, "phone", "is required")
	fields := GetValidationFields(err)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields["phone"] != "is required" {
		t.Errorf("phone = %q", fields["phone"])
	}
	if got := err.Error(); got != "checkout: validation failed for 2 fields" {
		t.Errorf("Error() = %q", got)
	}

	if !IsValidationError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsValidationError should see through wrapping")
	}
	if IsValidationError(errors.New("other")) {
		t.Error("plain error is not a validation error")
	}
	if GetValidationFields(errors.New("other")) != nil {
		t.Error("expected nil fields for plain error")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		msg  string
	}{
		{"not found", NotFound("order.get", "order", "42"), ENOTFOUND, "order not found: 42"},
		{"unauthorized", Unauthorized("profile.get", "Authentication required"), EUNAUTHORIZED, "Authentication required"},
		{"forbidden", Forbidden("admin", "Staff access required"), EFORBIDDEN, "Staff access required"},
		{"invalid", Invalid("product.create", "price must not be negative"), EINVALID, "price must not be negative"},
		{"conflict", Conflict("user.register", "username already taken"), ECONFLICT, "username already taken"},
		{"empty cart", EmptyCart("checkout"), EEMPTYCART, "Your cart is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ErrorCode(tt.err) != tt.code {
				t.Errorf("code = %q, want %q", ErrorCode(tt.err), tt.code)
			}
			if ErrorMessage(tt.err) != tt.msg {
				t.Errorf("message = %q, want %q", ErrorMessage(tt.err), tt.msg)
			}
		})
	}
}

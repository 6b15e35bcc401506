package domain

import (
	"errors"
	"net/http"
	"testing"
)

func TestFromStatus_Taxonomy(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnauthorized, ErrUnauthenticated},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrValidation},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
	}
	for _, tc := range cases {
		err := FromStatus(tc.status, "boom")
		if !errors.Is(err, tc.kind) {
			t.Errorf("FromStatus(%d) kind = %v, want %v", tc.status, err.Kind, tc.kind)
		}
		if err.Status != tc.status {
			t.Errorf("FromStatus(%d) status = %d", tc.status, err.Status)
		}
	}
}

func TestFromStatus_DefaultMessage(t *testing.T) {
	err := FromStatus(http.StatusNotFound, "")
	if err.Message == "" {
		t.Fatal("expected a fallback message")
	}
}

func TestOTPExpired_IsValidation(t *testing.T) {
	err := &APIError{Kind: ErrOTPExpired, Message: "otp expired"}
	if !errors.Is(err, ErrOTPExpired) {
		t.Error("expected errors.Is ErrOTPExpired")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected an expired otp to read as a validation error")
	}
}

func TestInvalid_NeverCarriesStatus(t *testing.T) {
	err := Invalid("id is required")
	if err.Status != 0 {
		t.Errorf("local validation error carries status %d", err.Status)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected errors.Is ErrValidation")
	}
}

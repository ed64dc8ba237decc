package rut

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.345.678-5", "123456785"},
		{" 12345678-5 ", "123456785"},
		{"12,345,678-5", "123456785"},
		{"12.345.678-5\u00a0", "123456785"},
		{"9.876.543-k", "9876543K"},
		{"12345698K", "12345698K"},
		{"rut: 12345678/5", "123456785"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		targetErr error
	}{
		{"valid with separators", "12.345.678-5", nil},
		{"valid with comma separators", "12,345,678-5", nil},
		{"valid normalized", "123456785", nil},
		{"valid check digit K", "12345698-K", nil},
		{"valid lowercase k", "12345698-k", nil},
		{"valid check digit zero", "12345658-0", nil},
		{"valid repeated digits", "11111111-1", nil},
		{"wrong check digit", "12.345.678-9", ErrInvalidCheckDigit},
		{"k where digit expected", "12345678-K", ErrInvalidCheckDigit},
		{"check letter inside body", "12K45678-5", ErrInvalidFormat},
		{"too short", "5", ErrInvalidFormat},
		{"too long", "1234567890-1", ErrInvalidFormat},
		{"empty", "", ErrInvalidFormat},
		{"separators only", "..-", ErrInvalidFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.in)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("Check(%q) = %v, want nil", tc.in, err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("Check(%q) = %v, want %v", tc.in, err, tc.targetErr)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if !Valid("12.345.678-5") {
		t.Fatal("expected 12.345.678-5 to be valid")
	}
	if Valid("12.345.678-0") {
		t.Fatal("expected 12.345.678-0 to be invalid")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456785", "12.345.678-5"},
		{"12345698k", "12.345.698-K"},
		{"9876543-3", "9.876.543-3"},
		{"11111111-1", "11.111.111-1"},
		// invalid input comes back normalized, unformatted
		{"12.345.678-9", "123456789"},
	}

	for _, tc := range tests {
		if got := Format(tc.in); got != tc.want {
			t.Errorf("Format(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

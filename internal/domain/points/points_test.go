package points

import (
	"errors"
	"testing"
)

func TestForPosition(t *testing.T) {
	tests := []struct {
		position int
		want     int
	}{
		{1, 100},
		{2, 90},
		{5, 60},
		{10, 20},
		{11, 9},
		{15, 5},
		{19, 1},
		{20, 1},
		{57, 1},
	}

	for _, tc := range tests {
		got, err := ForPosition(tc.position)
		if err != nil {
			t.Fatalf("ForPosition(%d) error: %v", tc.position, err)
		}
		if got != tc.want {
			t.Errorf("ForPosition(%d) = %d, want %d", tc.position, got, tc.want)
		}
	}
}

func TestForPosition_Invalid(t *testing.T) {
	for _, position := range []int{0, -1, -20} {
		if _, err := ForPosition(position); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("ForPosition(%d) = %v, want ErrInvalidPosition", position, err)
		}
	}
}

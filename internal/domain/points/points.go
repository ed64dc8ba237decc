// Package points holds the championship scoring table.
package points

import (
	"errors"
	"fmt"
)

var ErrInvalidPosition = errors.New("invalid finishing position")

// ForPosition returns the points awarded for a finishing position:
// 1st through 10th earn 100 down to 10 in steps of ten, 11th through 19th
// earn 9 down to 1, and everyone from 20th on earns a single point.
func ForPosition(position int) (int, error) {
	switch {
	case position <= 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	case position <= 10:
		return 110 - 10*position, nil
	case position <= 19:
		return 20 - position, nil
	default:
		return 1, nil
	}
}

package script

import (
	"errors"
	"fmt"
)

// ErrContract reports input that is not an ordered sequence of text lines.
var ErrContract = errors.New("script input contract violation")

func contractError(index int, detail string) error {
	return fmt.Errorf("%w: entry %d: %s", ErrContract, index, detail)
}

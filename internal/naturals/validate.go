package naturals

import (
	"fmt"

	apperrors "github.com/agbru/numreport/internal/errors"
)

// Validate rejects negative counts. Zero is accepted and yields an empty
// sequence or a zero sum.
func Validate(field string, v int64) error {
	if v < 0 {
		return apperrors.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be non-negative, got %d", v),
		}
	}
	return nil
}

package dialogue

import (
	"errors"

	apperrors "boardgame-advisor/backend/pkg/errors"
)

// inputReason extracts the user-facing reason from a validation error.
func inputReason(err error) string {
	var invalid *apperrors.ErrInputInvalid
	if errors.As(err, &invalid) {
		return invalid.Reason
	}
	return err.Error()
}

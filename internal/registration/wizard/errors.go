package wizard

import dErrors "tenantnotes/pkg/domain-errors"

// Messages shown to the user.
const (
	SubmitSuccessMessage = "Registration successful! Please check your email for verification."
	SubmitFailureMessage = "Registration failed. Please try again."
)

var (
	ErrClosed           = dErrors.New(dErrors.CodeNotFound, "wizard closed")
	ErrSubmitInProgress = dErrors.New(dErrors.CodeConflict, "registration is already being submitted")
	ErrNotOnReview      = dErrors.New(dErrors.CodeConflict, "submit is only available on the review step")
	ErrReviewReadOnly   = dErrors.New(dErrors.CodeConflict, "the review step is read-only")
	ErrReviewNotReached = dErrors.New(dErrors.CodeConflict, "complete all steps before reviewing")
	ErrInvalidStep      = dErrors.New(dErrors.CodeBadRequest, "step must be between 1 and 5")
	ErrEmptyPatch       = dErrors.New(dErrors.CodeBadRequest, "no fields to update")
)

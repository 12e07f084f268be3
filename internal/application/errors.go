package application

import "github.com/oksasatya/go-movie-catalog/pkg/apperr"

// Messages are part of the public API contract; clients match on them.
var (
	ErrPasswordMismatch    = apperr.Validation("Passwords do not match!")
	ErrUserExists          = apperr.Conflict("User already exists!")
	ErrUserDoesNotExist    = apperr.Validation("User does not exist!")
	ErrInvalidCredentials  = apperr.Unauthorized("Your credentials are invalid")
	ErrForgotUserMissing   = apperr.NotFound("User doesn't Exist")
	ErrResetUserMissing    = apperr.NotFound("The User doesn't Exist !")
	ErrInvalidToken        = apperr.Unauthorized("The token is not valid!")
	ErrResetFieldsRequired = apperr.Validation("resetPasswordLink and newPassword are required")

	ErrUserNotFound    = apperr.NotFound("User not found")
	ErrFavoriteExists  = apperr.Validation("Movie already in favorites")
	ErrFavoriteMissing = apperr.Validation("Movie not in favorites")

	ErrMovieNotFound       = apperr.NotFound("Movie not found")
	ErrSearchQueryRequired = apperr.Validation("Search query is required")
	ErrThumbnailNotImage   = apperr.Validation("Thumbnail must be an image")
	ErrCommentNotFound     = apperr.NotFound("Comment not found")
	ErrContentRequired     = apperr.Validation("Content is required")
)

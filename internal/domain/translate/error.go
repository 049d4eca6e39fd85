package translate

import "errors"

var (
	ErrInvalidInput        = errors.New("Missing required fields")
	ErrTextTooLong         = errors.New("Text too long. Please limit to 2000 characters.")
	ErrProviderUnavailable = errors.New("Translation service is currently unavailable. Please try again later.")
)

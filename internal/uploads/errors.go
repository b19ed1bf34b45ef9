package uploads

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

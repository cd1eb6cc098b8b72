package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUnknownCollection = errors.New("unknown collection")
	ErrQueryTooLong      = errors.New("search query is too long")
	ErrInvalidAuthorDID  = errors.New("invalid author DID")
	ErrInvalidEmbedKind  = errors.New("invalid embed kind")
	ErrInvalidPageIndex  = errors.New("invalid page index")
	ErrEmptyIdentifier   = errors.New("identifier is required")
	ErrEmptyPassword     = errors.New("app password is required")
)

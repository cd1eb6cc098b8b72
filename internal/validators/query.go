package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/sky-shelf/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldQuery targets the free-text search string of a filter.
	FieldQuery = "query"

	// FieldAuthors targets the selected author DIDs of a filter.
	FieldAuthors = "authors"

	// FieldEmbeds targets the embed toggles of a filter.
	FieldEmbeds = "embeds"

	// FieldPageIndex targets the zero-based page index of a filter.
	FieldPageIndex = "page_index"

	// FieldIdentifier targets the handle or DID used to log in.
	FieldIdentifier = "identifier"

	// FieldPassword targets the app password used to log in.
	FieldPassword = "password"
)

// MaxQueryLength is the longest search query accepted, in runes.
const MaxQueryLength = 512

// QueryValidator implements the Validator interface for the inputs that
// reach the collection pipeline from outer surfaces: collection names,
// filter criteria and login credentials.
//
// It accepts both value and pointer forms of every model type and allows
// optional field-level scoping via variadic field name arguments.
type QueryValidator struct {
}

// NewQueryValidator constructs a new QueryValidator and returns it as the
// Validator interface.
func NewQueryValidator() Validator {
	return &QueryValidator{}
}

// Validate dispatches validation to the type-specific method based on the
// dynamic type of obj.
//
// Supported types:
//   - models.Collection / *models.Collection
//   - models.FilterState / *models.FilterState
//   - models.Credentials / *models.Credentials
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *QueryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Collection:
		return v.validateCollection(value)
	case *models.Collection:
		return v.validateCollection(*value)

	case models.FilterState:
		return v.validateFilter(ctx, value, fields...)
	case *models.FilterState:
		return v.validateFilter(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *QueryValidator) validateCollection(c models.Collection) error {
	if _, ok := models.ParseCollection(string(c)); !ok {
		return ErrUnknownCollection
	}
	return nil
}

// validateFilter validates the filter criteria of a post list request.
//
// Default validated fields: Query, Authors, Embeds, PageIndex. A page index
// of models.NoPages is accepted; anything lower is not.
func (v *QueryValidator) validateFilter(_ context.Context, filter models.FilterState, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldQuery, FieldAuthors, FieldEmbeds, FieldPageIndex}
	}

	for _, f := range fields {
		switch f {
		case FieldQuery:
			if utf8.RuneCountInString(filter.Query) > MaxQueryLength {
				return ErrQueryTooLong
			}
		case FieldAuthors:
			for _, did := range filter.Authors {
				if !strings.HasPrefix(did, "did:") || len(did) <= len("did:") {
					return ErrInvalidAuthorDID
				}
			}
		case FieldEmbeds:
			for _, kind := range filter.Embeds {
				if _, ok := models.ParseEmbedKind(string(kind)); !ok {
					return ErrInvalidEmbedKind
				}
			}
		case FieldPageIndex:
			if filter.PageIndex < models.NoPages {
				return ErrInvalidPageIndex
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCredentials validates a login request.
//
// Default validated fields: Identifier, Password.
func (v *QueryValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIdentifier, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldIdentifier:
			if strings.TrimSpace(creds.Identifier) == "" {
				return ErrEmptyIdentifier
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

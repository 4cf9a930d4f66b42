package graphql

import (
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/graphauth/graphauth/internal/domain"
)

// Error codes follow the Apollo convention so existing clients keep working.
const (
	codeBadUserInput    = "BAD_USER_INPUT"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeInternal        = "INTERNAL_SERVER_ERROR"
	codeGraphQLFailed   = "GRAPHQL_VALIDATION_FAILED"
)

type responseError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type response struct {
	Data   any             `json:"data,omitempty"`
	Errors []responseError `json:"errors,omitempty"`
}

// formatResult maps execution errors onto the categorized wire shape. Domain
// errors keep their message and get a code from their kind; internal kinds
// are masked. Anything else came from the GraphQL layer itself (parse or
// query validation failures).
func formatResult(res *graphql.Result) response {
	out := response{Data: res.Data}
	for _, fe := range res.Errors {
		out.Errors = append(out.Errors, formatError(fe))
	}
	return out
}

// originalError peels the located-error wrappers the executor adds around
// resolver errors.
func originalError(fe gqlerrors.FormattedError) error {
	err := fe.OriginalError()
	for {
		switch e := err.(type) {
		case *gqlerrors.Error:
			err = e.OriginalError
		case gqlerrors.FormattedError:
			err = e.OriginalError()
		default:
			return err
		}
	}
}

func formatError(fe gqlerrors.FormattedError) responseError {
	var de *domain.Error
	if errors.As(originalError(fe), &de) {
		code := codeInternal
		message := de.Message

		switch de.Kind {
		case domain.KindValidation, domain.KindConflict:
			code = codeBadUserInput
		case domain.KindAuth:
			code = codeUnauthenticated
		default:
			// Never leak infrastructure or internal detail.
			message = "internal error"
		}

		return responseError{
			Message:    message,
			Extensions: map[string]any{"code": code},
		}
	}

	return responseError{
		Message:    fe.Message,
		Extensions: map[string]any{"code": codeGraphQLFailed},
	}
}

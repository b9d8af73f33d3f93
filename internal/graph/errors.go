package graph

import (
	"errors"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

// ResponseError is the client-visible error shape: the message plus the HTTP
// status class of the failure and, for validation, the accumulated field
// errors.
type ResponseError struct {
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Data    []models.FieldError `json:"data,omitempty"`
}

// Response is the wire envelope for one executed request.
type Response struct {
	Data   interface{}     `json:"data,omitempty"`
	Errors []ResponseError `json:"errors,omitempty"`
}

func newResponse(result *graphql.Result) *Response {
	resp := &Response{Data: result.Data}
	for _, ferr := range result.Errors {
		resp.Errors = append(resp.Errors, formatError(ferr))
	}
	return resp
}

// formatError maps a resolver failure back to its application error. Query
// syntax and schema validation failures carry no application error and read
// as bad requests; anything else unexpected is masked as an internal error.
func formatError(ferr gqlerrors.FormattedError) ResponseError {
	original := originalError(ferr)
	if original == nil {
		return ResponseError{Message: ferr.Message, Status: 400}
	}

	var appErr *models.AppError
	if errors.As(original, &appErr) {
		return ResponseError{Message: appErr.Message, Status: appErr.Status, Data: appErr.Data}
	}

	middleware.Logger.Error("unhandled resolver error", "error", original)
	internal := models.NewInternalError(original)
	return ResponseError{Message: internal.Message, Status: internal.Status}
}

// originalError digs the resolver-returned error out of the located-error
// wrappers the executor adds.
func originalError(err error) error {
	for err != nil {
		switch wrapped := err.(type) {
		case gqlerrors.FormattedError:
			err = wrapped.OriginalError()
		case *gqlerrors.Error:
			err = wrapped.OriginalError
		case gqlerrors.Error:
			err = wrapped.OriginalError
		default:
			return err
		}
	}
	return nil
}

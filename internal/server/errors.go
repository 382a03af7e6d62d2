package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"GO-story/internal/story"
)

// ErrorMessage is the body of every error response.
type ErrorMessage struct {
	Error string `json:"error"`
}

func newError(code int, message string, err error) *echo.HTTPError {
	// echo answers with an internal *HTTPError in place of the outer one
	if inner, ok := err.(*echo.HTTPError); ok {
		err = errors.New(inner.Error())
	}
	return echo.NewHTTPError(code, ErrorMessage{Error: message}).SetInternal(err)
}

func badRequest(message string, err error) *echo.HTTPError {
	return newError(http.StatusBadRequest, message, err)
}

// fromServiceError maps service errors onto HTTP errors.
func fromServiceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, story.ErrStoryNotFound):
		return newError(http.StatusNotFound, "Story not found", err)
	case errors.Is(err, story.ErrCharacterNotFound):
		return newError(http.StatusNotFound, "Character not found", err)
	case errors.Is(err, story.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), story.ErrInvalidInput.Error()+": ")
		return badRequest(msg, err)
	case errors.Is(err, story.ErrNoNarrator):
		return newError(http.StatusServiceUnavailable, "Narrator is not configured", err)
	case errors.Is(err, story.ErrNarratorFailed):
		return newError(http.StatusBadGateway, "Narrator failed", err)
	default:
		return newError(http.StatusInternalServerError, "unexpected error", err)
	}
}

// asErrorMessage rewraps echo's own errors, which carry a plain string, so
// every error body has the same shape.
func asErrorMessage(err error) *echo.HTTPError {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return newError(http.StatusInternalServerError, "unexpected error", err)
	}
	if msg, ok := he.Message.(string); ok {
		return newError(he.Code, msg, he.Internal)
	}
	return he
}

package service

import (
	"fmt"
	"net/http"
)

// Message is the JSON body carried by client-visible errors
type Message struct {
	Message string `json:"message"`
}

// APIError is a failure the client should see with its own status code and body
type APIError struct {
	Status  int
	Payload any
}

func (e *APIError) Error() string {
	if m, ok := e.Payload.(Message); ok {
		return fmt.Sprintf("api error %d: %s", e.Status, m.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// NewAPIError creates an APIError with a message payload
func NewAPIError(status int, message string) *APIError {
	return &APIError{
		Status:  status,
		Payload: Message{Message: message},
	}
}

const (
	MsgTitleRequired   = "title is required"
	MsgPairsNotArray   = "pairs must be an array"
	MsgPairsOnlyArrays = "pairs may only contain arrays"
	MsgPairsMalformed  = "pairs must contain arrays of two strings"
	MsgItemNotFound    = "Item Not Found"
)

// ErrNotFound is returned when a category id has no match
var ErrNotFound = NewAPIError(http.StatusNotFound, MsgItemNotFound)

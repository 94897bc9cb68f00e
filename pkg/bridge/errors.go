package bridge

import "errors"

var (
	// ErrLinkButtonNotPressed indicates the gateway refused the key request
	// because its physical link button was not pressed in time.
	ErrLinkButtonNotPressed = errors.New("link button not pressed")

	// ErrRequest indicates the request never reached the gateway
	ErrRequest = errors.New("request failed")

	// ErrResponse indicates the gateway answered with something unusable
	ErrResponse = errors.New("unexpected gateway response")

	// ErrTimeout indicates a bounded call exceeded its deadline
	ErrTimeout = errors.New("operation timed out")
)

package domain

import (
	"errors"
	"fmt"
)

// ErrBadSignature is returned when a webhook payload fails HMAC verification.
var ErrBadSignature = errors.New("webhook signature verification failed")

// ErrEventAlreadyProcessed marks a webhook event id that was applied before.
var ErrEventAlreadyProcessed = errors.New("event already processed")

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func NewNotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition %s -> %s", e.From, e.To)
}

type GatewayError struct {
	Msg string
	Err error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway: %s: %v", e.Msg, e.Err)
	}
	return "payment gateway: " + e.Msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

package core

import "fmt"

// ErrorCode identifies a contract violation detected at an API boundary.
type ErrorCode string

const (
	ErrCodeUnrepresentableValue ErrorCode = "UNREPRESENTABLE_VALUE"
	ErrCodeInvalidTypeID        ErrorCode = "INVALID_TYPE_ID"
	ErrCodeMissingCollaborator  ErrorCode = "MISSING_COLLABORATOR"
)

// ContractError is a precondition violation. Unlike diagnostics it aborts the
// operation that detected it.
type ContractError struct {
	Code    ErrorCode
	Message string
	Details string
}

func (e *ContractError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
}

func (e *ContractError) Is(target error) bool {
	t, ok := target.(*ContractError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrUnrepresentableValue = &ContractError{Code: ErrCodeUnrepresentableValue}
	ErrInvalidTypeID        = &ContractError{Code: ErrCodeInvalidTypeID}
	ErrMissingCollaborator  = &ContractError{Code: ErrCodeMissingCollaborator}
)

func NewUnrepresentableValueError(details string) *ContractError {
	return &ContractError{
		Code:    ErrCodeUnrepresentableValue,
		Message: "config value cannot be represented in the DSL",
		Details: details,
	}
}

func NewInvalidTypeIDError(typeID string) *ContractError {
	return &ContractError{
		Code:    ErrCodeInvalidTypeID,
		Message: "block type id is not a valid identifier",
		Details: fmt.Sprintf("%q", typeID),
	}
}

func NewMissingCollaboratorError(name string) *ContractError {
	return &ContractError{
		Code:    ErrCodeMissingCollaborator,
		Message: "required collaborator is nil",
		Details: name,
	}
}

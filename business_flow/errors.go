// Package businessflow contains the core business logic for the relationship-intelligence engine
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Validation errors
	ErrDayOutOfRange       = errors.New("date day must be between 1 and 31")
	ErrMonthOutOfRange     = errors.New("date month must be between 1 and 12")
	ErrInvalidSendTime     = errors.New("send time must be HH:MM or HH:MM:SS")
	ErrUnknownTimezone     = errors.New("unknown timezone identifier")
	ErrEmptyUpdate         = errors.New("at least one field must be provided for update")
	ErrInvalidCallType     = errors.New("call type must be inbound or outbound")
	ErrNegativeDuration    = errors.New("call duration cannot be negative")
	ErrSentimentOutOfRange = errors.New("sentiment score must be between -1.0 and 1.0")
	ErrPlatformRequired    = errors.New("platform is required")
	ErrProfileIDRequired   = errors.New("external profile identifier is required")

	// Not-found errors
	ErrDateNotFound    = errors.New("important date not found")
	ErrProfileNotFound = errors.New("social profile not found")
	ErrEventNotFound   = errors.New("social event not found")

	// Conflict errors
	ErrProfileAlreadyLinked = errors.New("social profile already linked to this contact")

	// Store errors
	ErrStoreUnavailable = errors.New("record store unavailable")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsDayOutOfRange(err error) bool {
	return errors.Is(err, ErrDayOutOfRange)
}

func IsMonthOutOfRange(err error) bool {
	return errors.Is(err, ErrMonthOutOfRange)
}

func IsInvalidSendTime(err error) bool {
	return errors.Is(err, ErrInvalidSendTime)
}

func IsUnknownTimezone(err error) bool {
	return errors.Is(err, ErrUnknownTimezone)
}

func IsEmptyUpdate(err error) bool {
	return errors.Is(err, ErrEmptyUpdate)
}

func IsInvalidCallType(err error) bool {
	return errors.Is(err, ErrInvalidCallType)
}

func IsNegativeDuration(err error) bool {
	return errors.Is(err, ErrNegativeDuration)
}

func IsSentimentOutOfRange(err error) bool {
	return errors.Is(err, ErrSentimentOutOfRange)
}

func IsDateNotFound(err error) bool {
	return errors.Is(err, ErrDateNotFound)
}

func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

func IsProfileAlreadyLinked(err error) bool {
	return errors.Is(err, ErrProfileAlreadyLinked)
}

func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsValidation reports whether err belongs to the validation error class
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrDayOutOfRange, ErrMonthOutOfRange, ErrInvalidSendTime,
		ErrUnknownTimezone, ErrEmptyUpdate, ErrInvalidCallType,
		ErrNegativeDuration, ErrSentimentOutOfRange,
		ErrPlatformRequired, ErrProfileIDRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err belongs to the not-found error class
func IsNotFound(err error) bool {
	for _, target := range []error{ErrDateNotFound, ErrProfileNotFound, ErrEventNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err belongs to the conflict error class
func IsConflict(err error) bool {
	return errors.Is(err, ErrProfileAlreadyLinked)
}

package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies the failures surfaced to the user.
type Kind int

const (
	KindUnknown Kind = iota
	KindCameraUnavailable
	KindLookupNotFound
	KindEmptyCartCheckout
	KindInternalFault
	KindInvalidInput
	KindInvalidTransition
)

func (k Kind) String() string {
	switch k {
	case KindCameraUnavailable:
		return "CAMERA_UNAVAILABLE"
	case KindLookupNotFound:
		return "LOOKUP_NOT_FOUND"
	case KindEmptyCartCheckout:
		return "EMPTY_CART_CHECKOUT"
	case KindInternalFault:
		return "INTERNAL_FAULT"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindInvalidTransition:
		return "INVALID_TRANSITION"
	default:
		return "UNKNOWN"
	}
}

// Transient reports whether the message should clear by itself.
func (k Kind) Transient() bool {
	return k == KindLookupNotFound
}

// Error messages shown inline by the front-end.
const (
	MsgProductNotFound   = "Product not found. Please try again."
	MsgCameraDenied      = "Camera access denied or not found."
	MsgCameraRequired    = "Camera access required for verification."
	MsgCartEmpty         = "Cart is empty"
	MsgInternal          = "Internal Server Error"
	MsgBarcodeRequired   = "Barcode is required"
	MsgReceiptNotFound   = "Receipt not recognized. Please scan again."
	MsgReceiptUnknown    = "Receipt not found"
	MsgNoProductSelected = "No product to confirm"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.New(kind, "")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return MsgInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindLookupNotFound:
		return http.StatusNotFound
	case KindEmptyCartCheckout, KindInvalidInput:
		return http.StatusBadRequest
	case KindInvalidTransition:
		return http.StatusConflict
	case KindCameraUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

package oss

import (
	"errors"
	"fmt"
)

// Kind identifies the category of an Error.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindObject
	KindIO
	KindString
	KindTransport
	KindXMLWrite
	KindXMLParse
	KindHTTP
	KindSign
)

var kindText = map[Kind]string{
	KindUnknown:   "unknown error",
	KindObject:    "object operation is not valid",
	KindIO:        "io error",
	KindString:    "string error",
	KindTransport: "reqwest error",
	KindXMLWrite:  "qxml error",
	KindXMLParse:  "parse xml error",
	KindHTTP:      "http error",
	KindSign:      "sign invalid length",
}

func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return kindText[KindUnknown]
}

// Sentinels for errors.Is checks against a category. They must not be
// modified; Is matches them by identity, not by their fields.
var (
	ErrUnknown   = &Error{Kind: KindUnknown}
	ErrObject    = &Error{Kind: KindObject}
	ErrIO        = &Error{Kind: KindIO}
	ErrString    = &Error{Kind: KindString}
	ErrTransport = &Error{Kind: KindTransport}
	ErrXMLWrite  = &Error{Kind: KindXMLWrite}
	ErrXMLParse  = &Error{Kind: KindXMLParse}
	ErrHTTP      = &Error{Kind: KindHTTP}
	ErrSign      = &Error{Kind: KindSign}
)

var sentinelKinds = map[*Error]Kind{
	ErrUnknown:   KindUnknown,
	ErrObject:    KindObject,
	ErrIO:        KindIO,
	ErrString:    KindString,
	ErrTransport: KindTransport,
	ErrXMLWrite:  KindXMLWrite,
	ErrXMLParse:  KindXMLParse,
	ErrHTTP:      KindHTTP,
	ErrSign:      KindSign,
}

// Error is returned by every operation of this package.
//
// StatusCode and Message are only set for KindObject. Err holds the cause
// for the wrapping kinds and is nil for KindObject and KindUnknown.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindObject {
		return fmt.Sprintf("%s, status:%d, message:%q", e.Kind, e.StatusCode, e.Message)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	kind, ok := sentinelKinds[t]
	return ok && kind == e.Kind
}

// HeaderKind identifies which part of a header failed validation.
type HeaderKind uint8

const (
	HeaderInvalidValue HeaderKind = iota
	HeaderInvalidName
)

// HeaderError narrows header construction failures before they are folded
// into an Error of KindHTTP.
type HeaderError struct {
	Kind HeaderKind
	Err  error
}

func (e *HeaderError) Error() string {
	if e.Kind == HeaderInvalidName {
		return "invalid head name"
	}
	return "invalid head value"
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// InvalidHeaderNameError reports a header field name that is not a valid token.
type InvalidHeaderNameError struct {
	Name string
}

func (e *InvalidHeaderNameError) Error() string {
	return fmt.Sprintf("invalid header name %q", e.Name)
}

// InvalidHeaderValueError reports a header value with forbidden bytes. The
// value itself is not kept since it may carry credentials.
type InvalidHeaderValueError struct {
	Name string
}

func (e *InvalidHeaderValueError) Error() string {
	return fmt.Sprintf("invalid value for header %q", e.Name)
}

// DecodeError reports bytes that are not valid UTF-8.
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence at byte %d", e.Offset)
}

// InvalidKeyLengthError reports a signing key the MAC cannot be keyed with.
type InvalidKeyLengthError struct {
	Length int
}

func (e *InvalidKeyLengthError) Error() string {
	return fmt.Sprintf("invalid key length %d", e.Length)
}

// NewObjectError returns the error for a request the service rejected.
func NewObjectError(statusCode int, message string) *Error {
	return &Error{Kind: KindObject, StatusCode: statusCode, Message: message}
}

func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// FromIO converts a read or write failure.
func FromIO(err error) error { return wrap(KindIO, err) }

// FromDecode converts a text decoding failure.
func FromDecode(err *DecodeError) error {
	if err == nil {
		return nil
	}
	return wrap(KindString, err)
}

// FromTransport converts a failure returned by the HTTP client.
func FromTransport(err error) error { return wrap(KindTransport, err) }

// FromXMLWrite converts an XML marshalling failure.
func FromXMLWrite(err error) error { return wrap(KindXMLWrite, err) }

// FromXMLParse converts an XML unmarshalling failure.
func FromXMLParse(err error) error { return wrap(KindXMLParse, err) }

// FromSign converts a rejected signing key.
func FromSign(err *InvalidKeyLengthError) error {
	if err == nil {
		return nil
	}
	return wrap(KindSign, err)
}

// FromHeader folds a header failure into KindHTTP.
func FromHeader(err *HeaderError) error {
	if err == nil {
		return nil
	}
	return wrap(KindHTTP, err)
}

func FromHeaderValue(err *InvalidHeaderValueError) error {
	if err == nil {
		return nil
	}
	return FromHeader(&HeaderError{Kind: HeaderInvalidValue, Err: err})
}

func FromHeaderName(err *InvalidHeaderNameError) error {
	if err == nil {
		return nil
	}
	return FromHeader(&HeaderError{Kind: HeaderInvalidName, Err: err})
}

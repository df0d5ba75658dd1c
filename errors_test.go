package oss

import (
	"encoding/xml"
	"errors"
	"io"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"unknown", &Error{Kind: KindUnknown}, "unknown error"},
		{"object", NewObjectError(403, "Access Denied"), `object operation is not valid, status:403, message:"Access Denied"`},
		{"io", FromIO(io.ErrUnexpectedEOF), "io error"},
		{"string", FromDecode(&DecodeError{Offset: 1}), "string error"},
		{"transport", FromTransport(errors.New("connection refused")), "reqwest error"},
		{"xml write", FromXMLWrite(errors.New("unsupported type")), "qxml error"},
		{"xml parse", FromXMLParse(errors.New("unexpected EOF")), "parse xml error"},
		{"header value", FromHeaderValue(&InvalidHeaderValueError{Name: "X"}), "http error"},
		{"header name", FromHeaderName(&InvalidHeaderNameError{Name: "a b"}), "http error"},
		{"sign", FromSign(&InvalidKeyLengthError{}), "sign invalid length"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestHeaderError_Error(t *testing.T) {
	value := &HeaderError{Kind: HeaderInvalidValue, Err: &InvalidHeaderValueError{Name: "X"}}
	name := &HeaderError{Kind: HeaderInvalidName, Err: &InvalidHeaderNameError{Name: "a b"}}

	assert.Equal(t, "invalid head value", value.Error())
	assert.Equal(t, "invalid head name", name.Error())
}

func TestConversions_PreserveCause(t *testing.T) {
	var syntaxTarget struct{}
	parseErr := xml.Unmarshal([]byte("<a>"), &syntaxTarget)
	require.Error(t, parseErr)

	_, writeErr := xml.Marshal(make(chan int))
	require.Error(t, writeErr)

	transportErr := &url.Error{Op: "Get", URL: "http://127.0.0.1:1", Err: errors.New("connection refused")}
	decodeErr := &DecodeError{Offset: 4}
	signErr := &InvalidKeyLengthError{Length: 0}
	headerValueErr := &InvalidHeaderValueError{Name: "x-oss-meta-a"}
	headerNameErr := &InvalidHeaderNameError{Name: "bad name"}

	tests := []struct {
		name     string
		err      error
		kind     Kind
		sentinel error
		cause    error
	}{
		{"io", FromIO(io.ErrUnexpectedEOF), KindIO, ErrIO, io.ErrUnexpectedEOF},
		{"string", FromDecode(decodeErr), KindString, ErrString, decodeErr},
		{"transport", FromTransport(transportErr), KindTransport, ErrTransport, transportErr},
		{"xml write", FromXMLWrite(writeErr), KindXMLWrite, ErrXMLWrite, writeErr},
		{"xml parse", FromXMLParse(parseErr), KindXMLParse, ErrXMLParse, parseErr},
		{"sign", FromSign(signErr), KindSign, ErrSign, signErr},
		{"header value", FromHeaderValue(headerValueErr), KindHTTP, ErrHTTP, headerValueErr},
		{"header name", FromHeaderName(headerNameErr), KindHTTP, ErrHTTP, headerNameErr},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var e *Error
			require.ErrorAs(t, test.err, &e)
			assert.Equal(t, test.kind, e.Kind)
			assert.ErrorIs(t, test.err, test.sentinel)
			assert.ErrorIs(t, test.err, test.cause)
		})
	}
}

func TestFromHeader_NarrowsKind(t *testing.T) {
	var he *HeaderError

	err := FromHeaderValue(&InvalidHeaderValueError{Name: "x-oss-meta-a"})
	require.ErrorAs(t, err, &he)
	assert.Equal(t, HeaderInvalidValue, he.Kind)

	err = FromHeaderName(&InvalidHeaderNameError{Name: "bad name"})
	require.ErrorAs(t, err, &he)
	assert.Equal(t, HeaderInvalidName, he.Kind)

	var nameErr *InvalidHeaderNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "bad name", nameErr.Name)
}

func TestConversions_Nil(t *testing.T) {
	assert.NoError(t, FromIO(nil))
	assert.NoError(t, FromDecode(nil))
	assert.NoError(t, FromTransport(nil))
	assert.NoError(t, FromXMLWrite(nil))
	assert.NoError(t, FromXMLParse(nil))
	assert.NoError(t, FromSign(nil))
	assert.NoError(t, FromHeader(nil))
	assert.NoError(t, FromHeaderValue(nil))
	assert.NoError(t, FromHeaderName(nil))
}

func TestConversions_NoDoubleWrap(t *testing.T) {
	original := FromIO(io.ErrUnexpectedEOF)

	again := FromTransport(original)
	assert.Equal(t, original, again)

	var e *Error
	require.ErrorAs(t, again, &e)
	assert.Equal(t, KindIO, e.Kind)
	assert.NotErrorIs(t, again, ErrTransport)
}

func TestError_Is(t *testing.T) {
	err := NewObjectError(409, "BucketNotEmpty")

	assert.ErrorIs(t, err, ErrObject)
	assert.NotErrorIs(t, err, ErrUnknown)
	assert.NotErrorIs(t, err, NewObjectError(409, "BucketNotEmpty"))
	assert.ErrorIs(t, &Error{Kind: KindUnknown}, ErrUnknown)
	assert.NotErrorIs(t, FromIO(io.EOF), &Error{Kind: KindIO})
}

func TestError_IsIgnoresSentinelFields(t *testing.T) {
	saved := ErrIO.Kind
	ErrIO.Kind = KindSign
	defer func() { ErrIO.Kind = saved }()

	assert.ErrorIs(t, FromIO(io.EOF), ErrIO)
	assert.NotErrorIs(t, FromSign(&InvalidKeyLengthError{}), ErrIO)
}

// kindName switches over every Kind without a default branch.
func kindName(k Kind) string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindObject:
		return "object"
	case KindIO:
		return "io"
	case KindString:
		return "string"
	case KindTransport:
		return "transport"
	case KindXMLWrite:
		return "xml-write"
	case KindXMLParse:
		return "xml-parse"
	case KindHTTP:
		return "http"
	case KindSign:
		return "sign"
	}
	return ""
}

func TestKind_EveryCauseDistinguishable(t *testing.T) {
	errs := []error{
		NewObjectError(400, "InvalidArgument"),
		FromIO(io.EOF),
		FromDecode(&DecodeError{}),
		FromTransport(errors.New("dial")),
		FromXMLWrite(errors.New("write")),
		FromXMLParse(errors.New("parse")),
		FromHeaderName(&InvalidHeaderNameError{}),
		FromSign(&InvalidKeyLengthError{}),
		&Error{Kind: KindUnknown},
	}

	seen := map[string]bool{}
	for _, err := range errs {
		var e *Error
		require.ErrorAs(t, err, &e)
		name := kindName(e.Kind)
		require.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate kind %s", name)
		seen[name] = true
	}
	assert.Len(t, seen, len(kindText))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "io error", KindIO.String())
	assert.Equal(t, "unknown error", Kind(200).String())
}

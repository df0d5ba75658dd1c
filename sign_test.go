package oss

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	got, err := signature("key", "The quick brown fox jumps over the lazy dog")
	require.NoError(t, err)
	assert.Equal(t, "3nybhbi3iqa8ino29wqQcBydtNk=", got)
}

func TestSignature_EmptyKey(t *testing.T) {
	_, err := signature("", "anything")
	require.ErrorIs(t, err, ErrSign)

	var ke *InvalidKeyLengthError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, 0, ke.Length)
}

func TestStringToSign(t *testing.T) {
	req, err := http.NewRequest(http.MethodPut, "http://oss.example.com/bucket/a.txt", nil)
	require.NoError(t, err)
	req.Header.Set(headerContentMD5, "XUFAKrxLKna5cZ2REBfFkg==")
	req.Header.Set(headerContentType, "text/plain")
	req.Header.Set(headerDate, "Wed, 01 Jan 2025 00:00:00 GMT")
	req.Header.Set("X-Oss-Meta-Owner", " alice ")
	req.Header.Set("x-oss-client-request-id", "id-1")
	req.Header.Set("X-Unrelated", "ignored")

	want := "PUT\n" +
		"XUFAKrxLKna5cZ2REBfFkg==\n" +
		"text/plain\n" +
		"Wed, 01 Jan 2025 00:00:00 GMT\n" +
		"x-oss-client-request-id:id-1\n" +
		"x-oss-meta-owner:alice\n" +
		"/bucket/a.txt"

	assert.Equal(t, want, stringToSign(req, "/bucket/a.txt"))
}

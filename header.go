package oss

import (
	"maps"
	"net/http"
	"slices"

	"golang.org/x/net/http/httpguts"
)

// setHeader stores the header only if both name and value are valid per RFC 7230.
func setHeader(h http.Header, name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return FromHeaderName(&InvalidHeaderNameError{Name: name})
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return FromHeaderValue(&InvalidHeaderValueError{Name: name})
	}
	h.Set(name, value)
	return nil
}

func setHeaders(h http.Header, headers map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(headers)) {
		if err := setHeader(h, name, headers[name]); err != nil {
			return err
		}
	}
	return nil
}

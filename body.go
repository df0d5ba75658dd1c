package oss

import "unicode/utf8"

// decodeText returns data as a string, or a KindString error pointing at the
// first byte that is not valid UTF-8.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	offset := 0
	for offset < len(data) {
		r, size := utf8.DecodeRune(data[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		offset += size
	}
	return "", FromDecode(&DecodeError{Offset: offset})
}

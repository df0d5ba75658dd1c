package oss

import (
	"encoding/xml"
	"net/http"
)

func isSuccessStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusOK,
		http.StatusCreated,
		http.StatusAccepted,
		http.StatusNonAuthoritativeInfo,
		http.StatusNoContent,
		http.StatusResetContent,
		http.StatusPartialContent,
		http.StatusMultiStatus,
		http.StatusAlreadyReported:
		return true
	}
	return false
}

func isServiceErrorStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusBadRequest, http.StatusForbidden, http.StatusConflict:
		return true
	}
	return false
}

// StatusToResponse turns a status code and response body into either a
// decoded T or an Error.
//
// A success status with an empty body yields T's zero value without parsing.
// 400, 403 and 409 are decoded as an ErrorResponse and reported as
// KindObject. Any other status is KindUnknown.
func StatusToResponse[T any](statusCode int, text string) (T, error) {
	var r T

	switch {
	case isSuccessStatus(statusCode):
		if text == "" {
			return r, nil
		}
		if err := xml.Unmarshal([]byte(text), &r); err != nil {
			var zero T
			return zero, FromXMLParse(err)
		}
		return r, nil
	case isServiceErrorStatus(statusCode):
		var er ErrorResponse
		if err := xml.Unmarshal([]byte(text), &er); err != nil {
			return r, FromXMLParse(err)
		}
		return r, NewObjectError(statusCode, er.Message)
	default:
		return r, &Error{Kind: KindUnknown}
	}
}

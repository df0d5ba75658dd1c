package oss

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"sort"
	"strings"
)

// signature returns the base64 HMAC-SHA1 of stringToSign keyed by secret.
// HMAC itself accepts any key length; an empty secret is refused here since
// it can only mean missing credentials.
func signature(secret, stringToSign string) (string, error) {
	if len(secret) == 0 {
		return "", FromSign(&InvalidKeyLengthError{Length: len(secret)})
	}
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// stringToSign builds the canonical request string:
// VERB, Content-MD5, Content-Type, Date, x-oss-* headers, resource.
func stringToSign(req *http.Request, resource string) string {
	var ossHeaders []string
	for name := range req.Header {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "x-oss-") {
			ossHeaders = append(ossHeaders, lower+":"+strings.TrimSpace(req.Header.Get(name)))
		}
	}
	sort.Strings(ossHeaders)

	var sb strings.Builder
	sb.WriteString(req.Method + "\n")
	sb.WriteString(req.Header.Get(headerContentMD5) + "\n")
	sb.WriteString(req.Header.Get(headerContentType) + "\n")
	sb.WriteString(req.Header.Get(headerDate) + "\n")
	for _, h := range ossHeaders {
		sb.WriteString(h + "\n")
	}
	sb.WriteString(resource)
	return sb.String()
}

func (c *Client) sign(req *http.Request, resource string) error {
	sig, err := signature(c.accessKeySecret, stringToSign(req, resource))
	if err != nil {
		return err
	}
	return setHeader(req.Header, headerAuthorization, "OSS "+c.accessKeyID+":"+sig)
}

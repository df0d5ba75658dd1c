package oss

import (
	"encoding/xml"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	// maxDeleteKeys is the service limit for one multi-object delete request.
	maxDeleteKeys = 1000

	headerAuthorization   = "Authorization"
	headerContentMD5      = "Content-MD5"
	headerContentType     = "Content-Type"
	headerDate            = "Date"
	headerClientRequestID = "x-oss-client-request-id"
	headerMetaPrefix      = "x-oss-meta-"
)

/*
<Error>
	<Code>AccessDenied</Code>
	<Message>Access Denied</Message>
	<RequestId>5A4FC8CD85566F6D751FD7D8</RequestId>
	<HostId>bucket.oss-cn-shenzhen.aliyuncs.com</HostId>
</Error>
*/

// ErrorResponse is the XML body the service returns with a rejected request.
// The root element name is not checked.
type ErrorResponse struct {
	Code      string `xml:"Code"`
	Message   string `xml:"Message"`
	RequestID string `xml:"RequestId"`
	HostID    string `xml:"HostId"`
	Resource  string `xml:"Resource"`
}

type ObjectProperties struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	ETag         string `xml:"ETag"`
	Size         int64  `xml:"Size"`
	StorageClass string `xml:"StorageClass"`
}

type ListBucketResult struct {
	XMLName     xml.Name           `xml:"ListBucketResult"`
	Name        string             `xml:"Name"`
	Prefix      string             `xml:"Prefix"`
	Marker      string             `xml:"Marker"`
	NextMarker  string             `xml:"NextMarker"`
	MaxKeys     int                `xml:"MaxKeys"`
	IsTruncated bool               `xml:"IsTruncated"`
	Contents    []ObjectProperties `xml:"Contents"`
}

type deleteObject struct {
	Key string `xml:"Key"`
}

type deleteRequest struct {
	XMLName xml.Name       `xml:"Delete"`
	Quiet   bool           `xml:"Quiet"`
	Objects []deleteObject `xml:"Object"`
}

type DeletedObject struct {
	Key string `xml:"Key"`
}

// DeleteResult lists the keys removed by DeleteObjects. It is empty when the
// service answers a quiet delete without a body.
type DeleteResult struct {
	XMLName xml.Name        `xml:"DeleteResult"`
	Deleted []DeletedObject `xml:"Deleted"`
}

type ClientOptions struct {
	AccessKeyID       string
	AccessKeySecret   string
	Endpoint          string
	DeleteConcurrency int
	HTTPClient        *http.Client
	Logger            logrus.FieldLogger
}

type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

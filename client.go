package oss

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultContentType       = "application/octet-stream"
	defaultDeleteConcurrency = 4
	defaultTimeout           = 30 * time.Second
)

type Client struct {
	accessKeyID       string
	accessKeySecret   string
	endpoint          string
	deleteConcurrency int
	httpClient        *http.Client
	logger            logrus.FieldLogger
}

type IClient interface {
	DeleteObject(ctx context.Context, bucketName, objectName string) error
	DeleteObjects(ctx context.Context, bucketName string, objectNames []string) (*DeleteResult, error)
	GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error)
	ListObjects(ctx context.Context, bucketName, prefix string) (*ListBucketResult, error)
	PutObject(ctx context.Context, bucketName, objectName string, data []byte, opts *PutOptions) error
}

var _ IClient = (*Client)(nil)

// NewClient creates a new client
func NewClient(options *ClientOptions) *Client {
	if options.HTTPClient == nil {
		options.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}

	if options.Logger == nil {
		options.Logger = newDefaultLogger(logrus.InfoLevel)
	}

	if options.DeleteConcurrency <= 0 {
		options.DeleteConcurrency = defaultDeleteConcurrency
	}

	return &Client{
		accessKeyID:       options.AccessKeyID,
		accessKeySecret:   options.AccessKeySecret,
		endpoint:          strings.TrimRight(options.Endpoint, "/"),
		deleteConcurrency: options.DeleteConcurrency,
		httpClient:        options.HTTPClient,
		logger:            options.Logger,
	}
}

// NewClientWithDefaults creates a new client with default options
func NewClientWithDefaults(endpoint, accessKeyID, accessKeySecret string) *Client {
	return NewClient(&ClientOptions{
		AccessKeyID:     accessKeyID,
		AccessKeySecret: accessKeySecret,
		Endpoint:        endpoint,
	})
}

func newDefaultLogger(level logrus.Level) logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableQuote:    true,
	})
	return log.WithField("component", "oss")
}

type request struct {
	id          string
	log         logrus.FieldLogger
	method      string
	bucket      string
	key         string
	subresource string
	query       url.Values
	body        []byte
	headers     map[string]string
}

func (r *request) resource() string {
	res := "/" + r.bucket + "/" + r.key
	if r.subresource != "" {
		res += "?" + r.subresource
	}
	return res
}

func (c *Client) url(r *request) string {
	segments := strings.Split(r.key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	u := c.endpoint + "/" + url.PathEscape(r.bucket) + "/" + strings.Join(segments, "/")

	var query []string
	if r.subresource != "" {
		query = append(query, r.subresource)
	}
	if len(r.query) > 0 {
		query = append(query, r.query.Encode())
	}
	if len(query) > 0 {
		u += "?" + strings.Join(query, "&")
	}
	return u
}

// do sends a signed request and returns the status code and raw body.
func (c *Client) do(ctx context.Context, r *request) (int, []byte, error) {
	log := r.log

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r), bytes.NewReader(r.body))
	if err != nil {
		log.WithError(err).Warn("Failed to create request")
		return 0, nil, FromTransport(err)
	}

	headers := map[string]string{
		headerDate:            time.Now().UTC().Format(http.TimeFormat),
		headerClientRequestID: r.id,
	}
	for k, v := range r.headers {
		headers[k] = v
	}
	if len(r.body) > 0 {
		sum := md5.Sum(r.body)
		headers[headerContentMD5] = base64.StdEncoding.EncodeToString(sum[:])
	}

	if err := setHeaders(req.Header, headers); err != nil {
		log.WithError(err).Warn("Failed to set request headers")
		return 0, nil, err
	}

	if err := c.sign(req, r.resource()); err != nil {
		log.WithError(err).Warn("Failed to sign request")
		return 0, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Failed to send request")
		return 0, nil, FromTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("Failed to read response body")
		return resp.StatusCode, nil, FromIO(err)
	}

	return resp.StatusCode, data, nil
}

func (c *Client) newRequest(method, bucketName, objectName string) *request {
	id := uuid.NewString()
	return &request{
		id:     id,
		method: method,
		bucket: bucketName,
		key:    objectName,
		log: c.logger.WithFields(logrus.Fields{
			"bucket":     bucketName,
			"key":        objectName,
			"request_id": id,
		}),
	}
}

// parseResponse classifies a response and decodes its body into T
func parseResponse[T any](log logrus.FieldLogger, statusCode int, data []byte) (T, error) {
	var zero T

	text, err := decodeText(data)
	if err != nil {
		log.WithError(err).WithField("status_code", statusCode).Warn("Failed to decode response body")
		return zero, err
	}

	out, err := StatusToResponse[T](statusCode, text)
	if err != nil {
		log.WithError(err).WithField("status_code", statusCode).Warn("Request failed")
		return zero, err
	}

	return out, nil
}

// DeleteObject removes a single object
func (c *Client) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	req := c.newRequest(http.MethodDelete, bucketName, objectName)

	status, data, err := c.do(ctx, req)
	if err != nil {
		return err
	}

	_, err = parseResponse[struct{}](req.log, status, data)
	return err
}

// DeleteObjects removes objectNames in batches sent concurrently
func (c *Client) DeleteObjects(ctx context.Context, bucketName string, objectNames []string) (*DeleteResult, error) {
	var batches [][]string
	for start := 0; start < len(objectNames); start += maxDeleteKeys {
		end := min(start+maxDeleteKeys, len(objectNames))
		batches = append(batches, objectNames[start:end])
	}

	results := make([]DeleteResult, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.deleteConcurrency)

	for i, batch := range batches {
		g.Go(func() error {
			res, err := c.deleteBatch(gctx, bucketName, batch)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &DeleteResult{}
	for _, res := range results {
		merged.Deleted = append(merged.Deleted, res.Deleted...)
	}

	return merged, nil
}

func (c *Client) deleteBatch(ctx context.Context, bucketName string, objectNames []string) (DeleteResult, error) {
	req := c.newRequest(http.MethodPost, bucketName, "")
	req.subresource = "delete"
	req.headers = map[string]string{headerContentType: "application/xml"}

	payload := deleteRequest{Objects: make([]deleteObject, 0, len(objectNames))}
	for _, name := range objectNames {
		payload.Objects = append(payload.Objects, deleteObject{Key: name})
	}

	body, err := xml.Marshal(payload)
	if err != nil {
		req.log.WithError(err).Warn("Failed to marshal delete request")
		return DeleteResult{}, FromXMLWrite(err)
	}

	req.body = body

	status, data, err := c.do(ctx, req)
	if err != nil {
		return DeleteResult{}, err
	}

	return parseResponse[DeleteResult](req.log, status, data)
}

// GetObject downloads an object and returns its bytes
func (c *Client) GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	req := c.newRequest(http.MethodGet, bucketName, objectName)

	status, data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	if isSuccessStatus(status) {
		return data, nil
	}

	_, err = parseResponse[struct{}](req.log, status, data)
	return nil, err
}

// ListObjects lists objects in a bucket under prefix
func (c *Client) ListObjects(ctx context.Context, bucketName, prefix string) (*ListBucketResult, error) {
	req := c.newRequest(http.MethodGet, bucketName, "")
	req.query = url.Values{}
	if prefix != "" {
		req.query.Set("prefix", prefix)
	}

	status, data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := parseResponse[ListBucketResult](req.log, status, data)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// PutObject uploads data as a single object
func (c *Client) PutObject(ctx context.Context, bucketName, objectName string, data []byte, opts *PutOptions) error {
	req := c.newRequest(http.MethodPut, bucketName, objectName)
	req.body = data

	headers := map[string]string{headerContentType: defaultContentType}
	if opts != nil {
		if opts.ContentType != "" {
			headers[headerContentType] = opts.ContentType
		}
		for k, v := range opts.Metadata {
			headers[headerMetaPrefix+k] = v
		}
	}

	req.headers = headers

	status, body, err := c.do(ctx, req)
	if err != nil {
		return err
	}

	_, err = parseResponse[struct{}](req.log, status, body)
	return err
}

// Package ucd talks to the release-automation server's REST API. Client
// implements every collaborator interface the publish, properties, deploy and
// runner packages consume.
package ucd

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an authenticated connection to one server.
type Client struct {
	baseURL  string
	user     string
	password string
	http     *http.Client
}

// Options tune the underlying HTTP transport.
type Options struct {
	// TrustAllCerts skips TLS certificate validation, for servers with
	// self-signed certificates.
	TrustAllCerts         bool
	// ResponseHeaderTimeout limits the wait for response headers once the
	// request body was written. Uploads of any duration are not cut off;
	// cancel the request context to abort them.
	ResponseHeaderTimeout time.Duration
	HTTPClient            *http.Client
}

// NewClient creates a client for the server at rawURL authenticating as user.
func NewClient(rawURL, user, password string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse server url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must use http or https", rawURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if opts.TrustAllCerts {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		transport.ResponseHeaderTimeout = opts.ResponseHeaderTimeout
		httpClient = &http.Client{Transport: transport}
	}

	return &Client{
		baseURL:  strings.TrimSuffix(u.String(), "/"),
		user:     user,
		password: password,
		http:     httpClient,
	}, nil
}

func (c *Client) get(path string, query url.Values) *request {
	return &request{client: c, method: http.MethodGet, path: path, query: query}
}

func (c *Client) delete(path string) *request {
	return &request{client: c, method: http.MethodDelete, path: path}
}

func (c *Client) post(path string, query url.Values, contentType string, body io.Reader) *request {
	return &request{client: c, method: http.MethodPost, path: path, query: query, contentType: contentType, body: body}
}

func (c *Client) put(path string, query url.Values, contentType string, body io.Reader) *request {
	return &request{client: c, method: http.MethodPut, path: path, query: query, contentType: contentType, body: body}
}

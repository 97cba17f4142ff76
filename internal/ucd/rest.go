package ucd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/golang/glog"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
)

// request is a single HTTP call against the server, built by Client helpers.
type request struct {
	client      *Client
	method      string
	path        string
	query       url.Values
	contentType string
	body        io.Reader
}

func (r *request) do(ctx context.Context) (*http.Response, error) {
	u := r.client.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(r.client.user, r.client.password)
	req.Header.Set(headerAccept, contentTypeJSON)
	if r.contentType != "" {
		req.Header.Set(headerContentType, r.contentType)
	}

	glog.V(2).Infof("%s %s", r.method, u)
	resp, err := r.client.http.Do(req)
	if err != nil {
		return nil, err
	}
	glog.V(3).Infof("%s %s -> %d", r.method, u, resp.StatusCode)
	return resp, nil
}

// status performs the call and checks for a 2xx status, discarding the body.
func (r *request) status(ctx context.Context) error {
	resp, err := r.do(ctx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return handleErrorStatusCode(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// json performs the call and decodes a 2xx body into target.
func (r *request) json(ctx context.Context, target interface{}) error {
	resp, err := r.do(ctx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return handleErrorStatusCode(resp)
	}
	return unmarshalBodyJSON(resp.Body, target)
}

func unmarshalBodyJSON(body io.Reader, target interface{}) error {
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(bodyBytes, target)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

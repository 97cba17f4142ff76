package ucd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
)

type processRequest struct {
	Application        string             `json:"application"`
	ApplicationProcess string             `json:"applicationProcess"`
	Environment        string             `json:"environment"`
	OnlyChanged        string             `json:"onlyChanged"`
	Versions           []componentVersion `json:"versions"`
}

type componentVersion struct {
	Version   string `json:"version"`
	Component string `json:"component"`
}

// RequestDeployment starts an application process for the given component
// versions and returns the request id.
func (c *Client) RequestDeployment(ctx context.Context, app, process, environment string, versions map[string][]string) (string, error) {
	components := make([]string, 0, len(versions))
	for comp := range versions {
		components = append(components, comp)
	}
	sort.Strings(components)

	req := processRequest{
		Application:        app,
		ApplicationProcess: process,
		Environment:        environment,
		OnlyChanged:        "false",
		Versions:           []componentVersion{},
	}
	for _, comp := range components {
		for _, v := range versions[comp] {
			req.Versions = append(req.Versions, componentVersion{Version: v, Component: comp})
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	var created struct {
		RequestID string `json:"requestId"`
	}
	err = c.put("/cli/applicationProcessRequest/request", nil, contentTypeJSON, bytes.NewReader(body)).json(ctx, &created)
	if err != nil {
		return "", err
	}
	if created.RequestID == "" {
		return "", fmt.Errorf("server did not return a request id")
	}
	return created.RequestID, nil
}

// GetDeploymentStatus returns the result string of an application process
// request, e.g. NONE while it is still running.
func (c *Client) GetDeploymentStatus(ctx context.Context, requestID string) (string, error) {
	var status struct {
		Status string `json:"status"`
		Result string `json:"result"`
	}
	if err := c.get("/cli/applicationProcessRequest/requestStatus", url.Values{"request": {requestID}}).json(ctx, &status); err != nil {
		return "", err
	}
	return status.Result, nil
}

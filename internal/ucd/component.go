package ucd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sourceplane/udpublish/internal/model"
)

// GetPropertySheetDefinition returns the version property sheet definition of
// component.
func (c *Client) GetPropertySheetDefinition(ctx context.Context, component string) (*model.PropertySheetDefinition, error) {
	var info struct {
		ID string `json:"id"`
	}
	if err := c.get("/cli/component/info", url.Values{"component": {component}}).json(ctx, &info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, fmt.Errorf("component '%s' has no id", component)
	}

	var sheet model.PropertySheetDefinition
	path := "/property/propSheetDef/" + url.PathEscape("components&"+info.ID+"&versionPropSheetDef.-1")
	if err := c.get(path, nil).json(ctx, &sheet); err != nil {
		return nil, err
	}
	if sheet.ID == "" || sheet.Path == "" {
		return nil, fmt.Errorf("version property sheet of component '%s' is missing its id or path", component)
	}
	return &sheet, nil
}

// AddVersionLink attaches a named link to a version.
func (c *Client) AddVersionLink(ctx context.Context, component, version, linkName, linkURL string) error {
	q := url.Values{
		"component": {component},
		"version":   {version},
		"linkName":  {linkName},
		"link":      {linkURL},
	}
	return c.put("/cli/version/addLink", q, "", nil).status(ctx)
}

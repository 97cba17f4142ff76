package ucd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sourceplane/udpublish/internal/model"
)

// ListPropertyDefinitions returns the definitions of a property sheet in the
// order the server lists them. Only the name is required; other attributes are
// read when present and of the expected type.
func (c *Client) ListPropertyDefinitions(ctx context.Context, sheetPath string) ([]model.PropertyDefinition, error) {
	var raw []map[string]interface{}
	if err := c.get(propDefsPath(sheetPath), nil).json(ctx, &raw); err != nil {
		return nil, err
	}

	defs := make([]model.PropertyDefinition, 0, len(raw))
	for i, m := range raw {
		name, _ := m["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("property definition %d of sheet '%s' has no name", i, sheetPath)
		}
		def := model.PropertyDefinition{
			Name:        name,
			Description: stringField(m, "description"),
			Label:       stringField(m, "label"),
			Type:        stringField(m, "type"),
			Value:       stringField(m, "value"),
		}
		def.Required, _ = m["required"].(bool)
		defs = append(defs, def)
	}
	return defs, nil
}

type createPropDefRequest struct {
	DefinitionGroupID string `json:"definitionGroupId"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Label             string `json:"label"`
	Required          string `json:"required"`
	Type              string `json:"type"`
	Value             string `json:"value"`
}

// CreatePropertyDefinition adds a definition to the property sheet.
func (c *Client) CreatePropertyDefinition(ctx context.Context, sheetID uuid.UUID, sheetPath string, def model.PropertyDefinition) error {
	body, err := json.Marshal(createPropDefRequest{
		DefinitionGroupID: sheetID.String(),
		Name:              def.Name,
		Description:       def.Description,
		Label:             def.Label,
		Required:          fmt.Sprintf("%t", def.Required),
		Type:              def.Type,
		Value:             def.Value,
	})
	if err != nil {
		return err
	}
	return c.post(propDefsPath(sheetPath), nil, contentTypeJSON, bytes.NewReader(body)).status(ctx)
}

// propDefsPath addresses a sheet's definitions; the server expects the sheet
// path with '/' replaced by '&'.
func propDefsPath(sheetPath string) string {
	return "/property/propSheetDef/" + url.PathEscape(strings.ReplaceAll(sheetPath, "/", "&")+".-1") + "/propDefs"
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

package ucd

import (
	"context"
	"fmt"
	"strconv"
)

// GetMaintenanceModeEnabled reports whether the server currently refuses new
// process executions.
func (c *Client) GetMaintenanceModeEnabled(ctx context.Context) (bool, error) {
	var config map[string]interface{}
	if err := c.get("/cli/systemConfiguration", nil).json(ctx, &config); err != nil {
		return false, fmt.Errorf("failed to acquire system configuration: %w", err)
	}

	switch v := config["enableMaintenanceMode"].(type) {
	case bool:
		return v, nil
	case string:
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("failed to read enableMaintenanceMode %q: %w", v, err)
		}
		return enabled, nil
	case nil:
		return false, fmt.Errorf("system configuration has no enableMaintenanceMode field")
	default:
		return false, fmt.Errorf("unexpected enableMaintenanceMode value %v", v)
	}
}

package opendota

import "context"

// GetExplorer runs a SQL query against the OpenDota database.
func (c *Client) GetExplorer(ctx context.Context, sql string) (Object, error) {
	if sql == "" {
		return nil, invalidArgument(epExplorer.Name, "sql query is empty")
	}
	return c.object(ctx, epExplorer, nil, []QueryOption{Param("sql", sql)})
}

func (c *Client) GetMetadata(ctx context.Context) (Object, error) {
	return c.object(ctx, epMetadata, nil, nil)
}

// GetDistributions returns MMR distributions by bracket and country.
func (c *Client) GetDistributions(ctx context.Context) (Object, error) {
	return c.object(ctx, epDistributions, nil, nil)
}

func (c *Client) GetServiceStatus(ctx context.Context) (Object, error) {
	return c.object(ctx, epStatus, nil, nil)
}

func (c *Client) GetServiceHealth(ctx context.Context) (Object, error) {
	return c.object(ctx, epHealth, nil, nil)
}

// GetItemScenarios returns win rates for item timings. Filter with Item and HeroID.
func (c *Client) GetItemScenarios(ctx context.Context, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epItemScenarios, nil, opts)
}

// GetLaneRoleScenarios returns win rates by lane role. Filter with LaneRole and HeroID.
func (c *Client) GetLaneRoleScenarios(ctx context.Context, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epLaneRoleScenarios, nil, opts)
}

// GetMiscScenarios returns team scenarios: pos_chat_1min, neg_chat_1min, courier_kill
// or first_blood.
func (c *Client) GetMiscScenarios(ctx context.Context, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epMiscScenarios, nil, opts)
}

func (c *Client) GetDBSchema(ctx context.Context) ([]Object, error) {
	return c.array(ctx, epSchema, nil, nil)
}

// GetConstants returns a static game constants resource, or the list of available
// resources when resource is empty.
func (c *Client) GetConstants(ctx context.Context, resource string) (any, error) {
	var out any
	var err error
	if resource == "" {
		err = c.do(ctx, epConstantResources, nil, nil, &out)
	} else {
		err = c.do(ctx, epConstants, []string{resource}, nil, &out)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "find_similar_jobs",
		Description: "Find active job postings in the same region that are most similar to a given job. Results are ranked by a multi-factor similarity score and diversified across companies.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"job_id": map[string]interface{}{
					"type":        "string",
					"description": "UUID of the job to compare against",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of similar jobs to return (default: 3, max: 10)",
				},
				"debug": map[string]interface{}{
					"type":        "boolean",
					"description": "Include per-factor scores and a trace of the ranking steps",
				},
			},
			"required": []string{"job_id"},
		},
	},
	{
		Name:        "get_job",
		Description: "Get the full details of a job posting including its company.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"job_id": map[string]interface{}{
					"type":        "string",
					"description": "UUID of the job",
				},
			},
			"required": []string{"job_id"},
		},
	},
	{
		Name:        "list_jobs",
		Description: "List job postings with optional filters, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"status": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"active", "draft", "closed", "expired", "all"},
					"description": "Filter by posting status. Use 'all' or omit for no filter.",
				},
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Filter by region tag",
				},
				"since_days": map[string]interface{}{
					"type":        "integer",
					"description": "Only show jobs posted in the last N days",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "search_jobs",
		Description: "Search job postings by title, department, location, skill or company name.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query text",
				},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get aggregate statistics about stored job postings and companies.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}

package model

// Variable is a named configuration value.
type Variable struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

// VariableCollection is a paginated list of variables.
type VariableCollection struct {
	Variables    []Variable `json:"variables"`
	TotalEntries int        `json:"total_entries"`
}

// Connection describes how the orchestrator reaches an external system.
type Connection struct {
	ConnID   string         `json:"conn_id"`
	ConnType string         `json:"conn_type"`
	Host     *string        `json:"host"`
	Port     *int           `json:"port"`
	Login    *string        `json:"login"`
	Password *string        `json:"password"`
	Schema   *string        `json:"connection_schema"`
	Extra    map[string]any `json:"extra"`
}

// ConnectionCollection is a paginated list of connections.
type ConnectionCollection struct {
	Connections  []Connection `json:"connections"`
	TotalEntries int          `json:"total_entries"`
}

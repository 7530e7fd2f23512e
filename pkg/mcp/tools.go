package mcp

import (
	"context"
	"fmt"
)

// ToolHandler is the signature for tool execution functions. Upstream
// failures are returned unwrapped; the dispatcher maps them to JSON-RPC
// errors in one place.
type ToolHandler func(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error)

// Tool represents a registered MCP tool.
type Tool struct {
	Definition ToolDefinition
	Handler    ToolHandler
}

// ToolRegistry manages all registered MCP tools.
// Tools are stored in a slice to preserve registration order for tools/list.
type ToolRegistry struct {
	tools  []*Tool
	byName map[string]*Tool
}

// NewToolRegistry creates a tool registry holding the full built-in catalog.
func NewToolRegistry() *ToolRegistry {
	r := &ToolRegistry{
		tools:  make([]*Tool, 0, 64),
		byName: make(map[string]*Tool, 64),
	}
	r.registerBuiltinTools()
	return r
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(tool *Tool) {
	r.tools = append(r.tools, tool)
	r.byName[tool.Definition.Name] = tool
}

// Get retrieves a tool by name, or nil.
func (r *ToolRegistry) Get(name string) *Tool {
	return r.byName[name]
}

// List returns tool definitions in registration order. When the catalog has
// not been fully loaded, only the minimal bootstrap set is returned.
func (r *ToolRegistry) List(catalog *Catalog) []ToolDefinition {
	if catalog.Full() {
		defs := make([]ToolDefinition, 0, len(r.tools))
		for _, tool := range r.tools {
			defs = append(defs, tool.Definition)
		}
		return defs
	}

	defs := make([]ToolDefinition, 0, len(minimalTools))
	for _, tool := range r.tools {
		for _, name := range minimalTools {
			if tool.Definition.Name == name {
				defs = append(defs, tool.Definition)
				break
			}
		}
	}
	return defs
}

// argError marks a missing or mistyped tool argument. The dispatcher turns
// it into an invalid-params error.
type argError struct {
	msg string
}

func (e *argError) Error() string {
	return e.msg
}

// Argument extraction helpers. The required variants return an argError with
// the field name; optional variants fall back to a default.

func requireString(args map[string]interface{}, key string) (string, error) {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s, nil
		}
	}
	return "", &argError{msg: "Missing " + key}
}

func requireInt(args map[string]interface{}, key string) (int, error) {
	if v, ok := args[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n), nil
		case int:
			return n, nil
		}
	}
	return 0, &argError{msg: "Missing " + key}
}

func getString(args map[string]interface{}, key, defaultVal string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}

func getInt(args map[string]interface{}, key string, defaultVal int) int {
	if v, ok := args[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return defaultVal
}

func getBool(args map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := args[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// optBool distinguishes an absent bool argument from an explicit false.
func optBool(args map[string]interface{}, key string) *bool {
	if v, ok := args[key]; ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}

// guestType returns the guest type argument, defaulting to "qemu", and
// rejects values outside {qemu, lxc}.
func guestType(args map[string]interface{}, defaultVal string) (string, error) {
	t := getString(args, "type", defaultVal)
	if t != "qemu" && t != "lxc" {
		return "", &argError{msg: fmt.Sprintf("invalid type %q", t)}
	}
	return t, nil
}

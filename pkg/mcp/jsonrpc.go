package mcp

import (
	"encoding/json"
	"fmt"
)

// ParseRequestBytes parses a JSON-RPC request from bytes.
func ParseRequestBytes(data []byte) (*JSONRPCRequest, *JSONRPCError) {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, ParseError(err.Error())
	}

	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

// ValidateRequest validates a JSON-RPC request.
func ValidateRequest(req *JSONRPCRequest) *JSONRPCError {
	if req.JSONRPC != "2.0" {
		return InvalidRequestError("jsonrpc must be \"2.0\"")
	}

	if req.Method == "" {
		return InvalidRequestError("method is required")
	}

	return nil
}

// NewNotification creates a new JSON-RPC notification.
func NewNotification(method string, params interface{}) *JSONRPCNotification {
	return &JSONRPCNotification{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	}
}

// ToolsListChangedNotification creates a tools/list_changed notification,
// sent out of band after the full catalog is loaded.
func ToolsListChangedNotification() *JSONRPCNotification {
	return NewNotification("notifications/tools/list_changed", nil)
}

// UnmarshalParamsRequired unmarshals required request params.
func UnmarshalParamsRequired[T any](params json.RawMessage) (*T, *JSONRPCError) {
	if len(params) == 0 {
		return nil, InvalidParamsError("params required")
	}

	var result T
	if err := json.Unmarshal(params, &result); err != nil {
		return nil, InvalidParamsError(err.Error())
	}
	return &result, nil
}

// ToolResultText creates a text content tool result.
func ToolResultText(text string) *ToolResult {
	return &ToolResult{
		Content: []ContentBlock{
			{Type: "text", Text: text},
		},
	}
}

// ToolResultTextf creates a formatted text content tool result.
func ToolResultTextf(format string, args ...interface{}) *ToolResult {
	return ToolResultText(fmt.Sprintf(format, args...))
}

// ToolResultJSON creates a tool result holding v pretty-printed as JSON text.
func ToolResultJSON(v interface{}) (*ToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return ToolResultText(string(data)), nil
}

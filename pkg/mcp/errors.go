package mcp

import (
	"fmt"

	"github.com/getproxmoxd/proxmoxd/pkg/pve"
)

// Standard JSON-RPC 2.0 error codes.
const (
	// ErrCodeParseError indicates invalid JSON was received.
	ErrCodeParseError = -32700

	// ErrCodeInvalidRequest indicates the JSON is not a valid JSON-RPC request.
	ErrCodeInvalidRequest = -32600

	// ErrCodeMethodNotFound indicates the method does not exist.
	ErrCodeMethodNotFound = -32601

	// ErrCodeInvalidParams indicates invalid method parameters.
	ErrCodeInvalidParams = -32602

	// ErrCodeInternalError indicates an internal JSON-RPC error.
	ErrCodeInternalError = -32603
)

// Domain error codes (-32001 to -32099).
const (
	// ErrCodeAuth indicates upstream authentication failed.
	ErrCodeAuth = -32001

	// ErrCodeTimeout indicates an upstream operation timed out.
	ErrCodeTimeout = -32002

	// ErrCodeNotFound indicates the addressed upstream resource does not exist.
	ErrCodeNotFound = -32004
)

// NewJSONRPCError creates a JSON-RPC error.
func NewJSONRPCError(code int, message string, data interface{}) *JSONRPCError {
	return &JSONRPCError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// ParseError creates a parse error.
func ParseError(detail string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeParseError, "Parse error: "+detail, nil)
}

// InvalidRequestError creates an invalid request error.
func InvalidRequestError(detail string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeInvalidRequest, "Invalid request: "+detail, nil)
}

// MethodNotFoundError creates the error for an unrecognized method.
// Handler-level failures are reported as -32603; only frame-level
// failures use the dedicated protocol codes.
func MethodNotFoundError(method string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeInternalError, "Method not found: "+method, nil)
}

// InvalidParamsError creates the error for missing or malformed
// arguments. Reported as -32603, same as other handler failures.
func InvalidParamsError(detail string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeInternalError, "Invalid params: "+detail, nil)
}

// InternalError creates an internal error.
func InternalError(detail string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeInternalError, "Internal error: "+detail, nil)
}

// UnknownToolError creates the error returned for a tools/call naming a tool
// that does not exist.
func UnknownToolError(name string) *JSONRPCError {
	return NewJSONRPCError(ErrCodeInternalError, "Unknown tool: "+name, nil)
}

// FromDomainError converts a failure from the upstream client into a
// JSON-RPC error. This is the only place domain errors are mapped; handlers
// return them unwrapped.
func FromDomainError(err error) *JSONRPCError {
	pveErr, ok := pve.As(err)
	if !ok {
		return InternalError(err.Error())
	}

	switch pveErr.Kind {
	case pve.KindAuth:
		return NewJSONRPCError(ErrCodeAuth, pveErr.Error(), nil)
	case pve.KindTimeout:
		return NewJSONRPCError(ErrCodeTimeout, pveErr.Error(), nil)
	case pve.KindNotFound:
		return NewJSONRPCError(ErrCodeNotFound, pveErr.Error(), nil)
	case pve.KindAPI:
		// Auth-shaped statuses keep their domain codes even when the
		// upstream reports them as plain HTTP errors.
		switch pveErr.Status {
		case 401, 403:
			return NewJSONRPCError(ErrCodeAuth, pveErr.Error(), nil)
		case 404:
			return NewJSONRPCError(ErrCodeNotFound, pveErr.Error(), nil)
		default:
			return NewJSONRPCError(ErrCodeInternalError, pveErr.Error(), map[string]interface{}{
				"status":  pveErr.Status,
				"details": pveErr.Body,
			})
		}
	default:
		// KindJSON, KindTransport, KindInvalidURL, KindInternal.
		return InternalError(pveErr.Error())
	}
}

// Error implements the error interface for JSONRPCError.
func (e *JSONRPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s (%d): %v", e.Message, e.Code, e.Data)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

// ErrorResponse creates a JSON-RPC error response.
func ErrorResponse(id interface{}, err *JSONRPCError) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   err,
	}
}

// SuccessResponse creates a JSON-RPC success response.
func SuccessResponse(id interface{}, result interface{}) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

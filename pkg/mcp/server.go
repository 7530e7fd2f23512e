package mcp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/getproxmoxd/proxmoxd/pkg/logging"
	"github.com/getproxmoxd/proxmoxd/pkg/pve"
)

// Server is the transport-independent MCP protocol core: it dispatches
// JSON-RPC requests to the tool registry, the resource provider, and the
// upstream client. Transports (stdio, HTTP) feed it one request at a time
// and drain the catalog's pending notification after each response.
type Server struct {
	client      *pve.Client
	tools       *ToolRegistry
	catalog     *Catalog
	resources   *ResourceProvider
	taskTimeout time.Duration
	log         *slog.Logger
}

// NewServer creates an MCP server over the given upstream client.
func NewServer(client *pve.Client, cfg *Config) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		client:      client,
		tools:       NewToolRegistry(),
		catalog:     NewCatalog(cfg.Lazy),
		taskTimeout: cfg.TaskTimeout,
		log:         logging.Nop(),
	}
	s.resources = NewResourceProvider(client)
	return s
}

// SetLogger sets the operational logger.
func (s *Server) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// Catalog exposes the tool-catalog state machine to transports, which drain
// its pending notification.
func (s *Server) Catalog() *Catalog {
	return s.catalog
}

// Dispatch routes one request to its handler and returns the result or a
// JSON-RPC error. Transports decide per the request's id whether a response
// is emitted.
func (s *Server) Dispatch(ctx context.Context, req *JSONRPCRequest) (interface{}, *JSONRPCError) {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		s.log.Info("client initialized")
		return nil, nil
	case "ping":
		return map[string]interface{}{}, nil

	case "tools/list":
		return &ToolsListResult{Tools: s.tools.List(s.catalog)}, nil
	case "tools/call":
		return s.handleToolsCall(ctx, req.Params)

	case "resources/list":
		return &ResourcesListResult{Resources: s.resources.List()}, nil
	case "resources/read":
		return s.handleResourcesRead(ctx, req.Params)

	default:
		return nil, MethodNotFoundError(req.Method)
	}
}

func (s *Server) handleInitialize(req *JSONRPCRequest) (interface{}, *JSONRPCError) {
	if len(req.Params) > 0 {
		params, err := UnmarshalParamsRequired[InitializeParams](req.Params)
		if err != nil {
			return nil, err
		}
		s.log.Info("initialize",
			"client", params.ClientInfo.Name,
			"clientVersion", params.ClientInfo.Version,
			"protocol", params.ProtocolVersion,
		)
	}

	return &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools:     &ToolsCapability{ListChanged: true},
			Resources: &ResourcesCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}, nil
}

func (s *Server) handleToolsCall(ctx context.Context, params []byte) (interface{}, *JSONRPCError) {
	callParams, rpcErr := UnmarshalParamsRequired[ToolCallParams](params)
	if rpcErr != nil {
		return nil, rpcErr
	}

	tool := s.tools.Get(callParams.Name)
	if tool == nil {
		return nil, UnknownToolError(callParams.Name)
	}

	args := callParams.Arguments
	if args == nil {
		args = map[string]interface{}{}
	}

	s.log.Debug("tool call", "tool", callParams.Name)

	result, err := tool.Handler(ctx, s, args)
	if err != nil {
		var ae *argError
		if errors.As(err, &ae) {
			return nil, InvalidParamsError(ae.msg)
		}
		s.log.Warn("tool failed", "tool", callParams.Name, "error", err)
		return nil, FromDomainError(err)
	}
	return result, nil
}

func (s *Server) handleResourcesRead(ctx context.Context, params []byte) (interface{}, *JSONRPCError) {
	readParams, rpcErr := UnmarshalParamsRequired[ResourceReadParams](params)
	if rpcErr != nil {
		return nil, rpcErr
	}

	contents, err := s.resources.Read(ctx, readParams.URI)
	if err != nil {
		var rpc *JSONRPCError
		if errors.As(err, &rpc) {
			return nil, rpc
		}
		return nil, FromDomainError(err)
	}

	return &ResourceReadResult{Contents: contents}, nil
}

package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/getproxmoxd/proxmoxd/pkg/logging"
)

// StdioServer runs the MCP protocol over stdin/stdout (newline-delimited
// JSON-RPC). This is the primary transport for MCP clients like Claude
// Desktop and Cursor. It is single-peer: one request is fully dispatched,
// including any upstream polling, before the next line is read, and
// responses are emitted strictly in request order.
//
// Usage in Claude Desktop config:
//
//	{
//	  "mcpServers": {
//	    "proxmox": {
//	      "command": "proxmoxd",
//	      "args": ["serve"]
//	    }
//	  }
//	}
type StdioServer struct {
	server *Server
	reader io.Reader
	writer io.Writer
	log    *slog.Logger
	mu     sync.Mutex
}

// NewStdioServer creates a new stdio MCP server.
func NewStdioServer(server *Server) *StdioServer {
	return &StdioServer{
		server: server,
		reader: os.Stdin,
		writer: os.Stdout,
		log:    logging.Nop(),
	}
}

// SetLogger sets the logger. Logs go to stderr or a file; stdout carries
// only protocol frames.
func (s *StdioServer) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// SetIO overrides the default stdin/stdout for testing.
func (s *StdioServer) SetIO(reader io.Reader, writer io.Writer) {
	s.reader = reader
	s.writer = writer
}

// Run starts the stdio event loop. Blocks until EOF on stdin, context
// cancellation, or a read error.
func (s *StdioServer) Run(ctx context.Context) error {
	s.log.Info("MCP stdio server starting",
		"version", ServerVersion,
		"protocol", ProtocolVersion,
	)

	scanner := bufio.NewScanner(s.reader)
	// Newline-delimited JSON; allow up to 10MB per message.
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		s.log.Debug("received", "message", string(line))

		req, parseErr := ParseRequestBytes(line)
		if parseErr != nil {
			// The id of a malformed frame is unrecoverable, so no
			// response can be addressed to it. Log and drop.
			s.log.Error("dropping malformed message", "error", parseErr)
			continue
		}

		result, rpcErr := s.server.Dispatch(ctx, req)

		if req.IsNotification() {
			if rpcErr != nil {
				s.log.Error("notification failed", "method", req.Method, "error", rpcErr)
			}
		} else if rpcErr != nil {
			s.writeMessage(ErrorResponse(req.ID, rpcErr))
		} else {
			s.writeMessage(SuccessResponse(req.ID, result))
		}

		// The catalog flag is drained only after the triggering response
		// is on the wire, so the client always sees response before
		// notification.
		if s.server.Catalog().TakeNotification() {
			s.writeMessage(ToolsListChangedNotification())
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stdin read error: %w", err)
	}

	s.log.Info("MCP stdio server stopped (EOF)")
	return nil
}

// writeMessage writes a JSON-RPC message as a single line to stdout.
func (s *StdioServer) writeMessage(msg interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("failed to marshal message", "error", err)
		return
	}

	s.log.Debug("sending", "message", string(data))

	data = append(data, '\n')
	if _, err := s.writer.Write(data); err != nil {
		s.log.Error("failed to write message", "error", err)
	}
}

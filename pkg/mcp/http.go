package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getproxmoxd/proxmoxd/pkg/logging"
)

// HTTPServer is the Streamable-HTTP transport: POST /mcp carries JSON-RPC
// requests with an Mcp-Session-Id header, GET /mcp opens an SSE stream for
// out-of-band notifications, DELETE /mcp ends the session. It feeds the same
// dispatcher as the stdio transport; the catalog's list_changed notification
// is broadcast to every live session.
type HTTPServer struct {
	server     *Server
	config     *Config
	sessions   *SessionManager
	httpServer *http.Server
	stopCh     chan struct{}
	log        *slog.Logger
}

// NewHTTPServer creates the HTTP transport over an MCP server.
func NewHTTPServer(server *Server, cfg *Config) *HTTPServer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &HTTPServer{
		server:   server,
		config:   cfg,
		sessions: NewSessionManager(cfg.SessionTimeout),
		stopCh:   make(chan struct{}),
		log:      logging.Nop(),
	}
}

// SetLogger sets the logger.
func (h *HTTPServer) SetLogger(log *slog.Logger) {
	if log != nil {
		h.log = log
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (h *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", h.handleMCP)
	return h.withAuth(mux)
}

// Run starts the HTTP listener and blocks until ctx is cancelled.
func (h *HTTPServer) Run(ctx context.Context) error {
	h.httpServer = &http.Server{
		Addr:        h.config.Address(),
		Handler:     h.Handler(),
		ReadTimeout: 30 * time.Second,
	}

	h.sessions.StartCleanupRoutine(time.Minute, h.stopCh)

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("MCP HTTP server starting", "addr", h.config.Address())
		if err := h.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		close(h.stopCh)
		return err
	case <-ctx.Done():
	}

	close(h.stopCh)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.httpServer.Shutdown(shutdownCtx)
}

// withAuth enforces the optional bearer token.
func (h *HTTPServer) withAuth(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.config.HTTPAuthToken != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+h.config.HTTPAuthToken {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		handler.ServeHTTP(w, r)
	})
}

func (h *HTTPServer) handleMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleJSONRPC(w, r)
	case http.MethodGet:
		h.handleSSE(w, r)
	case http.MethodDelete:
		h.handleSessionDelete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *HTTPServer) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, nil, ParseError(err.Error()))
		return
	}

	req, parseErr := ParseRequestBytes(body)
	if parseErr != nil {
		h.writeError(w, nil, parseErr)
		return
	}

	var session *Session
	if req.Method == "initialize" {
		session, err = h.sessions.Create()
		if err != nil {
			h.writeError(w, req.ID, InternalError(err.Error()))
			return
		}
		w.Header().Set("Mcp-Session-Id", session.ID)
	} else {
		sessionID := r.Header.Get("Mcp-Session-Id")
		session = h.sessions.Get(sessionID)
		if session == nil {
			h.writeError(w, req.ID, InvalidRequestError("unknown or expired session"))
			return
		}
		session.Touch()
	}

	result, rpcErr := h.server.Dispatch(r.Context(), req)

	// Multiple peers can race on the catalog; whoever drains the flag
	// broadcasts to everyone.
	if h.server.Catalog().TakeNotification() {
		h.sessions.Broadcast(ToolsListChangedNotification())
	}

	if req.IsNotification() {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	if rpcErr != nil {
		h.writeError(w, req.ID, rpcErr)
		return
	}
	h.writeJSON(w, SuccessResponse(req.ID, result))
}

func (h *HTTPServer) handleSSE(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Get(r.Header.Get("Mcp-Session-Id"))
	if session == nil {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case notif, ok := <-session.Events:
			if !ok {
				return
			}
			data, err := json.Marshal(notif)
			if err != nil {
				h.log.Error("failed to marshal notification", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		case <-r.Context().Done():
			return
		case <-h.stopCh:
			return
		}
	}
}

func (h *HTTPServer) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("Mcp-Session-Id")
	if sessionID == "" {
		http.Error(w, "Missing session", http.StatusBadRequest)
		return
	}
	h.sessions.Delete(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPServer) writeJSON(w http.ResponseWriter, resp *JSONRPCResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("failed to write response", "error", err)
	}
}

func (h *HTTPServer) writeError(w http.ResponseWriter, id interface{}, rpcErr *JSONRPCError) {
	h.writeJSON(w, ErrorResponse(id, rpcErr))
}

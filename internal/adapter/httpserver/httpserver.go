// Package httpserver serves an add-on router from a persistent TCP
// listener. The accept loop hands each connection to its own goroutine;
// the router is shared read-only across all of them.
package httpserver

import (
	"net"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/addonkit-project/addonkit-go/internal/adapter"
	"github.com/addonkit-project/addonkit-go/pkg/router"
	"github.com/addonkit-project/addonkit-go/pkg/transport"
)

// ServerAdapter represents the HTTP server runtime adapter
type ServerAdapter struct {
	router *router.Router
	log    hclog.Logger
}

// NewAdapter creates a new HTTP server adapter instance
func NewAdapter(rt *router.Router, log hclog.Logger) adapter.Adapter {
	return &ServerAdapter{router: rt, log: log}
}

// Start binds the listening socket and runs the accept loop until it
// fails. Per-connection errors are logged and never abort the loop.
func (a *ServerAdapter) Start() {
	opts := a.router.Options()
	addr := net.JoinHostPort(opts.BindAddress, strconv.Itoa(opts.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		a.log.Error("failed to bind listener", "addr", addr, "error", err)
		return
	}
	a.log.Info("server listening", "addr", addr)

	srv := &http.Server{
		Handler: a,
		// Connection-level errors (broken pipes, TLS noise) surface here
		// instead of on the default global logger.
		ErrorLog: a.log.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}
	if err := srv.Serve(listener); err != nil {
		a.log.Error("server terminated", "error", err)
	}
}

// ServeHTTP feeds one request through the router. A routing failure is
// isolated to this request and answered with a 500.
func (a *ServerAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	a.log.Debug("request received", "id", requestID, "method", r.Method, "uri", r.URL.String())

	resp, err := a.router.Route(r.Context(), transport.NewHTTPRequest(r))
	if err != nil {
		a.log.Error("request failed", "id", requestID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := resp.WriteHTTP(w); err != nil {
		a.log.Error("failed to write response", "id", requestID, "error", err)
		return
	}
	a.log.Debug("request handled", "id", requestID, "status", resp.StatusCode(), "length", len(resp.Body()))
}

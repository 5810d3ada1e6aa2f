package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/addonkit-project/addonkit-go/pkg/addon"
	"github.com/addonkit-project/addonkit-go/pkg/transport"
)

// Router dispatches parsed resource requests to their handlers and formats
// the responses. It is immutable after construction and safe to share
// across concurrently executing requests without locking.
type Router struct {
	manifest addon.Manifest
	handlers []Handler
	opts     ServerOptions
}

func newRouter(manifest addon.Manifest, handlers []Handler, opts ServerOptions) *Router {
	return &Router{manifest: manifest, handlers: handlers, opts: opts}
}

// Manifest returns the manifest the router serves.
func (rt *Router) Manifest() addon.Manifest {
	return rt.manifest
}

// Options returns the serving configuration the router was built with.
func (rt *Router) Options() ServerOptions {
	return rt.opts
}

// Route processes one request through to a finalised response. An error
// return means the request could not be answered at all (a serialisation
// failure or a failed handler) and is never folded into a 404.
func (rt *Router) Route(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if req.Method() != http.MethodGet {
		return rt.plainText(req, http.StatusMethodNotAllowed, "Method Not Allowed"), nil
	}

	switch path := req.URI().Path; path {
	case "/":
		return transport.NewBuilder(req).
			Header("Content-Type", "text/html").
			Body([]byte(rt.opts.LandingHTML)).
			Finalize(), nil
	case addon.ManifestPath:
		body, err := json.Marshal(rt.manifest)
		if err != nil {
			return nil, fmt.Errorf("serialise manifest: %w", err)
		}
		return rt.jsonResponse(req, body), nil
	default:
		return rt.routeResource(ctx, req, path)
	}
}

func (rt *Router) routeResource(ctx context.Context, req *transport.Request, path string) (*transport.Response, error) {
	resourcePath, err := ParseResourcePath(path)
	if err != nil {
		return rt.plainText(req, http.StatusBadRequest, "Bad Request"), nil
	}

	handler, ok := rt.lookup(resourcePath.Resource)
	if !ok {
		return rt.plainText(req, http.StatusNotFound, "Not Found"), nil
	}

	resource, err := handler.Func(ctx, resourcePath)
	if err != nil {
		return nil, fmt.Errorf("handler %q: %w", handler.Name, err)
	}
	if resource == nil {
		return rt.plainText(req, http.StatusNotFound, "Not Found"), nil
	}

	body, err := json.Marshal(resource)
	if err != nil {
		return nil, fmt.Errorf("serialise %q resource: %w", handler.Name, err)
	}
	return rt.jsonResponse(req, body), nil
}

// lookup matches the first path segment against handler names by exact
// equality. Prefix matching would let a handler named "stream" answer a
// path segment "streams".
func (rt *Router) lookup(name string) (Handler, bool) {
	for _, h := range rt.handlers {
		if h.Name == name {
			return h, true
		}
	}
	return Handler{}, false
}

func (rt *Router) jsonResponse(req *transport.Request, body []byte) *transport.Response {
	return transport.NewBuilder(req).
		Header("Content-Type", "application/json").
		Header("Access-Control-Allow-Origin", "*").
		Header("Cache-Control", fmt.Sprintf("max-age=%d, public", rt.opts.CacheMaxAge)).
		Body(body).
		Finalize()
}

func (rt *Router) plainText(req *transport.Request, status int, body string) *transport.Response {
	return transport.NewBuilder(req).
		Status(status).
		Body([]byte(body)).
		Finalize()
}

// Package transport normalises the two inbound request representations —
// a persistent-connection HTTP request and a single-invocation Lambda
// event — behind one read interface, and re-materialises responses into
// the transport-specific form only at the boundary. Routing logic never
// branches on the transport kind.
package transport

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// Kind tags a request with the transport it arrived on. The tag is carried
// through to the response builder so the response is finalised into the
// matching concrete form.
type Kind int

const (
	// KindHTTP is a request read from a persistent HTTP connection.
	KindHTTP Kind = iota
	// KindAPIGateway is a single-invocation API Gateway proxy event.
	KindAPIGateway
	// KindFunctionURL is a single-invocation Lambda Function URL event.
	KindFunctionURL
)

func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindAPIGateway:
		return "apigateway"
	case KindFunctionURL:
		return "functionurl"
	default:
		return "unknown"
	}
}

// Request is the uniform read view over an inbound request.
type Request struct {
	kind   Kind
	method string
	uri    *url.URL
}

// NewHTTPRequest wraps a request read from a persistent HTTP connection.
func NewHTTPRequest(r *http.Request) *Request {
	return &Request{kind: KindHTTP, method: r.Method, uri: r.URL}
}

// NewAPIGatewayRequest wraps an API Gateway proxy invocation.
func NewAPIGatewayRequest(ev events.APIGatewayProxyRequest) (*Request, error) {
	uri, err := url.Parse(ev.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", ev.Path, err)
	}
	return &Request{kind: KindAPIGateway, method: ev.HTTPMethod, uri: uri}, nil
}

// NewFunctionURLRequest wraps a Lambda Function URL invocation.
func NewFunctionURLRequest(ev events.LambdaFunctionURLRequest) (*Request, error) {
	uri, err := url.Parse(ev.RawPath)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", ev.RawPath, err)
	}
	return &Request{kind: KindFunctionURL, method: ev.RequestContext.HTTP.Method, uri: uri}, nil
}

// Kind returns the transport tag of the request.
func (r *Request) Kind() Kind {
	return r.kind
}

// Method returns the HTTP method of the request.
func (r *Request) Method() string {
	return r.method
}

// URI returns the request URI.
func (r *Request) URI() *url.URL {
	return r.uri
}

package transport

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Builder accumulates status code, headers and body independent of the
// transport the request arrived on.
type Builder struct {
	kind   Kind
	status int
	header http.Header
	body   []byte
}

// NewBuilder returns a response builder tagged with the transport kind of
// the request it answers. The status defaults to 200.
func NewBuilder(req *Request) *Builder {
	return &Builder{
		kind:   req.kind,
		status: http.StatusOK,
		header: make(http.Header),
	}
}

// Status sets the response status code.
func (b *Builder) Status(code int) *Builder {
	b.status = code
	return b
}

// Header sets a response header.
func (b *Builder) Header(key, value string) *Builder {
	b.header.Set(key, value)
	return b
}

// Body sets the response body.
func (b *Builder) Body(body []byte) *Builder {
	b.body = body
	return b
}

// Finalize freezes the accumulated state into a Response carrying the
// original transport tag.
func (b *Builder) Finalize() *Response {
	return &Response{kind: b.kind, status: b.status, header: b.header, body: b.body}
}

// Response is a finalised, transport-tagged response. Body and headers are
// byte-identical regardless of which concrete form it is materialised
// into.
type Response struct {
	kind   Kind
	status int
	header http.Header
	body   []byte
}

// Kind returns the transport tag of the response.
func (r *Response) Kind() Kind {
	return r.kind
}

// StatusCode returns the response status code.
func (r *Response) StatusCode() int {
	return r.status
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	return r.header
}

// Body returns the response body.
func (r *Response) Body() []byte {
	return r.body
}

// WriteHTTP materialises the response onto a persistent-connection
// http.ResponseWriter. The response must carry the KindHTTP tag.
func (r *Response) WriteHTTP(w http.ResponseWriter) error {
	if r.kind != KindHTTP {
		return fmt.Errorf("response is tagged %s, not %s", r.kind, KindHTTP)
	}
	for key, values := range r.header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(r.status)
	if _, err := w.Write(r.body); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}

// APIGatewayResponse materialises the response as an API Gateway proxy
// response. The response must carry the KindAPIGateway tag.
func (r *Response) APIGatewayResponse() (events.APIGatewayProxyResponse, error) {
	if r.kind != KindAPIGateway {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("response is tagged %s, not %s", r.kind, KindAPIGateway)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: r.status,
		Headers:    headerToMap(r.header),
		Body:       string(r.body),
	}, nil
}

// FunctionURLResponse materialises the response as a Lambda Function URL
// response. The response must carry the KindFunctionURL tag.
func (r *Response) FunctionURLResponse() (events.LambdaFunctionURLResponse, error) {
	if r.kind != KindFunctionURL {
		return events.LambdaFunctionURLResponse{}, fmt.Errorf("response is tagged %s, not %s", r.kind, KindFunctionURL)
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: r.status,
		Headers:    headerToMap(r.header),
		Body:       string(r.body),
	}, nil
}

func headerToMap(header http.Header) map[string]string {
	result := make(map[string]string, len(header))
	for key, values := range header {
		result[key] = strings.Join(values, ",")
	}
	return result
}

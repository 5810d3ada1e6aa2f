// Package awslambda serves an add-on router from a single-invocation AWS
// Lambda runtime. One invocation maps to exactly one Route call; there is
// no accept loop. Both API Gateway proxy events and Lambda Function URL
// events are supported.
package awslambda

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/hashicorp/go-hclog"

	"github.com/addonkit-project/addonkit-go/internal/adapter"
	"github.com/addonkit-project/addonkit-go/pkg/router"
	"github.com/addonkit-project/addonkit-go/pkg/transport"
)

// LambdaAdapter represents the AWS Lambda runtime adapter
type LambdaAdapter struct {
	router *router.Router
	log    hclog.Logger
}

// NewAdapter creates a new Lambda adapter instance. The router is built
// once at cold start and reused across invocations.
func NewAdapter(rt *router.Router, log hclog.Logger) adapter.Adapter {
	return &LambdaAdapter{router: rt, log: log}
}

// Start begins the Lambda runtime
func (a *LambdaAdapter) Start() {
	lambda.Start(a.HandleRequest)
}

// HandleRequest handles one Lambda invocation. The payload shape decides
// whether it is treated as an API Gateway proxy request or a Function URL
// request.
func (a *LambdaAdapter) HandleRequest(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var apiGatewayReq events.APIGatewayProxyRequest
	var functionURLReq events.LambdaFunctionURLRequest

	if err := json.Unmarshal(raw, &apiGatewayReq); err == nil && apiGatewayReq.HTTPMethod != "" {
		return a.handleAPIGateway(ctx, apiGatewayReq)
	} else if err := json.Unmarshal(raw, &functionURLReq); err == nil && functionURLReq.RequestContext.HTTP.Method != "" {
		return a.handleFunctionURL(ctx, functionURLReq)
	}
	a.log.Warn("unsupported lambda payload")
	return events.LambdaFunctionURLResponse{StatusCode: 400, Body: "Unsupported request type"}, nil
}

func (a *LambdaAdapter) handleAPIGateway(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := transport.NewAPIGatewayRequest(ev)
	if err != nil {
		a.log.Error("failed to convert request", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500, Body: "Failed to convert request"}, nil
	}
	a.log.Debug("request received", "method", req.Method(), "uri", req.URI().String())

	resp, err := a.router.Route(ctx, req)
	if err != nil {
		a.log.Error("request failed", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500, Body: "Internal Server Error"}, nil
	}
	return resp.APIGatewayResponse()
}

func (a *LambdaAdapter) handleFunctionURL(ctx context.Context, ev events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	req, err := transport.NewFunctionURLRequest(ev)
	if err != nil {
		a.log.Error("failed to convert request", "error", err)
		return events.LambdaFunctionURLResponse{StatusCode: 500, Body: "Failed to convert request"}, nil
	}
	a.log.Debug("request received", "method", req.Method(), "uri", req.URI().String())

	resp, err := a.router.Route(ctx, req)
	if err != nil {
		a.log.Error("request failed", "error", err)
		return events.LambdaFunctionURLResponse{StatusCode: 500, Body: "Internal Server Error"}, nil
	}
	return resp.FunctionURLResponse()
}

package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"invoice-backend/internal/bootstrap"
	"invoice-backend/internal/shared/config"
)

var (
	initOnce sync.Once
	initErr  error
	proxy    *ginadapter.GinLambdaV2
)

func initApp() {
	app, err := bootstrap.Build(config.Load())
	if err != nil {
		initErr = err
		return
	}
	proxy = ginadapter.NewV2(app.Router)
}

func errorResponse(message string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error":{"code":"bootstrap_failed","message":"` + message + `"}}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		return errorResponse("Service failed to start"), initErr
	}
	if proxy == nil {
		return errorResponse("Router not initialized"), nil
	}
	return proxy.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}

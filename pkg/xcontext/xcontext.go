package xcontext

import (
	"context"
	"net/http"

	"github.com/erickyeagle/notification-roles-bot/pkg/logger"
)

type (
	loggerKey     struct{}
	httpClientKey struct{}
	requestIDKey  struct{}
)

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l := ctx.Value(loggerKey{})
	if l == nil {
		return logger.NewLogger(logger.INFO)
	}

	return l.(logger.Logger)
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	client := ctx.Value(httpClientKey{})
	if client == nil {
		return http.DefaultClient
	}

	return client.(*http.Client)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id := ctx.Value(requestIDKey{})
	if id == nil {
		return ""
	}

	return id.(string)
}

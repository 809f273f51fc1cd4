package mid

import (
	"context"
	"net/http"

	"github.com/emendasgov/emendas/business/sdk/web"
	"github.com/emendasgov/emendas/foundation/otel"
	"go.opentelemetry.io/otel/trace"
)

// Otel injects the tracer into the context so handlers can add spans.
func Otel(tracer trace.Tracer) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = otel.InjectTracing(ctx, tracer)

			return next(ctx, r)
		}

		return h
	}

	return m
}

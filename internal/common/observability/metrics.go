package observability

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	tracer          trace.Tracer
	requestCounter  otelmetric.Int64Counter
	requestDuration otelmetric.Float64Histogram
}

// New sets up an OpenTelemetry meter provider that exports through reg.
// On exporter failure the returned value is still usable; it records nothing.
func New(serviceName string, reg promclient.Registerer) (*Observability, error) {
	o := &Observability{tracer: otel.Tracer(serviceName)}

	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return o, err
	}

	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	provider := metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	o.meterProvider = provider
	o.meter = provider.Meter(serviceName)

	o.requestCounter, _ = o.meter.Int64Counter(
		"http.server.requests",
		otelmetric.WithDescription("Number of HTTP requests served"),
	)
	o.requestDuration, _ = o.meter.Float64Histogram(
		"http.server.duration",
		otelmetric.WithDescription("HTTP request handling duration"),
		otelmetric.WithUnit("ms"),
	)

	return o, nil
}

// Tracer returns the tracer used for roster spans.
func (o *Observability) Tracer() trace.Tracer {
	if o == nil || o.tracer == nil {
		return otel.Tracer("activity-server")
	}
	return o.tracer
}

func (o *Observability) RecordRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	if o.requestCounter != nil {
		o.requestCounter.Add(ctx, 1, attrs)
	}
	if o.requestDuration != nil {
		o.requestDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

type statusCoder interface {
	HTTPStatus() int
}

// Middleware records one request count and duration per served request.
func (o *Observability) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				var sc statusCoder
				switch {
				case errors.As(err, &he):
					status = he.Code
				case errors.As(err, &sc):
					status = sc.HTTPStatus()
				default:
					status = http.StatusInternalServerError
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			o.RecordRequest(c.Request().Context(), c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/omeyang/xsortpool/pkg/observability/xmetrics"
)

// telemetry 在进程内收集指标，运行结束后一次性输出，不依赖外部后端。
type telemetry struct {
	observer xmetrics.Observer
	reader   *sdkmetric.ManualReader
	meters   *sdkmetric.MeterProvider
	tracers  *sdktrace.TracerProvider
}

func newTelemetry() (*telemetry, error) {
	reader := sdkmetric.NewManualReader()
	meters := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	tracers := sdktrace.NewTracerProvider()

	observer, err := xmetrics.NewOTelObserver(
		xmetrics.WithInstrumentationName("github.com/omeyang/xsortpool/cmd/xsortbench"),
		xmetrics.WithMeterProvider(meters),
		xmetrics.WithTracerProvider(tracers),
	)
	if err != nil {
		return nil, errors.Join(err, meters.Shutdown(context.Background()), tracers.Shutdown(context.Background()))
	}
	return &telemetry{
		observer: observer,
		reader:   reader,
		meters:   meters,
		tracers:  tracers,
	}, nil
}

// dump 按名称排序输出所有数据点。
func (t *telemetry) dump(ctx context.Context, w io.Writer) error {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}

	var lines []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s{%s} %d", m.Name, encodeAttrs(dp.Attributes), dp.Value))
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, fmt.Sprintf("%s{%s} count=%d sum=%.6fs",
						m.Name, encodeAttrs(dp.Attributes), dp.Count, dp.Sum))
				}
			}
		}
	}
	slices.Sort(lines)

	if _, err := fmt.Fprintln(w, "metrics:"); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, "  "+line); err != nil {
			return err
		}
	}
	return nil
}

func (t *telemetry) shutdown(ctx context.Context) error {
	return errors.Join(t.meters.Shutdown(ctx), t.tracers.Shutdown(ctx))
}

func encodeAttrs(set attribute.Set) string {
	return set.Encoded(attribute.DefaultEncoder())
}

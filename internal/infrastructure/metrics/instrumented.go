package metrics

import (
	"context"
	"time"

	"github.com/gatehouse-project/gatehouse/internal/entities"
	"github.com/gatehouse-project/gatehouse/internal/services/authorization"
)

// InstrumentedChecker wraps a checker and records metrics for each check.
type InstrumentedChecker struct {
	inner     authorization.PermissionChecker
	collector *Collector
	exporter  *PrometheusExporter
}

// NewInstrumentedChecker wraps inner. The exporter may be nil when only
// in-process aggregation is wanted.
func NewInstrumentedChecker(inner authorization.PermissionChecker, collector *Collector, exporter *PrometheusExporter) *InstrumentedChecker {
	return &InstrumentedChecker{inner: inner, collector: collector, exporter: exporter}
}

// CheckPermission implements authorization.PermissionChecker.
func (c *InstrumentedChecker) CheckPermission(ctx context.Context, permission string, obj entities.Securable, identity entities.Identity) (bool, error) {
	start := time.Now()

	allowed, err := c.inner.CheckPermission(ctx, permission, obj, identity)

	duration := time.Since(start).Seconds()
	c.collector.RecordDuration(permission, duration)
	if c.exporter != nil {
		c.exporter.RecordDuration(permission, duration)
	}

	if err != nil {
		c.collector.RecordError(permission)
		if c.exporter != nil {
			c.exporter.RecordError(permission)
		}
		return false, err
	}

	c.collector.RecordCheck(permission, allowed)
	if c.exporter != nil {
		c.exporter.RecordCheck(permission, allowed)
	}
	return allowed, nil
}

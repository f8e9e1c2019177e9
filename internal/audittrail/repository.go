package audittrail

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
)

const (
	BackendStatic   = "static"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Repository is a read-only source of audit-trail rows. The dashboard has no
// write path into it.
type Repository interface {
	Entries(ctx context.Context) ([]dashboard.AuditEntry, error)
	Health(ctx context.Context) error
}

var tracer = otel.Tracer("tarediiran-industries.com/rail-dss/internal/audittrail")

// Filtered loads all entries and applies the dropdown selections.
func Filtered(ctx context.Context, repo Repository, filter dashboard.AuditFilter) (entries []dashboard.AuditEntry, all []dashboard.AuditEntry, err error) {
	ctx, span := tracer.Start(ctx, "audittrail.Filtered")
	defer span.End()

	all, err = repo.Entries(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("load audit trail: %w", err)
	}

	filter = filter.Normalized()
	entries = dashboard.FilterAudit(all, filter)
	span.SetAttributes(
		attribute.String("audit.user", filter.User),
		attribute.String("audit.event_type", filter.EventType),
		attribute.Int("audit.matches", len(entries)),
	)
	return entries, all, nil
}

// Static serves the built-in sample trail.
type Static struct{}

func NewStatic() Static {
	return Static{}
}

func (Static) Entries(context.Context) ([]dashboard.AuditEntry, error) {
	return dashboard.SampleAuditTrail(), nil
}

func (Static) Health(context.Context) error {
	return nil
}

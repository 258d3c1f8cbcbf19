package services

import (
	"context"

	"clubfin/internal/amqp"
	"clubfin/internal/core"
	applog "clubfin/internal/log"
)

// Notifier announces freshly written report sheets. *amqp.Client implements it.
type Notifier interface {
	PublishReportsGenerated(ctx context.Context, msg *amqp.ReportsGeneratedMessage) error
}

var _ Notifier = (*amqp.Client)(nil)

// notify publishes msg when a notifier is configured. Failures are logged
// and never fail the report run: the sheets are already written.
func notify(ctx context.Context, n Notifier, logger *applog.Logger, msg *amqp.ReportsGeneratedMessage) {
	if n == nil {
		logger.DebugContext(ctx, "No notifier configured, skipping reports message", "kind", msg.Kind)
		return
	}
	if err := n.PublishReportsGenerated(ctx, msg); err != nil {
		logger.WithFields(applog.NewFields().WithOperation(applog.OpPublish).WithError(err)).
			ErrorContext(ctx, "Failed to publish reports message", "kind", msg.Kind)
	}
}

func tableNames(tables []core.Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}

func logWarnings(ctx context.Context, logger *applog.Logger, warnings []core.RowWarning) {
	for _, w := range warnings {
		logger.WithFields(applog.NewFields().WithWarning(w)).WarnContext(ctx, "Row excluded from report")
	}
}

package services

import (
	"context"
	"fmt"

	"clubfin/internal/amqp"
	"clubfin/internal/core"
	applog "clubfin/internal/log"
	"clubfin/internal/members"
	ports "clubfin/internal/sheets"
)

// RosterService recomputes member discounts and penalties.
type RosterService struct {
	reader   ports.RosterReader
	writer   ports.TableWriter
	notifier Notifier
	rules    members.Rules
	logger   *applog.Logger
}

func NewRosterService(reader ports.RosterReader, writer ports.TableWriter, notifier Notifier, rules members.Rules, logger *applog.Logger) *RosterService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &RosterService{
		reader:   reader,
		writer:   writer,
		notifier: notifier,
		rules:    rules,
		logger:   logger.WithComponent(applog.ComponentRoster),
	}
}

// Update writes Members_Updated and rewrites Attendance_Payments unchanged.
func (s *RosterService) Update(ctx context.Context) (core.Roster, error) {
	roster, err := s.reader.LoadRoster(ctx)
	if err != nil {
		return core.Roster{}, fmt.Errorf("load roster: %w", err)
	}

	updated := members.UpdateRoster(roster, s.rules)
	tables := []core.Table{core.MembersTable(updated), core.AttendanceTable(updated)}
	if err := s.writer.WriteTables(ctx, tables...); err != nil {
		return core.Roster{}, fmt.Errorf("write roster: %w", err)
	}

	penalized := 0
	for _, m := range updated.Members {
		if m.Penalty != "" {
			penalized++
		}
	}
	s.logger.InfoContext(ctx, "Roster updated",
		"members", len(updated.Members),
		"attendance_rows", len(updated.Attendance),
		"penalized", penalized)

	notify(ctx, s.notifier, s.logger, amqp.NewReportsGeneratedMessage(
		amqp.KindRoster, "", tableNames(tables), len(updated.Members), 0))
	return updated, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"clubfin/internal/amqp"
	"clubfin/internal/core"
	"clubfin/internal/finance"
	applog "clubfin/internal/log"
	ports "clubfin/internal/sheets"
)

// ReportService loads the ledger, runs the finance pipeline and writes the
// report sheets back.
type ReportService struct {
	ledger   ports.LedgerReader
	writer   ports.TableWriter
	notifier Notifier
	policy   finance.Policy
	logger   *applog.Logger
	now      func() time.Time
}

func NewReportService(ledger ports.LedgerReader, writer ports.TableWriter, notifier Notifier, policy finance.Policy, logger *applog.Logger) *ReportService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ReportService{
		ledger:   ledger,
		writer:   writer,
		notifier: notifier,
		policy:   policy,
		logger:   logger.WithComponent(applog.ComponentReports),
		now:      time.Now,
	}
}

// CurrentMonth is the month advance payments are credited to.
func (s *ReportService) CurrentMonth() core.Month {
	return core.MonthOf(s.now())
}

// Prepare computes the income statement without writing anything.
func (s *ReportService) Prepare(ctx context.Context, currentMonth core.Month) (finance.IncomeStatement, error) {
	ledger, err := s.ledger.LoadLedger(ctx)
	if err != nil {
		return finance.IncomeStatement{}, fmt.Errorf("load ledger: %w", err)
	}

	st := finance.PrepareIncomeStatement(ledger, currentMonth, s.policy)
	logWarnings(ctx, s.logger, st.Warnings)
	if _, ok := st.DetailedRevenues.Row(currentMonth); ok && st.DetailedRevenues.HasCategory(s.policy.AdvanceCategory) {
		s.logger.InfoContext(ctx, "Advance payments credited to members payments",
			applog.FieldMonth, string(currentMonth),
			"legacy_double_count", s.policy.LegacyDoubleCount)
	}
	s.logger.DebugContext(ctx, "Income statement prepared",
		applog.FieldMonth, string(currentMonth),
		"revenue_categories", len(st.DetailedRevenues.Categories),
		"expense_categories", len(st.DetailedExpenses.Categories),
		"unpaid_debts", len(st.UnpaidDebts))
	return st, nil
}

// Generate prepares the income statement and replaces the Monthly Profits,
// Detailed Revenues, Detailed Expenses and Unpaid Debts Log sheets.
func (s *ReportService) Generate(ctx context.Context, currentMonth core.Month) (finance.IncomeStatement, error) {
	st, err := s.Prepare(ctx, currentMonth)
	if err != nil {
		return finance.IncomeStatement{}, err
	}
	tables := st.Tables()
	if err := s.writer.WriteTables(ctx, tables...); err != nil {
		return finance.IncomeStatement{}, fmt.Errorf("write reports: %w", err)
	}
	s.logger.InfoContext(ctx, "Reports written",
		applog.FieldOperation, applog.OpGenerate,
		applog.FieldMonth, string(currentMonth),
		applog.FieldCount, len(tables))

	notify(ctx, s.notifier, s.logger, amqp.NewReportsGeneratedMessage(
		amqp.KindIncomeStatement, string(currentMonth), tableNames(tables),
		len(st.Profits.Rows), len(st.Warnings)))
	return st, nil
}

// UnpaidDebts classifies the recurring expenses and rewrites the Unpaid
// Debts Log sheet.
func (s *ReportService) UnpaidDebts(ctx context.Context) ([]core.UnpaidDebt, error) {
	ledger, err := s.ledger.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	logWarnings(ctx, s.logger, ledger.Warnings)

	debts := finance.ClassifyUnpaidDebts(ledger.Expenses, s.policy)
	table := core.UnpaidDebtsTable(debts)
	if err := s.writer.WriteTables(ctx, table); err != nil {
		return nil, fmt.Errorf("write unpaid debts: %w", err)
	}
	s.logger.InfoContext(ctx, "Unpaid debts logged", applog.FieldCount, len(debts))

	notify(ctx, s.notifier, s.logger, amqp.NewReportsGeneratedMessage(
		amqp.KindUnpaidDebts, "", []string{table.Name}, len(debts), len(ledger.Warnings)))
	return debts, nil
}

package amqp

import (
	"encoding/json"
	"time"
)

// Report kinds carried by ReportsGeneratedMessage.
const (
	KindIncomeStatement = "income_statement"
	KindUnpaidDebts     = "unpaid_debts"
	KindRoster          = "roster"
)

// ReportsGeneratedMessage announces that report sheets were rewritten. It
// carries counts only; consumers re-read the workbook for the figures.
type ReportsGeneratedMessage struct {
	Kind         string    `json:"kind"`
	CurrentMonth string    `json:"current_month,omitempty"`
	Sheets       []string  `json:"sheets"`
	Rows         int       `json:"rows"`
	Warnings     int       `json:"warnings"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewReportsGeneratedMessage(kind, currentMonth string, sheets []string, rows, warnings int) *ReportsGeneratedMessage {
	return &ReportsGeneratedMessage{
		Kind:         kind,
		CurrentMonth: currentMonth,
		Sheets:       sheets,
		Rows:         rows,
		Warnings:     warnings,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportsGeneratedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportsGeneratedMessageFromJSON(data []byte) (*ReportsGeneratedMessage, error) {
	var msg ReportsGeneratedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

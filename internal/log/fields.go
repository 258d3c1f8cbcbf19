package log

import (
	"clubfin/internal/core"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldSource    = "source"
	FieldSheet     = "sheet"
	FieldRow       = "row"
	FieldMonth     = "month"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldReason    = "reason"
	FieldUsername  = "username"
	FieldRole      = "role"
	FieldCount     = "count"
	FieldPath      = "path"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentReports  = "reports"
	ComponentAccounts = "accounts"
	ComponentRoster   = "roster"
	ComponentShell    = "shell"
	ComponentStorage  = "storage"
	ComponentSheets   = "sheets"
	ComponentAMQP     = "amqp"
	ComponentBackend  = "backend"
	ComponentRender   = "render"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpWrite    = "write"
	OpGenerate = "generate"
	OpCreate   = "create"
	OpDelete   = "delete"
	OpLogin    = "login"
	OpPublish  = "publish"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithWarning adds the fields of an excluded row.
func (f LogFields) WithWarning(w core.RowWarning) LogFields {
	f[FieldSheet] = w.Sheet
	if w.Row > 0 {
		f[FieldRow] = w.Row
	}
	if w.Month != "" {
		f[FieldMonth] = string(w.Month)
	}
	f[FieldReason] = w.Reason
	return f
}

// WithAccount adds account fields. Passwords are never logged.
func (f LogFields) WithAccount(a core.Account) LogFields {
	f[FieldUsername] = a.Username
	f[FieldRole] = string(a.Permissions)
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}

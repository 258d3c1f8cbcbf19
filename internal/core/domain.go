package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	January   Month = "January"
	February  Month = "February"
	March     Month = "March"
	April     Month = "April"
	May       Month = "May"
	June      Month = "June"
	July      Month = "July"
	August    Month = "August"
	September Month = "September"
	October   Month = "October"
	November  Month = "November"
	December  Month = "December"
)

const (
	PermissionMember    Permission = "Member"
	PermissionCoach     Permission = "Coach"
	PermissionTreasurer Permission = "Treasurer"
)

type (
	// Month is a calendar-month name as it appears in the ledger ("January").
	// Values read from a store are not guaranteed to be canonical.
	Month string

	Permission string

	Transaction struct {
		Month    Month
		Category string
		Amount   decimal.Decimal
	}

	Account struct {
		FirstName   string
		LastName    string
		Email       string
		Username    string
		Password    string // bcrypt hash, or plaintext for legacy rows
		Permissions Permission
	}

	Member struct {
		ID             string
		Attributes     map[string]string // pass-through columns from the roster sheet
		Discount       int               // percent
		MissedPayments int
		Penalty        string
	}

	AttendanceRecord struct {
		MemberID   string
		Attended   string
		Paid       string
		Attributes map[string]string
	}
)

// Months lists the canonical month names in calendar order.
var Months = [12]Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

var (
	ErrInvalidMonth      = errors.New("invalid month")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidPermission = errors.New("invalid permission")
)

// Index returns the zero-based calendar position of m, or -1 when m is not canonical.
func (m Month) Index() int {
	for i, c := range Months {
		if c == m {
			return i
		}
	}
	return -1
}

func (m Month) IsCanonical() bool {
	return m.Index() >= 0
}

func (m Month) String() string {
	return string(m)
}

// MonthOf returns the canonical month name of t.
func MonthOf(t time.Time) Month {
	return Months[t.Month()-1]
}

// ParseMonth maps s to its canonical month name. Surrounding whitespace and
// letter case are ignored; anything else is rejected.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	for _, m := range Months {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", ErrInvalidMonth
}

func (t Transaction) Validate() error {
	if !t.Month.IsCanonical() {
		return ErrInvalidMonth
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// ParsePermission accepts the stored permission label in any letter case.
func ParsePermission(s string) (Permission, error) {
	s = strings.TrimSpace(s)
	for _, p := range []Permission{PermissionMember, PermissionCoach, PermissionTreasurer} {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", ErrInvalidPermission
}

// DidAttend reports whether the attendance row marks the member as present.
func (r AttendanceRecord) DidAttend() bool {
	return strings.TrimSpace(r.Attended) == "Yes"
}

// MissedPayment reports whether the row records an unpaid session.
func (r AttendanceRecord) MissedPayment() bool {
	return strings.TrimSpace(r.Paid) == "No"
}

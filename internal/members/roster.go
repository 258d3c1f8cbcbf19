// Package members applies the club's roster rules: attendance ranking,
// discounts for the most regular attendees and penalties for missed payments.
package members

import (
	"sort"

	"clubfin/internal/core"
)

const PenaltyFee = "Fee"

// Rules configures the roster computation.
type Rules struct {
	TopAttendees    int // how many of the best attendees get the discount
	DiscountPercent int
	// PenaltyAfter is the number of missed payments tolerated before a fee.
	PenaltyAfter int
}

func DefaultRules() Rules {
	return Rules{TopAttendees: 10, DiscountPercent: 10, PenaltyAfter: 1}
}

// SortByAttendance counts attended sessions per member, most regular first.
// Members with equal counts keep the order in which they first appear.
func SortByAttendance(records []core.AttendanceRecord) []core.AttendanceCount {
	index := make(map[string]int)
	var counts []core.AttendanceCount
	for _, r := range records {
		i, ok := index[r.MemberID]
		if !ok {
			i = len(counts)
			index[r.MemberID] = i
			counts = append(counts, core.AttendanceCount{MemberID: r.MemberID})
		}
		if r.DidAttend() {
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// ApplyAttendanceDiscounts gives the discount to members ranked within the
// first rules.TopAttendees entries of counts; everybody else gets zero.
func ApplyAttendanceDiscounts(counts []core.AttendanceCount, members []core.Member, rules Rules) []core.Member {
	top := make(map[string]struct{}, rules.TopAttendees)
	for i, c := range counts {
		if i >= rules.TopAttendees {
			break
		}
		top[c.MemberID] = struct{}{}
	}

	out := make([]core.Member, len(members))
	for i, m := range members {
		m.Discount = 0
		if _, ok := top[m.ID]; ok {
			m.Discount = rules.DiscountPercent
		}
		out[i] = m
	}
	return out
}

// ApplyPaymentPenalties counts unpaid sessions per member and sets the fee
// penalty once they exceed rules.PenaltyAfter. Members without attendance
// rows have no missed payments.
func ApplyPaymentPenalties(records []core.AttendanceRecord, members []core.Member, rules Rules) []core.Member {
	missed := make(map[string]int)
	for _, r := range records {
		if r.MissedPayment() {
			missed[r.MemberID]++
		}
	}

	out := make([]core.Member, len(members))
	for i, m := range members {
		m.MissedPayments = missed[m.ID]
		m.Penalty = ""
		if m.MissedPayments > rules.PenaltyAfter {
			m.Penalty = PenaltyFee
		}
		out[i] = m
	}
	return out
}

// UpdateRoster recomputes discounts and penalties for every member.
func UpdateRoster(roster core.Roster, rules Rules) core.Roster {
	counts := SortByAttendance(roster.Attendance)
	members := ApplyAttendanceDiscounts(counts, roster.Members, rules)
	roster.Members = ApplyPaymentPenalties(roster.Attendance, members, rules)
	return roster
}

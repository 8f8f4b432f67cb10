package domain

import "errors"

// ScheduleType classifies a shoot.
type ScheduleType string

const (
	TypeRehearsal ScheduleType = "rehearsal"
	TypeCeremony  ScheduleType = "ceremony"
	TypeGeneral   ScheduleType = "general"
	TypeSelection ScheduleType = "selection"
)

// ScheduleTypes lists the types in display order.
var ScheduleTypes = []ScheduleType{TypeRehearsal, TypeCeremony, TypeGeneral, TypeSelection}

// PaymentStatus tracks settlement of a booking.
type PaymentStatus string

const (
	PaymentUnsettled PaymentStatus = "unsettled"
	PaymentSettled   PaymentStatus = "settled"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrForbidden        = errors.New("access forbidden")
	ErrInvalidInput     = errors.New("invalid input")
)

// Couple holds the contact details of the booking couple.
type Couple struct {
	GroomName  string `json:"groom_name"`
	GroomPhone string `json:"groom_phone"`
	BrideName  string `json:"bride_name"`
	BridePhone string `json:"bride_phone"`
}

// Schedule is one wedding-shoot booking in the schedules worksheet.
type Schedule struct {
	ID            string        `json:"id"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Type          ScheduleType  `json:"type"`
	Couple        Couple        `json:"couple"`
	Venue         string        `json:"venue"`
	Product       string        `json:"product"`
	Price         float64       `json:"price"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Manager       string        `json:"manager"`
	SelectionDate string        `json:"selection_date,omitempty"`
	SelectionTime string        `json:"selection_time,omitempty"`
	USBDelivered  bool          `json:"status_usb"`
	AlbumDone     bool          `json:"status_album"`
	Memos         []Memo        `json:"memos"`
	Version       int64         `json:"version"`
}

// TypeGroup is the schedules of one type for a single day.
type TypeGroup struct {
	Type      ScheduleType `json:"type"`
	Schedules []Schedule   `json:"schedules"`
}

// GroupByType buckets schedules by type in display order. Types outside
// ScheduleTypes follow in order of first appearance. Empty groups are omitted
// and source order is kept inside each group.
func GroupByType(schedules []Schedule) []TypeGroup {
	buckets := make(map[ScheduleType][]Schedule)
	var extra []ScheduleType
	for _, s := range schedules {
		if _, seen := buckets[s.Type]; !seen && !isKnownType(s.Type) {
			extra = append(extra, s.Type)
		}
		buckets[s.Type] = append(buckets[s.Type], s)
	}

	groups := make([]TypeGroup, 0, len(buckets))
	for _, t := range append(append([]ScheduleType{}, ScheduleTypes...), extra...) {
		if items, ok := buckets[t]; ok {
			groups = append(groups, TypeGroup{Type: t, Schedules: items})
		}
	}
	return groups
}

func isKnownType(t ScheduleType) bool {
	for _, k := range ScheduleTypes {
		if k == t {
			return true
		}
	}
	return false
}

package worksheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// UserHeader is the header of a freshly created users worksheet.
var UserHeader = []string{"id", "password", "name", "role", "approved", "signup_date"}

// ScheduleHeader is the header of a freshly created schedules worksheet.
var ScheduleHeader = []string{
	"id", "date", "time", "type",
	"groomName", "groomPhone", "brideName", "bridePhone",
	"venue", "product", "price", "paymentStatus", "manager",
	"selectionDate", "selectionTime", "status_usb", "status_album", "memoList",
}

func userToRecord(u domain.User) domain.Record {
	signup := ""
	if !u.SignupDate.IsZero() {
		signup = u.SignupDate.Format(domain.SignupDateLayout)
	}
	return domain.Record{
		"id":          u.ID,
		"password":    u.PasswordHash,
		"name":        u.Name,
		"role":        u.Role,
		"approved":    domain.FormatBool(u.Approved),
		"signup_date": signup,
	}
}

func userFromRecord(rec domain.Record) domain.User {
	u := domain.User{
		ID:           strings.TrimSpace(rec["id"]),
		PasswordHash: rec["password"],
		Name:         rec["name"],
		Role:         rec["role"],
		Approved:     domain.ParseBool(rec["approved"]),
	}
	if ts, err := time.ParseInLocation(domain.SignupDateLayout, strings.TrimSpace(rec["signup_date"]), time.Local); err == nil {
		u.SignupDate = ts
	}
	return u
}

func scheduleToRecord(s *domain.Schedule) domain.Record {
	return domain.Record{
		"id":            s.ID,
		"date":          s.Date,
		"time":          s.Time,
		"type":          string(s.Type),
		"groomName":     s.Couple.GroomName,
		"groomPhone":    s.Couple.GroomPhone,
		"brideName":     s.Couple.BrideName,
		"bridePhone":    s.Couple.BridePhone,
		"venue":         s.Venue,
		"product":       s.Product,
		"price":         strconv.FormatFloat(s.Price, 'f', -1, 64),
		"paymentStatus": string(s.PaymentStatus),
		"manager":       s.Manager,
		"selectionDate": s.SelectionDate,
		"selectionTime": s.SelectionTime,
		"status_usb":    domain.FormatBool(s.USBDelivered),
		"status_album":  domain.FormatBool(s.AlbumDone),
		"memoList":      domain.EncodeMemos(s.Memos),
	}
}

// scheduleFromRow decodes a schedule row. Unreadable price or memo cells are
// logged and read as zero values rather than failing the whole listing.
func scheduleFromRow(row domain.Row, log zerolog.Logger) domain.Schedule {
	rec := row.Record
	s := domain.Schedule{
		ID:   strings.TrimSpace(rec["id"]),
		Date: strings.TrimSpace(rec["date"]),
		Time: strings.TrimSpace(rec["time"]),
		Type: domain.ScheduleType(strings.TrimSpace(rec["type"])),
		Couple: domain.Couple{
			GroomName:  rec["groomName"],
			GroomPhone: rec["groomPhone"],
			BrideName:  rec["brideName"],
			BridePhone: rec["bridePhone"],
		},
		Venue:         rec["venue"],
		Product:       rec["product"],
		PaymentStatus: domain.PaymentStatus(strings.TrimSpace(rec["paymentStatus"])),
		Manager:       rec["manager"],
		SelectionDate: strings.TrimSpace(rec["selectionDate"]),
		SelectionTime: strings.TrimSpace(rec["selectionTime"]),
		USBDelivered:  domain.ParseBool(rec["status_usb"]),
		AlbumDone:     domain.ParseBool(rec["status_album"]),
		Version:       row.Version,
	}
	// Early sheets kept a single contact number in a "phone" column.
	if s.Couple.GroomPhone == "" {
		s.Couple.GroomPhone = rec["phone"]
	}
	if s.PaymentStatus == "" {
		s.PaymentStatus = domain.PaymentUnsettled
	}

	if raw := strings.TrimSpace(strings.ReplaceAll(rec["price"], ",", "")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Warn().Str("schedule_id", s.ID).Str("price", rec["price"]).Msg("unreadable price cell, using 0")
		} else {
			s.Price = price
		}
	}

	memos, err := domain.DecodeMemos(rec["memoList"])
	if err != nil {
		log.Warn().Err(err).Str("schedule_id", s.ID).Msg("malformed memoList cell, treating as empty")
		memos = []domain.Memo{}
	}
	s.Memos = memos
	return s
}

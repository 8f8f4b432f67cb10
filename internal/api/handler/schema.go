package handler

import (
	"time"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signupRequest struct {
	ID       string `json:"id"       validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=Shooting Editing Consulting Other"`
}

type signupResponse struct {
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}

type loginRequest struct {
	ID       string `json:"id"       validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	State     string     `json:"state"`
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Role      string     `json:"role,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

// --- Schedules ---

type coupleRequest struct {
	GroomName  string `json:"groom_name"`
	GroomPhone string `json:"groom_phone"`
	BrideName  string `json:"bride_name"`
	BridePhone string `json:"bride_phone"`
}

type scheduleRequest struct {
	Date          string        `json:"date"           validate:"required,datetime=2006-01-02"`
	Time          string        `json:"time"           validate:"required,datetime=15:04"`
	Type          string        `json:"type"           validate:"required,oneof=rehearsal ceremony general selection"`
	Couple        coupleRequest `json:"couple"`
	Venue         string        `json:"venue"`
	Product       string        `json:"product"`
	Price         *float64      `json:"price,omitempty"          validate:"omitempty,gte=0"`
	PaymentStatus *string       `json:"payment_status,omitempty" validate:"omitempty,oneof=unsettled settled"`
	Manager       string        `json:"manager"`
	SelectionDate string        `json:"selection_date" validate:"omitempty,datetime=2006-01-02"`
	SelectionTime string        `json:"selection_time" validate:"omitempty,datetime=15:04"`
	USBDelivered  bool          `json:"status_usb"`
	AlbumDone     bool          `json:"status_album"`
}

type updateScheduleRequest struct {
	scheduleRequest
	Version int64 `json:"version" validate:"required,gt=0"`
}

type memoRequest struct {
	Content string `json:"content" validate:"required"`
}

type dayScheduleResponse struct {
	Date   string             `json:"date"`
	Total  int                `json:"total"`
	Groups []domain.TypeGroup `json:"groups"`
}

type searchResponse struct {
	Query   string            `json:"query"`
	Total   int               `json:"total"`
	Results []domain.Schedule `json:"results"`
}

// --- Admin ---

type rosterEditRequest struct {
	ID       string  `json:"id"       validate:"required"`
	Role     string  `json:"role"     validate:"required,oneof=Master Shooting Editing Consulting Other"`
	Approved bool    `json:"approved"`
	Name     *string `json:"name,omitempty"`
}

type rosterRequest struct {
	Users []rosterEditRequest `json:"users" validate:"required,dive"`
}

type rosterResponse struct {
	Total int           `json:"total"`
	Users []domain.User `json:"users"`
}

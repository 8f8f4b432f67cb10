package handler

import (
	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

// --- Request → Service input ---

func toScheduleInput(req scheduleRequest) ports.ScheduleInput {
	return ports.ScheduleInput{
		Date: req.Date,
		Time: req.Time,
		Type: req.Type,
		Couple: domain.Couple{
			GroomName:  req.Couple.GroomName,
			GroomPhone: req.Couple.GroomPhone,
			BrideName:  req.Couple.BrideName,
			BridePhone: req.Couple.BridePhone,
		},
		Venue:         req.Venue,
		Product:       req.Product,
		Manager:       req.Manager,
		SelectionDate: req.SelectionDate,
		SelectionTime: req.SelectionTime,
		USBDelivered:  req.USBDelivered,
		AlbumDone:     req.AlbumDone,
		Price:         req.Price,
		PaymentStatus: req.PaymentStatus,
	}
}

func toRosterEdits(req rosterRequest) []ports.RosterEdit {
	edits := make([]ports.RosterEdit, 0, len(req.Users))
	for _, u := range req.Users {
		edits = append(edits, ports.RosterEdit{
			ID:       u.ID,
			Role:     u.Role,
			Approved: u.Approved,
			Name:     u.Name,
		})
	}
	return edits
}

// --- Service output → Response ---

func toSessionResponse(s domain.Session) sessionResponse {
	if !s.IsLoggedIn() {
		return sessionResponse{State: domain.LoggedOut.String()}
	}
	return sessionResponse{
		State:     s.State.String(),
		ID:        s.UserID,
		Name:      s.Name,
		Role:      s.Role,
		ExpiresAt: &s.ExpiresAt,
	}
}

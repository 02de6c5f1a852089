package dto

import "poliklinik-queue-backend/internal/service"

// BoardResponse is the public display payload: last-called ticket per clinic
// plus remaining slots per doctor for today.
type BoardResponse struct {
	Called    []service.BoardEntry     `json:"called"`
	Remaining []service.RemainingEntry `json:"remaining"`
}

package session

import (
	"github.com/PIRSON21/scissors/internal/models"
	"github.com/PIRSON21/scissors/internal/selection"
)

// Типы событий для клиента.
const (
	EventReady     = "ready"
	EventState     = "state"
	EventProgress  = "progress"
	EventSelection = "selection"
	EventLive      = "live"
	EventTool      = "tool"
	EventSaved     = "saved"
	EventError     = "error"
)

// Event - тело события, которое уходит клиенту.
type Event struct {
	Type      string            `json:"type"`                 // один из Event*
	SessionID string            `json:"session_id,omitempty"` // ready
	Tool      string            `json:"tool,omitempty"`       // ready, tool
	Old       *selection.State  `json:"old,omitempty"`        // state
	New       *selection.State  `json:"new,omitempty"`        // state
	Percent   *int              `json:"percent,omitempty"`    // progress
	Start     *models.Point     `json:"start,omitempty"`      // selection
	Segments  []models.Segment  `json:"segments,omitempty"`   // selection
	Segment   *models.Segment   `json:"segment,omitempty"`    // live
	OutlineID int               `json:"outline_id,omitempty"` // saved
	Op        string            `json:"op,omitempty"`         // error
	Error     string            `json:"error,omitempty"`      // error
	Fields    map[string]string `json:"fields,omitempty"`     // error, ошибки валидации команды
}

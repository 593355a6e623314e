package request

import "github.com/PIRSON21/scissors/internal/models"

// Операции, которые клиент отправляет по websocket.
const (
	OpAdd    = "add"
	OpMove   = "move"
	OpUndo   = "undo"
	OpReset  = "reset"
	OpFinish = "finish"
	OpCancel = "cancel"
	OpTool   = "tool"
	OpLive   = "live"
	OpSave   = "save"
)

// SessionInit - первое сообщение клиента: веса пикселей изображения и инструмент.
type SessionInit struct {
	models.CostGrid
	Tool string `json:"tool" validate:"omitempty,oneof=point-to-point scissors"`
}

// Command - команда клиента в сессии выделения.
// Обязательность point, index, tool и name зависит от op и проверяется отдельно.
type Command struct {
	Op    string        `json:"op" validate:"required,oneof=add move undo reset finish cancel tool live save"`
	Point *models.Point `json:"point,omitempty"`
	Index *int          `json:"index,omitempty" validate:"omitempty,gte=0"`
	Tool  string        `json:"tool,omitempty" validate:"omitempty,oneof=point-to-point scissors"`
	Name  string        `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
}

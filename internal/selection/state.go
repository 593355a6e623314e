package selection

import "fmt"

// State - состояние выделения.
type State int

const (
	NoSelection State = iota // выделения нет
	Selecting                // пользователь добавляет точки
	Selected                 // выделение замкнуто
	Processing               // идет поиск сегмента в фоне
)

// String возвращает имя состояния в том виде, в каком его видит клиент.
func (s State) String() string {
	switch s {
	case NoSelection:
		return "NO_SELECTION"
	case Selecting:
		return "SELECTING"
	case Selected:
		return "SELECTED"
	case Processing:
		return "PROCESSING"
	default:
		return "UNKNOWN"
	}
}

// MarshalText нужна, чтобы состояние попадало в JSON строкой.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText разбирает имя состояния.
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{NoSelection, Selecting, Selected, Processing} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}

	return fmt.Errorf("selection: unknown state %q", text)
}

package selection

import "github.com/PIRSON21/scissors/internal/models"

// EventKind - тип уведомления модели.
type EventKind int

const (
	StateChanged     EventKind = iota // сменилось состояние
	ProgressUpdated                   // прогресс фонового поиска
	SelectionChanged                  // изменились сегменты выделения
)

// String возвращает имя события для клиента.
func (k EventKind) String() string {
	switch k {
	case StateChanged:
		return "state"
	case ProgressUpdated:
		return "progress"
	case SelectionChanged:
		return "selection"
	default:
		return "unknown"
	}
}

// Event - уведомление модели. Заполнены только поля, относящиеся к Kind.
type Event struct {
	Kind     EventKind
	Old, New State            // StateChanged
	Percent  int              // ProgressUpdated
	Start    models.Point     // SelectionChanged
	Segments []models.Segment // SelectionChanged, копия
}

// Listener получает уведомления в той горутине, которая управляет моделью.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe подписывает fn на события вида kind.
// Возвращает функцию отписки.
func (m *Model) Subscribe(kind EventKind, fn Listener) (unsubscribe func()) {
	m.nextSubID++
	id := m.nextSubID
	m.listeners[kind] = append(m.listeners[kind], subscription{id: id, fn: fn})

	return func() {
		subs := m.listeners[kind]
		for i, s := range subs {
			if s.id == id {
				m.listeners[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Model) emit(e Event) {
	for _, s := range m.listeners[e.Kind] {
		s.fn(e)
	}
}

func (m *Model) emitSelection() {
	m.emit(Event{Kind: SelectionChanged, Start: m.start, Segments: m.Segments()})
}

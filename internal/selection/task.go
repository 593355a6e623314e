package selection

import (
	"context"

	"github.com/PIRSON21/scissors/internal/models"
)

// progressBuffer - сколько отчетов о прогрессе может ждать управляющую горутину.
// При переполнении выбрасывается самый старый отчет, последний доходит всегда.
const progressBuffer = 16

// Outcome - результат фонового поиска.
type Outcome struct {
	Segment models.Segment
	Err     error
}

// Task - фоновый поиск сегмента. Горутина поиска пишет в каналы Task,
// управляющая горутина читает их и передает в Model.ReportProgress и Model.Complete.
type Task struct {
	From, To models.Point
	closing  bool // сегмент замыкает выделение

	progress chan int
	done     chan Outcome // один результат, запись никогда не блокируется
	cancel   context.CancelFunc
}

// Progress возвращает канал процентов выполнения.
func (t *Task) Progress() <-chan int { return t.progress }

// Done возвращает канал с единственным результатом поиска.
func (t *Task) Done() <-chan Outcome { return t.done }

// Closing сообщает, что задача строит замыкающий сегмент.
func (t *Task) Closing() bool { return t.closing }

// launch запускает поиск в отдельной горутине.
func (m *Model) launch(from, to models.Point, closing bool) *Task {
	ctx, cancel := context.WithCancel(m.ctx)

	t := &Task{
		From:     from,
		To:       to,
		closing:  closing,
		progress: make(chan int, progressBuffer),
		done:     make(chan Outcome, 1),
		cancel:   cancel,
	}

	strategy := m.strategy
	go func() {
		seg, err := strategy.Connect(ctx, from, to, t.sendProgress)
		t.done <- Outcome{Segment: seg, Err: err}
	}()

	return t
}

func (t *Task) sendProgress(percent int) {
	for {
		select {
		case t.progress <- percent:
			return
		default:
		}

		select {
		case <-t.progress:
		default:
		}
	}
}

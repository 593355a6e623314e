package scissors

import (
	"time"

	"golang.org/x/time/rate"
)

// reporter переводит число обработанных пикселей в проценты и отправляет их
// не чаще, чем разрешает limiter. Проценты не убывают.
type reporter struct {
	fn      ProgressFunc
	limiter *rate.Limiter
	area    uint64
	last    int
}

func newReporter(fn ProgressFunc, area int, interval time.Duration) *reporter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &reporter{
		fn:      fn,
		limiter: rate.NewLimiter(limit, 1),
		area:    uint64(max(area, 1)),
		last:    0,
	}
}

// report вызывается после каждого извлечения из очереди.
func (r *reporter) report(settled uint64) {
	if r.fn == nil {
		return
	}

	percent := int(min(settled*100/r.area, 100))
	if percent <= r.last || !r.limiter.Allow() {
		return
	}

	r.last = percent
	r.fn(percent)
}

// done отправляет 100% после успешного поиска.
func (r *reporter) done() {
	if r.fn == nil || r.last >= 100 {
		return
	}

	r.last = 100
	r.fn(100)
}

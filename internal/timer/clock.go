// internal/timer/clock.go
package timer

import "container/heap"

// Handle идентифицирует запланированный вызов и позволяет его отменить.
type Handle uint64

// Clock - детерминированные виртуальные часы симуляции.
// Время продвигается только явным вызовом Advance, поэтому порядок
// срабатывания таймеров воспроизводим от запуска к запуску.
type Clock struct {
	now     float64
	seq     uint64
	nextID  Handle
	pending queue
	byID    map[Handle]*entry
}

// NewClock создаёт часы с нулевым временем.
func NewClock() *Clock {
	return &Clock{
		nextID: 1,
		byID:   make(map[Handle]*entry),
	}
}

// Now возвращает текущее виртуальное время в секундах.
func (c *Clock) Now() float64 {
	return c.now
}

// After планирует fn через delay секунд от текущего времени.
func (c *Clock) After(delay float64, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return c.At(c.now+delay, fn)
}

// At планирует fn на абсолютное время t. Время в прошлом срабатывает
// при ближайшем Advance.
func (c *Clock) At(t float64, fn func()) Handle {
	id := c.nextID
	c.nextID++
	c.seq++
	e := &entry{at: t, seq: c.seq, id: id, fn: fn}
	heap.Push(&c.pending, e)
	c.byID[id] = e
	return id
}

// Cancel снимает вызов с очереди. Возвращает false, если вызов уже
// сработал или был отменён.
func (c *Clock) Cancel(h Handle) bool {
	e, ok := c.byID[h]
	if !ok {
		return false
	}
	delete(c.byID, h)
	heap.Remove(&c.pending, e.index)
	return true
}

// Pending - число ещё не сработавших вызовов.
func (c *Clock) Pending() int {
	return len(c.pending)
}

// Advance сдвигает время на dt и по порядку выполняет все созревшие вызовы.
// Вызовы, запланированные изнутри колбэка на время не позже конца шага,
// тоже выполняются в этом же Advance. Возвращает число выполненных вызовов.
func (c *Clock) Advance(dt float64) int {
	if dt < 0 {
		dt = 0
	}
	target := c.now + dt
	fired := 0
	for len(c.pending) > 0 && c.pending[0].at <= target {
		e := heap.Pop(&c.pending).(*entry)
		delete(c.byID, e.id)
		if e.at > c.now {
			c.now = e.at
		}
		e.fn()
		fired++
	}
	c.now = target
	return fired
}

// Clear отменяет все ожидающие вызовы, не трогая текущее время.
func (c *Clock) Clear() {
	c.pending = c.pending[:0]
	c.byID = make(map[Handle]*entry)
}

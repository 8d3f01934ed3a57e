package apptclient

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LiveView локальная копия списка записей оператора.
// Смена статуса применяется сразу, отправляется на сервер и откатывается при ошибке.
// События ленты приводят копию к состоянию сервера
type LiveView struct {
	mu     sync.RWMutex
	items  []Appointment // новые сверху
	remote StatusUpdater
	now    func() time.Time
}

// NewLiveView создает представление поверх начального снимка
func NewLiveView(remote StatusUpdater, snapshot []Appointment) *LiveView {
	items := make([]Appointment, len(snapshot))
	copy(items, snapshot)
	return &LiveView{
		items:  items,
		remote: remote,
		now:    time.Now,
	}
}

// Items копия текущего списка
func (v *LiveView) Items() []Appointment {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Appointment, len(v.items))
	copy(out, v.items)
	return out
}

// Get запись по ID
func (v *LiveView) Get(id string) (Appointment, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if i := v.indexOf(id); i >= 0 {
		return v.items[i], true
	}
	return Appointment{}, false
}

// UpdateStatus применяет статус локально, затем на сервере.
// При ошибке сервера локальная запись возвращается к прежнему виду,
// если ее не успело заменить событие ленты
func (v *LiveView) UpdateStatus(ctx context.Context, id, status string, reason *string) (*Appointment, error) {
	// 1. Оптимистично применяем локально
	v.mu.Lock()
	i := v.indexOf(id)
	if i < 0 {
		v.mu.Unlock()
		return nil, fmt.Errorf("%w: id=%s is not in the view", ErrNotFound, id)
	}
	previous := v.items[i]
	optimistic := previous
	optimistic.Status = status
	if reason != nil {
		r := *reason
		optimistic.CancellationReason = &r
	}
	optimistic.UpdatedAt = v.now()
	v.items[i] = optimistic
	v.mu.Unlock()

	// 2. Фиксируем на сервере
	updated, err := v.remote.UpdateStatus(ctx, id, status, reason)

	v.mu.Lock()
	defer v.mu.Unlock()

	j := v.indexOf(id)
	if err != nil {
		// 3. Откат
		if j >= 0 && sameVersion(v.items[j], optimistic) {
			v.items[j] = previous
		}
		return nil, err
	}

	if j >= 0 {
		v.items[j] = *updated
	}
	return updated, nil
}

// Apply применяет событие ленты
func (v *LiveView) Apply(event Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch event.Type {
	case EventSnapshot:
		v.items = make([]Appointment, len(event.Appointments))
		copy(v.items, event.Appointments)

	case EventCreated, EventUpdated:
		if event.Appointment == nil {
			return
		}
		if i := v.indexOf(event.Appointment.ID); i >= 0 {
			v.items[i] = *event.Appointment
			return
		}
		v.items = append([]Appointment{*event.Appointment}, v.items...)

	case EventDeleted:
		if i := v.indexOf(event.ID); i >= 0 {
			v.items = append(v.items[:i], v.items[i+1:]...)
		}
	}
}

func (v *LiveView) indexOf(id string) int {
	for i := range v.items {
		if v.items[i].ID == id {
			return i
		}
	}
	return -1
}

func sameVersion(a, b Appointment) bool {
	return a.Status == b.Status && a.UpdatedAt.Equal(b.UpdatedAt)
}

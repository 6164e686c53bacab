package domain

import (
	"time"

	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

// SlotGrid фиксированная дневная сетка временных слотов.
// Детерминирована: не зависит от данных, только от конфигурации.
type SlotGrid struct {
	times    []types.TimeString
	location *time.Location
}

// NewSlotGrid создает сетку из списка времён "HH:MM" в порядке следования
func NewSlotGrid(times []string, loc *time.Location) (SlotGrid, error) {
	parsed := make([]types.TimeString, 0, len(times))
	for _, raw := range times {
		ts, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return SlotGrid{}, err
		}
		parsed = append(parsed, ts)
	}
	return SlotGrid{times: parsed, location: loc}, nil
}

// Times возвращает копию всех слотов сетки
func (g SlotGrid) Times() []types.TimeString {
	out := make([]types.TimeString, len(g.times))
	copy(out, g.times)
	return out
}

// Location возвращает локацию, в которой интерпретируются даты и слоты
func (g SlotGrid) Location() *time.Location {
	return g.location
}

// Contains возвращает true, если слот входит в сетку
func (g SlotGrid) Contains(slot types.TimeString) bool {
	for _, t := range g.times {
		if t == slot {
			return true
		}
	}
	return false
}

// DayStart возвращает начало календарного дня date в локации сетки.
// День пересобирается из компонент даты: конвертация момента через In
// сдвинула бы запрошенный день назад в локациях с отрицательным смещением.
func (g SlotGrid) DayStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, g.location)
}

// SlotInstant совмещает дату и слот в один момент в локации сетки
func (g SlotGrid) SlotInstant(date time.Time, slot types.TimeString) (time.Time, error) {
	return slot.At(date, g.location)
}

// BusySlots возвращает множество занятых слотов врача на дату.
// Слот занят, если на тот же календарный день (в локации сетки) есть
// неотменённая запись, начинающаяся в это время. Сравнение идёт по
// дате момента ScheduledAt, а не по строковому представлению.
func (g SlotGrid) BusySlots(date time.Time, appointments []*Appointment) []types.TimeString {
	busySet := make(map[types.TimeString]struct{})

	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		local := a.ScheduledAt.In(g.location)
		if !SameDay(local, date) {
			continue
		}
		busySet[types.NewTimeString(local)] = struct{}{}
	}

	// Порядок сетки сохраняется
	busy := make([]types.TimeString, 0, len(busySet))
	for _, t := range g.times {
		if _, ok := busySet[t]; ok {
			busy = append(busy, t)
		}
	}
	return busy
}

// Partition разбивает сетку на занятые и свободные слоты
func (g SlotGrid) Partition(date time.Time, appointments []*Appointment) (busy, bookable []types.TimeString) {
	busy = g.BusySlots(date, appointments)

	busySet := make(map[types.TimeString]struct{}, len(busy))
	for _, t := range busy {
		busySet[t] = struct{}{}
	}

	bookable = make([]types.TimeString, 0, len(g.times))
	for _, t := range g.times {
		if _, ok := busySet[t]; !ok {
			bookable = append(bookable, t)
		}
	}
	return busy, bookable
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

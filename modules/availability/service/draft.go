package service

import (
	"sort"
	"strconv"

	"creator-ledger/core/errors"
	"creator-ledger/modules/availability/entity"
)

type BlockField string

const (
	FieldStart    BlockField = "start"
	FieldDuration BlockField = "duration"
)

type Block struct {
	ID              string        `json:"id"`
	Start           string        `json:"start"`
	DurationMinutes int           `json:"duration_minutes"`
	Slots           []entity.Slot `json:"slots"`
}

func (b Block) activeCount() int {
	n := 0
	for _, s := range b.Slots {
		if s.Active {
			n++
		}
	}
	return n
}

type Day struct {
	Weekday entity.Weekday `json:"weekday"`
	Blocks  []Block        `json:"blocks"`
}

// Draft is an editable weekly schedule. Every transition returns a new Draft and leaves the
// receiver untouched, so drafts can be shared and compared freely.
type Draft struct {
	CadenceMinutes int   `json:"cadence_minutes"`
	Days           []Day `json:"days"`
	NextID         int   `json:"next_id"`
}

func NewDraft(cadenceMinutes int) Draft {
	return Draft{CadenceMinutes: cadenceMinutes, NextID: 1}
}

func (d Draft) clone() Draft {
	out := Draft{CadenceMinutes: d.CadenceMinutes, NextID: d.NextID, Days: make([]Day, len(d.Days))}
	for i, day := range d.Days {
		blocks := make([]Block, len(day.Blocks))
		for j, b := range day.Blocks {
			b.Slots = append([]entity.Slot(nil), b.Slots...)
			blocks[j] = b
		}
		out.Days[i] = Day{Weekday: day.Weekday, Blocks: blocks}
	}
	return out
}

func (d Draft) locate(day entity.Weekday, blockID string) (int, int, bool) {
	for i := range d.Days {
		if d.Days[i].Weekday != day {
			continue
		}
		for j := range d.Days[i].Blocks {
			if d.Days[i].Blocks[j].ID == blockID {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

func blockNotFound(day entity.Weekday, blockID string) *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, "block "+blockID+" not found on "+string(day), nil)
}

// AddBlock appends a block to day with freshly generated, all-active slots.
func (d Draft) AddBlock(day entity.Weekday, start string, durationMinutes int) (Draft, string) {
	out := d.clone()
	id := strconv.Itoa(out.NextID)
	out.NextID++

	block := Block{
		ID:              id,
		Start:           start,
		DurationMinutes: durationMinutes,
		Slots:           GenerateSlots(start, durationMinutes, out.CadenceMinutes),
	}

	for i := range out.Days {
		if out.Days[i].Weekday == day {
			out.Days[i].Blocks = append(out.Days[i].Blocks, block)
			return out, id
		}
	}
	out.Days = append(out.Days, Day{Weekday: day, Blocks: []Block{block}})
	return out, id
}

func (d Draft) RemoveBlock(day entity.Weekday, blockID string) (Draft, error) {
	i, j, ok := d.locate(day, blockID)
	if !ok {
		return d, blockNotFound(day, blockID)
	}
	out := d.clone()
	out.Days[i].Blocks = append(out.Days[i].Blocks[:j], out.Days[i].Blocks[j+1:]...)
	return out, nil
}

// SetBlockField changes start or duration. Either change regenerates the slots, which
// discards earlier toggles.
func (d Draft) SetBlockField(day entity.Weekday, blockID string, field BlockField, value string) (Draft, error) {
	i, j, ok := d.locate(day, blockID)
	if !ok {
		return d, blockNotFound(day, blockID)
	}
	out := d.clone()
	b := &out.Days[i].Blocks[j]

	switch field {
	case FieldStart:
		if value != "" {
			if _, err := ParseGridClock(value, out.CadenceMinutes); err != nil {
				return d, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
			}
		}
		b.Start = value
	case FieldDuration:
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes < 0 {
			return d, errors.NewAppError(errors.ErrInvalidInput, "duration must be a non-negative number of minutes", err)
		}
		b.DurationMinutes = minutes
	default:
		return d, errors.NewAppError(errors.ErrInvalidInput, "unknown block field "+string(field), nil)
	}

	return out.RegenerateSlots(day, blockID)
}

// RegenerateSlots rebuilds the block's slots from start and duration, all active.
func (d Draft) RegenerateSlots(day entity.Weekday, blockID string) (Draft, error) {
	i, j, ok := d.locate(day, blockID)
	if !ok {
		return d, blockNotFound(day, blockID)
	}
	out := d.clone()
	b := &out.Days[i].Blocks[j]
	b.Slots = GenerateSlots(b.Start, b.DurationMinutes, out.CadenceMinutes)
	return out, nil
}

// ToggleSlot flips the active flag of one slot and nothing else.
func (d Draft) ToggleSlot(day entity.Weekday, blockID string, index int) (Draft, error) {
	i, j, ok := d.locate(day, blockID)
	if !ok {
		return d, blockNotFound(day, blockID)
	}
	if index < 0 || index >= len(d.Days[i].Blocks[j].Slots) {
		return d, errors.NewAppError(errors.ErrInvalidInput, "slot index out of range", nil)
	}
	out := d.clone()
	s := &out.Days[i].Blocks[j].Slots[index]
	s.Active = !s.Active
	return out, nil
}

func (d Draft) setAll(day entity.Weekday, blockID string, active bool) (Draft, error) {
	i, j, ok := d.locate(day, blockID)
	if !ok {
		return d, blockNotFound(day, blockID)
	}
	out := d.clone()
	for k := range out.Days[i].Blocks[j].Slots {
		out.Days[i].Blocks[j].Slots[k].Active = active
	}
	return out, nil
}

func (d Draft) SelectAll(day entity.Weekday, blockID string) (Draft, error) {
	return d.setAll(day, blockID, true)
}

func (d Draft) ClearAll(day entity.Weekday, blockID string) (Draft, error) {
	return d.setAll(day, blockID, false)
}

type BlockPreview struct {
	ID              string        `json:"id"`
	Start           string        `json:"start"`
	DurationMinutes int           `json:"duration_minutes"`
	Slots           []entity.Slot `json:"slots"`
}

type DayPreview struct {
	Weekday entity.Weekday `json:"weekday"`
	Blocks  []BlockPreview `json:"blocks"`
}

// Preview lists days Monday first, keeping only blocks with an active slot, ordered by start.
// Days left without blocks are dropped.
func (d Draft) Preview() []DayPreview {
	byDay := make(map[entity.Weekday][]Block)
	for _, day := range d.Days {
		byDay[day.Weekday] = append(byDay[day.Weekday], day.Blocks...)
	}

	out := make([]DayPreview, 0, len(byDay))
	for _, wd := range entity.WeekOrder {
		kept := make([]BlockPreview, 0, len(byDay[wd]))
		for _, b := range byDay[wd] {
			if b.activeCount() == 0 {
				continue
			}
			kept = append(kept, BlockPreview{
				ID:              b.ID,
				Start:           b.Start,
				DurationMinutes: b.DurationMinutes,
				Slots:           append([]entity.Slot(nil), b.Slots...),
			})
		}
		if len(kept) == 0 {
			continue
		}
		sort.SliceStable(kept, func(a, b int) bool {
			ma, _ := ParseClock(kept[a].Start)
			mb, _ := ParseClock(kept[b].Start)
			return ma < mb
		})
		out = append(out, DayPreview{Weekday: wd, Blocks: kept})
	}
	return out
}

// Submit produces one schedule entry per block that still has an active slot. Blocks running
// past midnight are rejected.
func (d Draft) Submit(creatorID string) ([]entity.ScheduleEntry, error) {
	entries := make([]entity.ScheduleEntry, 0)
	for _, day := range d.Preview() {
		for _, b := range day.Blocks {
			start, err := ParseClock(b.Start)
			if err != nil {
				return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
			}
			if start+len(b.Slots)*d.CadenceMinutes > minutesPerDay {
				return nil, errors.NewAppError(errors.ErrInvalidInput, "block starting "+b.Start+" on "+string(day.Weekday)+" runs past midnight", nil)
			}

			active := make([]string, 0, len(b.Slots))
			for _, s := range b.Slots {
				if s.Active {
					active = append(active, s.Start)
				}
			}
			entries = append(entries, entity.ScheduleEntry{
				CreatorID:       creatorID,
				Weekday:         day.Weekday,
				StartTime:       b.Start,
				DurationMinutes: b.DurationMinutes,
				CadenceMinutes:  d.CadenceMinutes,
				ActiveSlots:     active,
			})
		}
	}
	return entries, nil
}

// FromEntries rebuilds a draft from persisted entries; slots missing from ActiveSlots come
// back inactive.
func FromEntries(entries []entity.ScheduleEntry, cadenceMinutes int) Draft {
	d := NewDraft(cadenceMinutes)
	for _, e := range entries {
		cadence := e.CadenceMinutes
		if cadence <= 0 {
			cadence = cadenceMinutes
		}
		active := make(map[string]bool, len(e.ActiveSlots))
		for _, s := range e.ActiveSlots {
			active[s] = true
		}

		var id string
		d, id = d.AddBlock(e.Weekday, e.StartTime, e.DurationMinutes)
		i, j, _ := d.locate(e.Weekday, id)
		b := &d.Days[i].Blocks[j]
		b.Slots = GenerateSlots(e.StartTime, e.DurationMinutes, cadence)
		for k := range b.Slots {
			b.Slots[k].Active = active[b.Slots[k].Start]
		}
	}
	return d
}

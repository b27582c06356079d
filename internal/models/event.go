package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
)

// ErrNotFound is returned by catalog lookups for unknown identifiers.
var ErrNotFound = errors.New("not found")

// DateLayout is the calendar date format used for events and queries.
const DateLayout = "2006-01-02"

// Event is a booked banquet as recorded by the event office.
type Event struct {
	gorm.Model
	EventID    string      `gorm:"column:event_id;unique_index" json:"event_id"`
	Name       string      `json:"name"`
	Date       string      `gorm:"index" json:"date"` // calendar date, DateLayout
	GuestCount int         `json:"guest_count"`
	TimeRange  string      `json:"time_range"` // e.g. "6:00 pm - 11:00 pm"
	Timeline   StringSlice `gorm:"type:text" json:"timeline"`
	DocumentID string      `json:"document_id,omitempty"` // linked banquet event order, may be empty
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "events"
}

// OnDate reports whether the event takes place on the given calendar day.
func (e *Event) OnDate(day time.Time) bool {
	return e.Date == day.Format(DateLayout)
}

// MenuSelection is one recipe served at an event.
type MenuSelection struct {
	RecipeID string `json:"recipe_id"`
	// Servings overrides the event guest count when positive.
	Servings int `json:"servings,omitempty"`
}

// BanquetOrder is the banquet event order (BEO) linked to an event.
type BanquetOrder struct {
	gorm.Model
	DocumentID       string      `gorm:"column:document_id;unique_index" json:"document_id"`
	EventID          string      `gorm:"index" json:"event_id"`
	BufferPercentage float64     `json:"buffer_percentage"`
	MenuJSON         string      `gorm:"type:text" json:"-"`
	Notes            StringSlice `gorm:"type:text" json:"notes"`
	// Transient fields (ignored by GORM)
	Menu []MenuSelection `gorm:"-" json:"menu"`
}

// TableName sets the table name for BanquetOrder
func (BanquetOrder) TableName() string {
	return "banquet_orders"
}

// GetMenu returns the deserialized menu selections
func (b *BanquetOrder) GetMenu() ([]MenuSelection, error) {
	if len(b.Menu) > 0 {
		return b.Menu, nil
	}
	var menu []MenuSelection
	if b.MenuJSON == "" {
		return menu, nil
	}
	if err := json.Unmarshal([]byte(b.MenuJSON), &menu); err != nil {
		return nil, fmt.Errorf("decode menu of document %s: %w", b.DocumentID, err)
	}
	b.Menu = menu
	return menu, nil
}

// SetMenu serializes the menu selections for storage
func (b *BanquetOrder) SetMenu(menu []MenuSelection) error {
	data, err := json.Marshal(menu)
	if err != nil {
		return err
	}
	b.MenuJSON = string(data)
	b.Menu = menu
	return nil
}

// BeforeSave keeps MenuJSON in step with the transient menu.
func (b *BanquetOrder) BeforeSave() error {
	if len(b.Menu) == 0 {
		return nil
	}
	return b.SetMenu(b.Menu)
}

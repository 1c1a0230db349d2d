package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type MealPeriod string

const (
	MealBreakfast MealPeriod = "breakfast"
	MealLunch     MealPeriod = "lunch"
	MealDinner    MealPeriod = "dinner"
	MealClosed    MealPeriod = "closed"
)

var Meals = []MealPeriod{MealBreakfast, MealLunch, MealDinner}

// CurrentMealPeriod maps a local time to the meal being served:
// breakfast 7-11h, lunch 12-16h, dinner 19-23h.
func CurrentMealPeriod(t time.Time) MealPeriod {
	hour := t.Hour()
	switch {
	case hour >= 7 && hour < 11:
		return MealBreakfast
	case hour >= 12 && hour < 16:
		return MealLunch
	case hour >= 19 && hour < 23:
		return MealDinner
	}
	return MealClosed
}

// FoodPoint is a place handing out meals. Schedule values look like "8:00 - 10:00".
type FoodPoint struct {
	ID        string            `json:"id" firestore:"id" yaml:"id"`
	Name      string            `json:"name" firestore:"name" yaml:"name"`
	Address   string            `json:"address" firestore:"address" yaml:"address"`
	Schedule  map[string]string `json:"schedule" firestore:"schedule" yaml:"schedule"`
	Capacity  int               `json:"capacity" firestore:"capacity" yaml:"capacity"`
	Notes     string            `json:"notes,omitempty" firestore:"notes,omitempty" yaml:"notes"`
	Services  []string          `json:"services" firestore:"services" yaml:"services"`
	CreatedAt time.Time         `json:"created_at" firestore:"createdAt" yaml:"-"`
	UpdatedAt time.Time         `json:"updated_at" firestore:"updatedAt" yaml:"-"`
}

// IsOpen reports whether meal is being served at t. A meal without a
// schedule entry is never open.
func (f *FoodPoint) IsOpen(meal MealPeriod, t time.Time) bool {
	window, ok := f.Schedule[string(meal)]
	if !ok {
		return false
	}

	start, end, err := ParseServiceWindow(window)
	if err != nil {
		return false
	}

	minute := t.Hour()*60 + t.Minute()
	return minute >= start && minute < end
}

// ValidateSchedule checks every entry names a known meal and parses.
func (f *FoodPoint) ValidateSchedule() error {
	for key, window := range f.Schedule {
		meal := MealPeriod(key)
		if meal != MealBreakfast && meal != MealLunch && meal != MealDinner {
			return fmt.Errorf("unknown meal %q", meal)
		}
		if _, _, err := ParseServiceWindow(window); err != nil {
			return fmt.Errorf("%s: %w", meal, err)
		}
	}
	return nil
}

// ParseServiceWindow turns "8:00 - 10:00" into minutes since midnight.
func ParseServiceWindow(window string) (start, end int, err error) {
	parts := strings.Split(window, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid service window %q", window)
	}

	if start, err = parseClock(parts[0]); err != nil {
		return 0, 0, err
	}
	if end, err = parseClock(parts[1]); err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("service window %q ends before it starts", window)
	}
	return start, end, nil
}

func parseClock(s string) (int, error) {
	hm := strings.Split(strings.TrimSpace(s), ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	h, err := strconv.Atoi(hm[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

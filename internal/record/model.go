package record

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format of record dates.
const DateLayout = "2006-01-02"

// Meal types are stored in English and shown in Korean.
var mealTypes = map[string]string{
	"breakfast": "아침",
	"lunch":     "점심",
	"dinner":    "저녁",
	"snack":     "간식",
}

// ParseMealType accepts the Korean or English name and returns the stored form.
func ParseMealType(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := mealTypes[s]; ok {
		return s, true
	}
	for stored, label := range mealTypes {
		if label == s {
			return stored, true
		}
	}
	return "", false
}

// MealLabel returns the Korean label, or stored unchanged if unknown.
func MealLabel(stored string) string {
	if label, ok := mealTypes[stored]; ok {
		return label
	}
	return stored
}

type Record struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	FoodID     int64     `json:"food_id"`
	Quantity   float64   `json:"quantity"`
	RecordDate time.Time `json:"record_date"`
	MealType   string    `json:"meal_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// Entry is a record joined with its food, as listed for one day.
type Entry struct {
	ID         int64    `json:"id"`
	FoodID     int64    `json:"food_id"`
	FoodName   string   `json:"food_name"`
	EnergyKcal *float64 `json:"energy_kcal"`
	Quantity   float64  `json:"quantity"`
	MealType   string   `json:"meal_type"`
}

// Summary is one day's intake weighted by quantity.
type Summary struct {
	TotalKcal    float64 `json:"total_kcal"`
	TotalCarbs   float64 `json:"total_carbs"`
	TotalProtein float64 `json:"total_protein"`
	TotalFat     float64 `json:"total_fat"`
}

// DailyTotal is the calories of one recorded day.
type DailyTotal struct {
	Date      time.Time
	TotalKcal float64
}

type dailyTotalJSON struct {
	Date      string  `json:"date"`
	TotalKcal float64 `json:"total_kcal"`
}

func (d DailyTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(dailyTotalJSON{Date: d.Date.Format(DateLayout), TotalKcal: d.TotalKcal})
}

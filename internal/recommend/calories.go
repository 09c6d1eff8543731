package recommend

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidGender        = errors.New("invalid gender")
	ErrInvalidActivityLevel = errors.New("invalid activity level")
)

var activityMultipliers = map[string]float64{
	"low":    1.2,
	"medium": 1.55,
	"high":   1.9,
}

// CalorieParams are the inputs to the daily calorie estimate
type CalorieParams struct {
	Age           int
	Weight        float64
	Height        float64
	Gender        string
	ActivityLevel string
	Target        string
}

// RecommendedCalories estimates daily calorie needs using the
// Mifflin-St Jeor equation, scaled by activity level and adjusted
// for the fitness target. The result is rounded to two decimals.
func RecommendedCalories(p CalorieParams) (float64, error) {
	gender := strings.ToLower(p.Gender)
	if gender != "male" && gender != "female" {
		return 0, ErrInvalidGender
	}

	multiplier, ok := activityMultipliers[strings.ToLower(p.ActivityLevel)]
	if !ok {
		return 0, ErrInvalidActivityLevel
	}

	bmr := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	total := bmr * multiplier
	switch strings.ToLower(p.Target) {
	case "muscle gain":
		total += 150
	case "weight loss":
		total -= 200
	}

	return math.Round(total*100) / 100, nil
}

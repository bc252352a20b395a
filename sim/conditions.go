package sim

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RandomValue is the config value that randomizes a race condition.
const RandomValue = "random"

// WeightedArrayLen is the length of every weighted condition array.
const WeightedArrayLen = 100

// Category is one value of a race-condition dimension and the number of
// slots it occupies in that dimension's weighted array.
type Category struct {
	Code  int
	Label string
	Count int
}

// Dimension is a randomizable race condition with its target distribution.
// Counts across Categories sum to WeightedArrayLen.
type Dimension struct {
	Name       string
	Categories []Category
}

// Season, weather and ground distributions used when the condition is random.
var (
	SeasonDimension = Dimension{Name: "season", Categories: []Category{
		{Code: 1, Label: "spring", Count: 40},
		{Code: 2, Label: "summer", Count: 22},
		{Code: 3, Label: "autumn", Count: 12},
		{Code: 4, Label: "winter", Count: 26},
	}}
	WeatherDimension = Dimension{Name: "weather", Categories: []Category{
		{Code: 1, Label: "sunny", Count: 58},
		{Code: 2, Label: "cloudy", Count: 28},
		{Code: 3, Label: "rainy", Count: 10},
		{Code: 4, Label: "snowy", Count: 4},
	}}
	GroundDimension = Dimension{Name: "ground", Categories: []Category{
		{Code: 1, Label: "firm", Count: 72},
		{Code: 2, Label: "good", Count: 16},
		{Code: 3, Label: "soft", Count: 8},
		{Code: 4, Label: "heavy", Count: 4},
	}}
)

// RandomMoods is enumerated in place of a single mood when mood is random.
var RandomMoods = []int{-2, -1, 0, 1, 2}

// Condition is a resolved race-condition setting.
//
// Fixed: Value is the concrete code and ForFiltering points at it.
// Random: Value is unused, ForFiltering is nil (any value is acceptable
// downstream) and Weighted holds the shuffled distribution array.
type Condition struct {
	IsRandom     bool   `json:"isRandom"`
	Value        int    `json:"value"`
	ForFiltering *int   `json:"forFiltering,omitempty"`
	Display      string `json:"display"`
	Weighted     []int  `json:"weighted,omitempty"`
}

// Values lists the values this condition contributes to the combination
// cross product: the weighted array when random, otherwise just Value.
func (c Condition) Values() []int {
	if c.IsRandom {
		return c.Weighted
	}
	return []int{c.Value}
}

// SampleCondition resolves a config value for dim. raw is "random", a
// category label (case-insensitive) or its numeric code. rng shuffles the
// weighted array and is only drawn from when the condition is random.
func SampleCondition(dim Dimension, raw string, rng *rand.Rand) (Condition, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, RandomValue) {
		return Condition{
			IsRandom: true,
			Display:  RandomValue,
			Weighted: dim.WeightedArray(rng),
		}, nil
	}
	cat, err := dim.lookup(raw)
	if err != nil {
		return Condition{}, err
	}
	value := cat.Code
	return Condition{
		Value:        value,
		ForFiltering: &value,
		Display:      cat.Label,
	}, nil
}

// WeightedArray builds a fresh WeightedArrayLen-element array with each
// category repeated Count times, then shuffles it uniformly. The shuffle
// only permutes: the per-category multiset is always exactly the table.
func (d Dimension) WeightedArray(rng *rand.Rand) []int {
	arr := make([]int, 0, WeightedArrayLen)
	for _, cat := range d.Categories {
		for i := 0; i < cat.Count; i++ {
			arr = append(arr, cat.Code)
		}
	}
	rng.Shuffle(len(arr), func(i, j int) { arr[i], arr[j] = arr[j], arr[i] })
	return arr
}

// Label returns the display label for code, or the code itself if unknown.
func (d Dimension) Label(code int) string {
	for _, cat := range d.Categories {
		if cat.Code == code {
			return cat.Label
		}
	}
	return strconv.Itoa(code)
}

func (d Dimension) lookup(raw string) (Category, error) {
	if raw == "" {
		return Category{}, configErrorf(d.Name, "value is required (a %s or %q)", d.Name, RandomValue)
	}
	if code, err := strconv.Atoi(raw); err == nil {
		for _, cat := range d.Categories {
			if cat.Code == code {
				return cat, nil
			}
		}
		return Category{}, configErrorf(d.Name, "unknown code %d", code)
	}
	for _, cat := range d.Categories {
		if strings.EqualFold(cat.Label, raw) {
			return cat, nil
		}
	}
	return Category{}, configErrorf(d.Name, "unknown value %q; valid: %s or %q", raw, d.labels(), RandomValue)
}

func (d Dimension) labels() string {
	names := make([]string, len(d.Categories))
	for i, cat := range d.Categories {
		names[i] = cat.Label
	}
	return strings.Join(names, ", ")
}

// MoodSetting is a resolved mood: a fixed value in [-2, 2] or random.
type MoodSetting struct {
	IsRandom bool
	Value    int
}

// Values lists the moods enumerated for this setting.
func (m MoodSetting) Values() []int {
	if m.IsRandom {
		return append([]int(nil), RandomMoods...)
	}
	return []int{m.Value}
}

// ParseMood resolves the mood config value.
func ParseMood(raw string) (MoodSetting, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, RandomValue) {
		return MoodSetting{IsRandom: true}, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return MoodSetting{}, configErrorf("mood", "must be an integer in [-2, 2] or %q, got %q", RandomValue, raw)
	}
	if v < -2 || v > 2 {
		return MoodSetting{}, configErrorf("mood", "must be in [-2, 2], got %d", v)
	}
	return MoodSetting{Value: v}, nil
}

// String renders the setting for logs and tables.
func (m MoodSetting) String() string {
	if m.IsRandom {
		return RandomValue
	}
	return fmt.Sprintf("%+d", m.Value)
}

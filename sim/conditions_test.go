package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racesim/skill-ranker/sim/internal/testutil"
)

func TestDimensions_TablesSumToArrayLength(t *testing.T) {
	for _, dim := range []Dimension{SeasonDimension, WeatherDimension, GroundDimension} {
		total := 0
		for _, c := range dim.Categories {
			total += c.Count
		}
		assert.Equal(t, WeightedArrayLen, total, dim.Name)
	}
}

func TestWeightedArray_CountsMatchTable_AnySeed(t *testing.T) {
	// GIVEN many different shuffle seeds
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, dim := range []Dimension{SeasonDimension, WeatherDimension, GroundDimension} {
			// WHEN a weighted array is generated
			arr := dim.WeightedArray(rng)

			// THEN its length and per-category counts are exact
			require.Len(t, arr, WeightedArrayLen)
			counts := testutil.Counts(arr)
			for _, c := range dim.Categories {
				assert.Equal(t, c.Count, counts[c.Code], "%s %s seed=%d", dim.Name, c.Label, seed)
			}
			assert.Len(t, counts, len(dim.Categories))
		}
	}
}

func TestWeightedArray_SeasonTable(t *testing.T) {
	counts := testutil.Counts(SeasonDimension.WeightedArray(rand.New(rand.NewSource(7))))
	assert.Equal(t, map[int]int{1: 40, 2: 22, 3: 12, 4: 26}, counts)
}

func TestWeightedArray_IsShuffled(t *testing.T) {
	// A shuffled array should almost never keep the grouped build order.
	arr := GroundDimension.WeightedArray(rand.New(rand.NewSource(3)))
	grouped := true
	for i := 1; i < len(arr); i++ {
		if arr[i] < arr[i-1] {
			grouped = false
			break
		}
	}
	assert.False(t, grouped, "weighted array was not permuted")
}

func TestSampleCondition_Fixed(t *testing.T) {
	tests := []struct {
		raw     string
		dim     Dimension
		value   int
		display string
	}{
		{"summer", SeasonDimension, 2, "summer"},
		{"Winter", SeasonDimension, 4, "winter"},
		{"3", WeatherDimension, 3, "rainy"},
		{" heavy ", GroundDimension, 4, "heavy"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, err := SampleCondition(tt.dim, tt.raw, rand.New(rand.NewSource(1)))
			require.NoError(t, err)
			assert.False(t, c.IsRandom)
			assert.Equal(t, tt.value, c.Value)
			require.NotNil(t, c.ForFiltering)
			assert.Equal(t, tt.value, *c.ForFiltering)
			assert.Equal(t, tt.display, c.Display)
			assert.Nil(t, c.Weighted)
			assert.Equal(t, []int{tt.value}, c.Values())
		})
	}
}

func TestSampleCondition_Random(t *testing.T) {
	c, err := SampleCondition(WeatherDimension, "RANDOM", rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.True(t, c.IsRandom)
	assert.Nil(t, c.ForFiltering)
	assert.Len(t, c.Weighted, WeightedArrayLen)
	assert.Equal(t, c.Weighted, c.Values())
}

func TestSampleCondition_Invalid_ConfigurationError(t *testing.T) {
	for _, raw := range []string{"", "monsoon", "9"} {
		_, err := SampleCondition(SeasonDimension, raw, rand.New(rand.NewSource(1)))
		var cfgErr *ConfigurationError
		assert.ErrorAs(t, err, &cfgErr, "raw=%q", raw)
	}
}

func TestParseMood(t *testing.T) {
	m, err := ParseMood("random")
	require.NoError(t, err)
	assert.True(t, m.IsRandom)
	assert.Equal(t, []int{-2, -1, 0, 1, 2}, m.Values())

	m, err = ParseMood("-1")
	require.NoError(t, err)
	assert.Equal(t, []int{-1}, m.Values())
	assert.Equal(t, "-1", m.String())

	for _, raw := range []string{"3", "great", ""} {
		_, err := ParseMood(raw)
		assert.Error(t, err, raw)
	}
}

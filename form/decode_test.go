package form

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("string values are converted", func(t *testing.T) {
		var opts SampleOptions
		err := Decode(map[string]any{
			"description": "Intro course",
			"visible":     "1",
			"parent":      "12",
			"startdate":   "1700000000",
		}, &opts)
		require.NoError(t, err)

		assert.Equal(t, "Intro course", opts.Description)
		require.NotNil(t, opts.Visible)
		assert.True(t, *opts.Visible)
		require.NotNil(t, opts.Parent)
		assert.Equal(t, 12, *opts.Parent)
		require.NotNil(t, opts.StartDate)
		assert.Equal(t, int64(1700000000), opts.StartDate.Unix())
	})

	t.Run("dates", func(t *testing.T) {
		var opts SampleOptions
		require.NoError(t, Decode(map[string]any{"startdate": "2024-02-01"}, &opts))
		require.NotNil(t, opts.StartDate)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *opts.StartDate)
	})

	t.Run("unset fields stay nil", func(t *testing.T) {
		var opts SampleOptions
		require.NoError(t, Decode(map[string]any{"description": "x"}, &opts))
		assert.Nil(t, opts.Visible)
		assert.Nil(t, opts.Parent)
	})

	t.Run("unknown option", func(t *testing.T) {
		var opts SampleOptions
		err := Decode(map[string]any{"visible": "1", "colour": "red"}, &opts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidOption))
		assert.Contains(t, err.Error(), "colour")
		assert.Nil(t, opts.Visible)
	})

	t.Run("embedded options", func(t *testing.T) {
		var rec embeddingRecord
		require.NoError(t, Decode(map[string]any{"name": "Science", "parent": 3}, &rec))
		assert.Equal(t, "Science", rec.Name)
		require.NotNil(t, rec.Parent)
		assert.Equal(t, 3, *rec.Parent)
	})

	t.Run("name value list", func(t *testing.T) {
		tests := []struct {
			name     string
			value    any
			expected Pairs
		}{
			{
				name:     "comma separated",
				value:    "numsections=4, coursedisplay=1",
				expected: Pairs{{Name: "numsections", Value: "4"}, {Name: "coursedisplay", Value: "1"}},
			},
			{
				name:     "value with equals sign",
				value:    "summary=a=b",
				expected: Pairs{{Name: "summary", Value: "a=b"}},
			},
			{
				name:     "json list",
				value:    `[{"name": "numsections", "value": "4"}]`,
				expected: Pairs{{Name: "numsections", Value: "4"}},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var opts SampleOptions
				require.NoError(t, Decode(map[string]any{"extra": tt.value}, &opts))
				assert.Equal(t, tt.expected, opts.Extra)
			})
		}

		var opts SampleOptions
		err := Decode(map[string]any{"extra": "numsections"}, &opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected name=value")
	})

	t.Run("bad value", func(t *testing.T) {
		var opts SampleOptions
		err := Decode(map[string]any{"startdate": "next tuesday"}, &opts)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrInvalidOption))
	})
}

package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryDefaults(t *testing.T) {
	q, err := NewQuery("habits", "", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, "habits", q.Category)
	assert.Equal(t, LevelBeginner, q.Level)
	assert.Equal(t, DepthShort, q.Depth)
}

func TestNewQueryRequiresCategory(t *testing.T) {
	_, err := NewQuery("", "", "beginner", "", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category is required")

	_, err = NewQuery("   ", "", "", "", "")
	require.Error(t, err)
}

func TestNewQueryRejectsUnknownTokens(t *testing.T) {
	_, err := NewQuery("habits", "", "expert", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unrecognized level "expert"`)

	_, err = NewQuery("habits", "", "beginner", "", "bottomless")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unrecognized depth "bottomless"`)
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "beginner", want: LevelBeginner},
		{input: "Intermediate", want: LevelIntermediate},
		{input: "ADVANCED", want: LevelAdvanced},
		{input: "all", want: LevelAll},
		{input: "", want: LevelBeginner},
		{input: "guru", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run("level "+tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, level)
		})
	}
}

func TestDepthLimit(t *testing.T) {
	assert.Equal(t, 3, DepthShort.Limit())
	assert.Equal(t, 7, DepthDeep.Limit())
}

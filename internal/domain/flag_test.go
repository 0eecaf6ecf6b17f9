package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlag(t *testing.T) {
	assert.Equal(t, FlagAffirmative, ParseFlag("yes"))
	assert.Equal(t, FlagAffirmative, ParseFlag(" 是 "))
	assert.Equal(t, FlagNegative, ParseFlag("no"))
	assert.Equal(t, FlagNegative, ParseFlag("否"))
	assert.Equal(t, FlagUnset, ParseFlag(""))
	assert.Equal(t, FlagUnset, ParseFlag("Yes"))
	assert.Equal(t, FlagUnset, ParseFlag("y"))
}

func TestFlagFromValue(t *testing.T) {
	assert.Equal(t, FlagUnset, FlagFromValue(nil))
	assert.Equal(t, FlagNegative, FlagFromValue(FlagNegative))
	assert.Equal(t, FlagUnset, FlagFromValue(1.0))
	assert.Equal(t, FlagAffirmative, FlagFromValue("yes"))
}

func TestFlag_StringRoundTrips(t *testing.T) {
	for _, f := range []Flag{FlagUnset, FlagAffirmative, FlagNegative} {
		assert.Equal(t, f, ParseFlag(f.String()))
	}
}

func TestCaseAttributes_EffectiveSystemCount(t *testing.T) {
	assert.Equal(t, 3.0, CaseAttributes{SystemCount: 3}.EffectiveSystemCount())
	assert.Equal(t, 5.0, CaseAttributes{SystemCount: 3, ActualSharedSystemCount: 5}.EffectiveSystemCount())
	assert.Equal(t, 7.0, CaseAttributes{EntityCount: 2, ActualSharedSystemCount: 5}.AdjustedResourceTotal())
}

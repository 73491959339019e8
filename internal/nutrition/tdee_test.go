package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProfile(sex Sex) BodyProfile {
	weight := 70.0
	height := 175.0
	age := 30
	return BodyProfile{
		WeightKG:       &weight,
		HeightCM:       &height,
		AgeYears:       &age,
		Sex:            &sex,
		CalorieDeficit: DefaultCalorieDeficit,
	}
}

// weight=70, height=175, age=30, male:
// 10*70 + 6.25*175 - 5*30 + 5 = 700 + 1093.75 - 150 + 5 = 1648.75 -> 1649
func TestBMRMale(t *testing.T) {
	bmr, ok := BMR(fullProfile(SexMale))
	require.True(t, ok)
	assert.Equal(t, 1649, bmr.Value)
	// Bounds are scaled from the unrounded 1648.75, then rounded
	// independently: 1483.875 -> 1484, 1813.625 -> 1814.
	assert.Equal(t, 1484, bmr.Low)
	assert.Equal(t, 1814, bmr.High)
}

// Same inputs, female: 700 + 1093.75 - 150 - 161 = 1482.75 -> 1483
func TestBMRFemale(t *testing.T) {
	bmr, ok := BMR(fullProfile(SexFemale))
	require.True(t, ok)
	assert.Equal(t, 1483, bmr.Value)
}

func TestBMRMissingFields(t *testing.T) {
	cases := []struct {
		name string
		mut  func(p *BodyProfile)
	}{
		{"nil weight", func(p *BodyProfile) { p.WeightKG = nil }},
		{"nil height", func(p *BodyProfile) { p.HeightCM = nil }},
		{"nil age", func(p *BodyProfile) { p.AgeYears = nil }},
		{"nil sex", func(p *BodyProfile) { p.Sex = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := fullProfile(SexMale)
			tc.mut(&p)
			_, ok := BMR(p)
			assert.False(t, ok)
		})
	}
}

func TestTDEEModerate(t *testing.T) {
	bmr, ok := BMR(fullProfile(SexMale))
	require.True(t, ok)

	tdee, ok := TDEE(bmr, 3)
	require.True(t, ok)
	// 1649 * 1.55 = 2555.95 -> 2556
	assert.Equal(t, 2556, tdee.Value)
	// Endpoints combine pairwise: 1484*1.4 and 1814*1.7.
	assert.Equal(t, 2078, tdee.Low)
	assert.Equal(t, 3084, tdee.High)
}

func TestTDEEUnknownLevel(t *testing.T) {
	bmr, _ := BMR(fullProfile(SexMale))
	for _, level := range []int{0, 6, -1, 99} {
		_, ok := TDEE(bmr, level)
		assert.False(t, ok, "level %d must be rejected", level)
	}
}

func TestValidActivityLevel(t *testing.T) {
	for level := 1; level <= 5; level++ {
		assert.True(t, ValidActivityLevel(level))
	}
	assert.False(t, ValidActivityLevel(0))
	assert.False(t, ValidActivityLevel(6))
}

func TestComputeEnergyTargets(t *testing.T) {
	e := ComputeEnergy(fullProfile(SexMale), 3)
	require.NotNil(t, e)
	assert.Equal(t, 2556, e.TDEE.Value)
	// target = tdee - 500 deficit
	assert.Equal(t, 2056, e.TargetCalories)
	// 70kg * 1.6 g/kg = 112g
	assert.Equal(t, 112, e.TargetProteinG)
}

func TestComputeEnergySurplus(t *testing.T) {
	p := fullProfile(SexMale)
	p.CalorieDeficit = -300
	e := ComputeEnergy(p, 3)
	require.NotNil(t, e)
	assert.Equal(t, 2856, e.TargetCalories)

	p.CalorieDeficit = 0 // maintenance
	e = ComputeEnergy(p, 3)
	require.NotNil(t, e)
	assert.Equal(t, e.TDEE.Value, e.TargetCalories)
}

// Missing body stats skip the whole computation; no output is substituted
// with population defaults.
func TestComputeEnergyIncompleteProfile(t *testing.T) {
	p := fullProfile(SexFemale)
	p.HeightCM = nil
	assert.Nil(t, ComputeEnergy(p, 3))

	assert.Nil(t, ComputeEnergy(fullProfile(SexMale), 7))
}

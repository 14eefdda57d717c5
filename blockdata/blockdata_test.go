package blockdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `<?xml version="1.0" encoding="utf-8"?>
<Blocks>
  <Block BlockId="3" Name="Granite" QuarryPower="1" ShovelPower="1"
         HackPower="1" WeaponPower="1" AverageToolLongevity="30"
         DigResilience="20" IsFluidBlocker="True" IsAimable="False"
         LightAttenuation="15" EmittedLightAmount="0" MaxStacking="40"
         NutritionalValue="0" />
  <Block BlockId="8" Name="Grass" QuarryPower="1" ShovelPower="3"
         HackPower="1" WeaponPower="1" AverageToolLongevity="30"
         DigResilience="0.9" IsFluidBlocker="True" IsAimable="False"
         LightAttenuation="15" EmittedLightAmount="0" MaxStacking="40"
         NutritionalValue="0" />
  <Block BlockId="31" Name="Magma" QuarryPower="1" ShovelPower="1"
         HackPower="1" WeaponPower="1" AverageToolLongevity="30"
         DigResilience="-1" IsFluidBlocker="False" IsAimable="False"
         LightAttenuation="0" EmittedLightAmount="10" MaxStacking="0"
         NutritionalValue="0" />
</Blocks>`

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleTable))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	granite, ok := table.ByID(3)
	require.True(t, ok)
	assert.Equal(t, "Granite", granite.Name)
	assert.Equal(t, 20.0, granite.Resilience)
	assert.True(t, granite.BlocksFluid)
	assert.False(t, granite.Aimable)
	assert.Equal(t, 40, granite.MaxStacking)
	assert.Equal(t, ToolPower{Quarry: 1, Shovel: 1, Hack: 1, Weapon: 1, Longevity: 30}, granite.Power)

	magma, ok := table.ByID(31)
	require.True(t, ok)
	assert.Equal(t, 10, magma.LightEmission)
	assert.Equal(t, -1.0, magma.Resilience)

	_, ok = table.ByID(999)
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleTable))
	require.NoError(t, err)

	matched := table.Search("gra")
	require.Len(t, matched, 2)
	assert.Equal(t, "Granite", matched[0].Name)
	assert.Equal(t, "Grass", matched[1].Name)

	matched = table.Search("MAGMA")
	require.Len(t, matched, 1)
	assert.Equal(t, 31, matched[0].ID)

	assert.Empty(t, table.Search("bedrock"))
}

func TestParseRejectsForeignElements(t *testing.T) {
	_, err := Parse(strings.NewReader(`<Blocks><Item Name="x" /></Blocks>`))
	assert.ErrorIs(t, err, ErrBadTable)
}

func TestParseRejectsNestedElements(t *testing.T) {
	_, err := Parse(strings.NewReader(
		`<Blocks><Block BlockId="1" Name="x"><Child /></Block></Blocks>`))
	assert.ErrorIs(t, err, ErrBadTable)
}

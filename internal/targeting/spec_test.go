package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
	"github.com/mitchelldurbincs/bridgefront/internal/testutil"
)

func TestDecodeSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Spec
	}{
		{"edge", `{"kind":"edge","bridge":"present","anywhere":true}`, EdgeSpec{Anywhere: true, Bridge: BridgePresent}},
		{"multiEdge", `{"kind":"multiEdge","minEdges":1,"maxEdges":2}`, MultiEdgeSpec{MinEdges: 1, MaxEdges: 2}},
		{"stack", `{"kind":"stack","requiresBridge":true}`, StackSpec{RequiresBridge: true}},
		{"path", `{"kind":"path","maxDistance":3,"stopOnOccupied":true}`, PathSpec{MaxDistance: 3, StopOnOccupied: true}},
		{"multiPath", `{"kind":"multiPath","maxDistance":1,"maxPaths":2}`,
			MultiPathSpec{PathSpec: PathSpec{MaxDistance: 1}, MaxPaths: 2}},
		{"hex", `{"kind":"hex","owner":"self","tiles":["capital"],"maxDistanceFromCapital":2}`,
			HexSpec{rules.HexFilter{
				Owner:          rules.OwnerSelf,
				Tiles:          []core.TileKind{core.TileCapital},
				DistanceBounds: rules.DistanceBounds{MaxFromCapital: testutil.Int(2)},
			}}},
		{"hexPair", `{"kind":"hexPair","occupancy":"empty","allowSame":true}`,
			HexPairSpec{HexFilter: rules.HexFilter{Occupancy: rules.OccupancyEmpty}, AllowSame: true}},
		{"champion", `{"kind":"champion","owner":"enemy","maxDistanceFromFriendlyChampion":1}`,
			ChampionSpec{Owner: rules.OwnerEnemy, DistanceBounds: rules.DistanceBounds{MaxFromFriendlyChampion: testutil.Int(1)}}},
		{"choice", `{"kind":"choice","options":[{"tag":"home","kind":"capital"}]}`,
			ChoiceSpec{Options: []ChoiceOption{{Tag: "home", Kind: ChoiceCapital}}}},
		{"player", `{"kind":"player","owner":"enemy"}`, PlayerSpec{Owner: rules.OwnerEnemy}},
		{"none", `{"kind":"none"}`, NoneSpec{}},
		{"missing kind", `{}`, NoneSpec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := DecodeSpec([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
			assert.Equal(t, tt.expected.Kind(), spec.Kind())
		})
	}
}

func TestDecodeSpec_Errors(t *testing.T) {
	spec, err := DecodeSpec([]byte(`{"kind":"teleport"}`))
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, UnknownSpec{Raw: "teleport"}, spec)
	assert.Equal(t, Kind("teleport"), spec.Kind())

	_, err = DecodeSpec([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeSpec([]byte(`{"kind":"path","maxDistance":"far"}`))
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()

	spec, ok := c.Lookup(ActionMove)
	require.True(t, ok)
	assert.Equal(t, StackSpec{RequiresBridge: true}, spec)

	spec, ok = c.Lookup(ActionBuildBridge)
	require.True(t, ok)
	assert.Equal(t, KindEdge, spec.Kind())

	_, ok = c.Lookup("card.unknown")
	assert.False(t, ok)

	c.Register("card.flare", HexSpec{})
	assert.Contains(t, c.IDs(), "card.flare")

	var nilCatalog *Catalog
	_, ok = nilCatalog.Lookup(ActionMove)
	assert.False(t, ok)
}

func TestDecodeCatalog(t *testing.T) {
	data := []byte(`{
		"card.sabotage": {"kind":"edge","bridge":"present","anywhere":true},
		"card.teleport": {"kind":"warp"},
		"card.rally": {"kind":"multiPath","maxDistance":1,"maxPaths":3}
	}`)

	c, err := DecodeCatalog(data)
	require.NotNil(t, c)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.ErrorContains(t, err, "card.teleport")

	spec, ok := c.Lookup("card.sabotage")
	require.True(t, ok)
	assert.Equal(t, EdgeSpec{Anywhere: true, Bridge: BridgePresent}, spec)

	spec, ok = c.Lookup("card.teleport")
	require.True(t, ok)
	assert.Equal(t, UnknownSpec{Raw: "warp"}, spec)

	_, ok = c.Lookup(ActionMove)
	assert.True(t, ok, "basic actions are always present")
	assert.Equal(t, 6, c.Len())

	_, err = DecodeCatalog([]byte(`[]`))
	assert.Error(t, err)
}

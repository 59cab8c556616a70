package models

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{"GOLD", TierGold, false},
		{" CHALLENGER ", TierChallenger, false},
		{"EMERALD", TierEmerald, false},
		{"gold", "", true},
		{"WOOD", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTier(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRank(t *testing.T) {
	r, err := ParseRank("IV")
	require.NoError(t, err)
	assert.Equal(t, RankIV, r)

	_, err = ParseRank("V")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTierOrder(t *testing.T) {
	assert.Len(t, TierOrder, 10)
	assert.Less(t, TierOrder[TierIron], TierOrder[TierBronze])
	assert.Less(t, TierOrder[TierPlatinum], TierOrder[TierEmerald])
	assert.Less(t, TierOrder[TierGrandmaster], TierOrder[TierChallenger])
	assert.Less(t, RankOrder[RankIV], RankOrder[RankI])
}

func TestTierUnmarshalJSON(t *testing.T) {
	var patch MatchIDPatch
	require.NoError(t, json.Unmarshal([]byte(`{"tier":"DIAMOND","rank":"II"}`), &patch))
	require.NotNil(t, patch.Tier)
	require.NotNil(t, patch.Rank)
	assert.Equal(t, TierDiamond, *patch.Tier)
	assert.Equal(t, RankII, *patch.Rank)

	err := json.Unmarshal([]byte(`{"tier":"PLASTIC"}`), &patch)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"rank":5}`), &patch)
	assert.Error(t, err)
}

func TestTierAndRankNullOrEmptyAreUnset(t *testing.T) {
	for _, body := range []string{
		`{"matchId":"EUW1_1","tier":null,"rank":null}`,
		`{"matchId":"EUW1_1","tier":"","rank":""}`,
	} {
		t.Run(body, func(t *testing.T) {
			var m MatchID
			require.NoError(t, json.Unmarshal([]byte(body), &m))
			assert.Equal(t, MatchID{MatchID: "EUW1_1"}, m)
		})
	}

	var p Player
	require.NoError(t, json.Unmarshal([]byte(`{"puuid":"p1","tier":null,"rank":"","wins":3}`), &p))
	assert.Equal(t, Player{Puuid: "p1", Wins: 3}, p)
}

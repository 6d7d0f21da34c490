package roster_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeagent/pokeagent/internal/roster"
)

func TestFindTrainerByName_NotFound(t *testing.T) {
	env := newTestEnv()
	env.addTrainer(t, "Misty")

	res, err := env.svc.FindTrainerByName(context.Background(), "Ash")
	require.NoError(t, err)
	assert.Equal(t, roster.MatchNone, res.Status)
	assert.Nil(t, res.Trainer)
	assert.Empty(t, res.Candidates)
	assert.Equal(t, `No trainer named "Ash" was found.`, res.Message())
}

func TestFindTrainerByName_Unique(t *testing.T) {
	env := newTestEnv()
	id := env.addTrainer(t, "Ash")

	res, err := env.svc.FindTrainerByName(context.Background(), "  ash ")
	require.NoError(t, err)
	assert.Equal(t, roster.MatchUnique, res.Status)
	require.NotNil(t, res.Trainer)
	assert.Equal(t, id, res.Trainer.ID.String())
	assert.Empty(t, res.Candidates)
}

func TestFindTrainerByName_AmbiguousReturnsEveryCandidate(t *testing.T) {
	env := newTestEnv()
	first := env.addTrainer(t, "Ash")
	second := env.addTrainer(t, "ASH")
	third := env.addTrainer(t, "ash")
	env.addTrainer(t, "Misty")

	res, err := env.svc.FindTrainerByName(context.Background(), "Ash")
	require.NoError(t, err)
	assert.Equal(t, roster.MatchAmbiguous, res.Status)
	assert.Nil(t, res.Trainer)
	require.Len(t, res.Candidates, 3)

	ids := []string{res.Candidates[0].ID.String(), res.Candidates[1].ID.String(), res.Candidates[2].ID.String()}
	assert.ElementsMatch(t, []string{first, second, third}, ids)
	for _, id := range ids {
		assert.Contains(t, res.Message(), id)
	}
}

func TestFindTrainerByName_EmptyName(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.FindTrainerByName(context.Background(), "  ")
	assert.ErrorIs(t, err, roster.ErrInvalidInput)
}

func TestFindTrainerByName_StoreFailure(t *testing.T) {
	env := newTestEnv()
	env.repo.failOn["FindTrainersByName"] = true

	_, err := env.svc.FindTrainerByName(context.Background(), "Ash")
	assert.ErrorIs(t, err, roster.ErrStore)
}

func TestMatchStatus_JSON(t *testing.T) {
	tests := []struct {
		status roster.MatchStatus
		want   string
	}{
		{roster.MatchNone, `"not_found"`},
		{roster.MatchUnique, `"unique"`},
		{roster.MatchAmbiguous, `"ambiguous"`},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			b, err := json.Marshal(tt.status)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

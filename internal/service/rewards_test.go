package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/service"
)

func TestScoreActivity(t *testing.T) {
	withReflection := service.ScoreActivity("felt calmer afterwards")
	assert.Equal(t, int64(10), withReflection.Activity)
	assert.Equal(t, int64(5), withReflection.Reflection)
	assert.Equal(t, int64(15), withReflection.Category)

	blank := service.ScoreActivity("   ")
	assert.Equal(t, int64(10), blank.Category)
	assert.Equal(t, int64(0), blank.Reflection)
}

func TestAccrueRewardAppendsOneEntry(t *testing.T) {
	for _, reflection := range []string{"walked by the river", ""} {
		p := internal.NewUserProfile("u1", "a@example.com", "ann", 1)
		score := service.ScoreActivity(reflection)
		r := service.AccrueReward(p, string(internal.PillarPhysical), "walk", score.Category, 2)

		require.Len(t, p.Rewards, 1)
		assert.Equal(t, score.Category, p.Rewards[0].Points)
		assert.Equal(t, score.Category, p.Points)
		assert.Equal(t, r, p.Rewards[0])
		assert.Equal(t, service.RewardTypePoints, r.RewardType)
	}
}

func TestEvaluateBadgesIsMonotone(t *testing.T) {
	badges := internal.DefaultBadges()

	badges = service.EvaluateBadges(badges, 150, 10)
	assert.True(t, badges[0].Achieved)
	assert.True(t, badges[1].Achieved)
	assert.False(t, badges[2].Achieved)
	assert.Equal(t, int64(150), badges[2].Progress)
	at, ok := badges[1].AchievedAt.Get()
	require.True(t, ok)
	assert.Equal(t, internal.Time(10), at)

	// lower or equal totals never revoke or rewind
	again := service.EvaluateBadges(badges, 20, 11)
	assert.True(t, again[1].Achieved)
	assert.Equal(t, int64(150), again[2].Progress)
	at, _ = again[1].AchievedAt.Get()
	assert.Equal(t, internal.Time(10), at)

	higher := service.EvaluateBadges(again, 400, 12)
	for _, b := range higher {
		assert.True(t, b.Achieved, b.Name)
		assert.Equal(t, b.PointsNeeded, b.Progress)
	}
}

func TestBadgeCompletionAndTiers(t *testing.T) {
	b := internal.Badge{Name: "Dedicated", PointsNeeded: 200}
	assert.Equal(t, 50.0, service.BadgeCompletion(b, 100))
	assert.Equal(t, 100.0, service.BadgeCompletion(b, 1000))

	tiers := service.UnlockedTiers(200)
	require.Len(t, tiers, 3)
	assert.True(t, tiers[0].Unlocked)
	assert.True(t, tiers[1].Unlocked)
	assert.False(t, tiers[2].Unlocked)
}

func TestManageRewards(t *testing.T) {
	s, user := setupProfile(t)
	reward, err := service.ManageRewards(ctx, s, user, &service.RewardRequest{
		Category: "emotional", ActivityScore: 10, ReflectionScore: 5, CategoryScore: 15, Description: "breathing",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), reward.Points)

	p := loadProfile(t, s, user)
	assert.Equal(t, int64(15), p.Points)
	require.Len(t, p.Rewards, 1)
	assert.True(t, p.Badges[0].Achieved)
	assert.False(t, p.Badges[1].Achieved)

	_, err = service.ManageRewards(ctx, s, user, &service.RewardRequest{
		Category: "emotional", ActivityScore: 10, ReflectionScore: 5, CategoryScore: 100,
	})
	assert.ErrorIs(t, err, internal.ErrInvalid)
	assert.Equal(t, int64(15), loadProfile(t, s, user).Points)
}

func TestOverallWellnessAndUpdatePillar(t *testing.T) {
	pillars := internal.DefaultPillars()
	for i := range pillars {
		pillars[i].Progress = (i + 1) * 10
	}
	assert.InDelta(t, 40.0, service.OverallWellness(pillars), 1e-9)
	assert.Equal(t, 0.0, service.OverallWellness(nil))

	s, user := setupProfile(t)
	pl, err := service.UpdatePillar(ctx, s, user, &service.PillarRequest{Pillar: "Financial Health", Progress: 70})
	require.NoError(t, err)
	assert.Equal(t, internal.PillarFinancial, pl.Name)
	assert.InDelta(t, 10.0, service.OverallWellness(loadProfile(t, s, user).WellnessPillars), 1e-9)

	_, err = service.UpdatePillar(ctx, s, user, &service.PillarRequest{Pillar: "financial", Progress: 101})
	assert.ErrorIs(t, err, internal.ErrInvalid)
	_, err = service.UpdatePillar(ctx, s, user, &service.PillarRequest{Pillar: "cardio", Progress: 5})
	assert.ErrorIs(t, err, internal.ErrInvalid)
}

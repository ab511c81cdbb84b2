package service

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetWeightsFallsBackToDefaults(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewRankingConfigService(repo, time.Minute)

	first := svc.GetWeights(context.Background(), "A")
	second := svc.GetWeights(context.Background(), "A")

	require.Equal(t, DefaultWeights("A"), first)
	require.Equal(t, first, second)
	// 兜底是纯读取，不产生任何写入
	require.Zero(t, repo.upserts)
}

func TestGetWeightsUsesStoredConfig(t *testing.T) {
	stored := model.RankingWeights{Completion: 2.5, FreshnessWindowHours: 48, PerCreatorMax: 3}
	repo := &fakeConfigRepo{stored: &model.RankingConfig{
		ConfigKey: "fyp_weights",
		Variant:   "A",
		Weights:   stored,
		IsActive:  true,
	}}
	svc := NewRankingConfigService(repo, time.Minute)

	w := svc.GetWeights(context.Background(), "A")
	require.Equal(t, stored, *w)
}

func TestGetWeightsRepoErrorDefaults(t *testing.T) {
	repo := &fakeConfigRepo{err: errors.New("db down")}
	svc := NewRankingConfigService(repo, time.Minute)

	w := svc.GetWeights(context.Background(), "B")
	require.Equal(t, DefaultWeights("B"), w)
}

func TestGetConfigReportsSource(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewRankingConfigService(repo, time.Minute)

	cfg, err := svc.GetConfig(context.Background(), "A")
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Source)

	_, err = svc.GetConfig(context.Background(), "C")
	require.ErrorIs(t, err, ErrVariantInvalid)
}

func TestUpdateConfigUpserts(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewRankingConfigService(repo, time.Minute)

	err := svc.UpdateConfig(context.Background(), &dto.UpdateRankingConfigDTO{
		Variant:  "B",
		Weights:  *DefaultWeights("B"),
		IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, repo.upserts)
}

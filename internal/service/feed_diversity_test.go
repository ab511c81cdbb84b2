package service

import (
	"Splintr/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func scoredOf(id, creatorID uint64, score float64) *scoredStory {
	return &scoredStory{Story: &model.Story{ID: id, CreatorID: creatorID}, Score: score}
}

func TestSelectDiversePerCreatorCap(t *testing.T) {
	ranked := []*scoredStory{
		scoredOf(1, 100, 0.9),
		scoredOf(2, 100, 0.8),
		scoredOf(3, 100, 0.7),
		scoredOf(4, 100, 0.6),
		scoredOf(5, 200, 0.5),
	}

	out := selectDiverse(ranked, 2)

	counts := map[uint64]int{}
	for _, c := range out {
		counts[c.Story.CreatorID]++
	}
	require.Equal(t, 2, counts[100])
	require.Equal(t, 1, counts[200])
	require.Len(t, out, 3)
}

// 低分的小众创作者靠多样性约束挤进结果
func TestSelectDiverseKeepsLowScoreCreator(t *testing.T) {
	ranked := []*scoredStory{
		scoredOf(1, 100, 0.9),
		scoredOf(2, 100, 0.8),
		scoredOf(3, 100, 0.7),
		scoredOf(4, 200, 0.1),
	}

	out := selectDiverse(ranked, 2)

	require.Len(t, out, 3)
	require.Equal(t, uint64(1), out[0].Story.ID)
	require.Equal(t, uint64(2), out[1].Story.ID)
	require.Equal(t, uint64(4), out[2].Story.ID)
}

func TestSortByScoreStable(t *testing.T) {
	ranked := []*scoredStory{
		scoredOf(1, 100, 0.5),
		scoredOf(2, 200, 0.5),
		scoredOf(3, 300, 0.9),
	}

	sortByScore(ranked)

	require.Equal(t, uint64(3), ranked[0].Story.ID)
	// 同分保持原有相对顺序
	require.Equal(t, uint64(1), ranked[1].Story.ID)
	require.Equal(t, uint64(2), ranked[2].Story.ID)
}

func TestSelectDiverseZeroCapFallsBack(t *testing.T) {
	ranked := []*scoredStory{
		scoredOf(1, 100, 0.9),
		scoredOf(2, 100, 0.8),
		scoredOf(3, 100, 0.7),
	}

	out := selectDiverse(ranked, 0)
	require.Len(t, out, 2)
}

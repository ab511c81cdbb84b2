package service

import "sort"

// sortByScore 按分数降序稳定排序，同分保持打分前的相对顺序
func sortByScore(scored []*scoredStory) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

// selectDiverse 沿全量排序结果一次遍历，施加全局单创作者上限。
// 超限的候选直接跳过，不参与后续任何一页
func selectDiverse(ranked []*scoredStory, perCreatorMax int) []*scoredStory {
	if perCreatorMax <= 0 {
		perCreatorMax = 2
	}
	taken := make(map[uint64]int, len(ranked))
	out := make([]*scoredStory, 0, len(ranked))
	for _, c := range ranked {
		if taken[c.Story.CreatorID] >= perCreatorMax {
			continue
		}
		taken[c.Story.CreatorID]++
		out = append(out, c)
	}
	return out
}

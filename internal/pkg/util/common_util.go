package util

import (
	"strconv"
	"strings"
)

// ExtractTags 从 #话题 文案中提取去重后的标签列表
func ExtractTags(raw []string) []string {
	tagSet := make(map[string]struct{})
	var tags []string

	for _, t := range raw {
		tagName := strings.TrimSpace(strings.TrimPrefix(t, "#"))
		if tagName == "" {
			continue
		}
		if _, exists := tagSet[tagName]; !exists {
			tagSet[tagName] = struct{}{}
			tags = append(tags, tagName)
		}
	}

	return tags
}

// StrSliceToUInt64Slice 字符串切片转 uint64 切片
func StrSliceToUInt64Slice(values []string) ([]uint64, error) {
	out := make([]uint64, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

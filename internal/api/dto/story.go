package dto

// StoryBaseDTO 投稿请求
type StoryBaseDTO struct {
	Title        string   `json:"title" binding:"required,max=128"`
	Description  string   `json:"description" binding:"omitempty,max=1024"`
	Category     string   `json:"category" binding:"omitempty,max=32"`
	ThumbnailKey string   `json:"thumbnail_key" binding:"omitempty,max=256"`
	IsPremium    bool     `json:"is_premium"`
	TipEnabled   bool     `json:"tip_enabled"`
	Tags         []string `json:"tags" binding:"omitempty,max=10,dive,max=32"`
}

// StoryDTO 故事展示信息
type StoryDTO struct {
	ID           uint64   `json:"id"`
	CreatorID    uint64   `json:"creator_id"`
	Nickname     string   `json:"nickname"`
	AvatarURL    string   `json:"avatar_url"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	ThumbnailURL string   `json:"thumbnail_url"`
	IsPremium    bool     `json:"is_premium"`
	TipEnabled   bool     `json:"tip_enabled"`
	ViewCount    int64    `json:"view_count"`
	LikeCount    int64    `json:"like_count"`
	PublishedAt  string   `json:"published_at"`
	Tags         []string `json:"tags"`
}

// StoryWaterfallDTO 瀑布流列表
type StoryWaterfallDTO struct {
	List    []*StoryDTO `json:"list"`
	HasMore bool        `json:"has_more"`
}

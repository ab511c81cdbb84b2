package dto

// FeedQueryDTO 推荐流查询参数
type FeedQueryDTO struct {
	Page    int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit   int    `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
	Variant string `form:"variant" binding:"omitempty,oneof=A B"`
}

// FeedPageDTO 推荐流分页结果
type FeedPageDTO struct {
	Stories    []*StoryDTO   `json:"stories"`
	Pagination PaginationDTO `json:"pagination"`
	Variant    string        `json:"variant"`
}

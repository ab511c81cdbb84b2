package consts

const (
	StoryStatusDraft     = 0
	StoryStatusPublished = 1
	StoryStatusRemoved   = 2
)

const (
	VariantA = "A"
	VariantB = "B"
)

// FeedConfigKey 排序配置在配置表中的主键名
const FeedConfigKey = "fyp_weights"

const (
	DefaultAvatarURL = "default_avatar.png"
)

// SessionHeader 匿名会话标识请求头
const SessionHeader = "X-Session-ID"

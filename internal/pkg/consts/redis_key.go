package consts

const (
	FeedWeightsKey        = "feed:weights:"
	TokenRevokedKey       = "auth:revoked:"
	StoryEngagementKey    = "story:engagement:"
	StoryEngagementDirty  = "story:engagement:dirty"
	StoryVelocityDirty    = "story:velocity:dirty"
)

const (
	EngagementFieldViews       = "total_views"
	EngagementFieldCompletions = "completions"
	EngagementFieldReplays     = "replay_users"
)

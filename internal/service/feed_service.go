package service

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/model"
	"Splintr/internal/pkg/analytics"
	"Splintr/internal/pkg/consts"
	"Splintr/internal/pkg/logger"
	"Splintr/internal/pkg/util"
	"Splintr/internal/repository"
	"context"
	log "log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultFeedLimit    = 20
	candidateMultiplier = 3
	minCandidatePool    = 60

	// suppressionWindow 去重窗口：窗口内曝光过的故事不会再进入结果
	suppressionWindow = 24 * time.Hour
	// cooldownWindow 创作者冷却窗口，窗口内的曝光次数换算成扣分
	cooldownWindow = 4 * time.Hour
	// affinityWindow 兴趣画像回看窗口
	affinityWindow = 30 * 24 * time.Hour
)

type FeedService interface {
	ForYou(ctx context.Context, viewerID uint64, sessionID string, req *dto.FeedQueryDTO) (*dto.FeedPageDTO, error)
	Following(ctx context.Context, viewerID uint64, page, pageSize int) (*dto.StoryWaterfallDTO, error)
}

// FeedTuning 排序引擎的固定调参，与权重文档分开下发
type FeedTuning struct {
	JitterScale          float64
	AffinitySeedLimit    int
	CoEngagementRowLimit int
}

type feedServiceImpl struct {
	storyRepo       repository.StoryRepo
	signalRepo      repository.SignalRepo
	exposureRepo    repository.ExposureRepo
	interactionRepo repository.InteractionRepo
	followRepo      repository.UserFollowRepo
	configService   RankingConfigService
	analytics       *analytics.Client
	rand            RandSource
	tuning          FeedTuning
}

func NewFeedService(
	storyRepo repository.StoryRepo,
	signalRepo repository.SignalRepo,
	exposureRepo repository.ExposureRepo,
	interactionRepo repository.InteractionRepo,
	followRepo repository.UserFollowRepo,
	configService RankingConfigService,
	analyticsClient *analytics.Client,
	randSource RandSource,
	tuning FeedTuning,
) FeedService {
	if tuning.JitterScale <= 0 {
		tuning.JitterScale = 0.05
	}
	if tuning.AffinitySeedLimit <= 0 {
		tuning.AffinitySeedLimit = 50
	}
	if tuning.CoEngagementRowLimit <= 0 {
		tuning.CoEngagementRowLimit = 500
	}
	return &feedServiceImpl{
		storyRepo:       storyRepo,
		signalRepo:      signalRepo,
		exposureRepo:    exposureRepo,
		interactionRepo: interactionRepo,
		followRepo:      followRepo,
		configService:   configService,
		analytics:       analyticsClient,
		rand:            randSource,
		tuning:          tuning,
	}
}

// ForYou 个性化推荐流。候选召回失败整体失败；其余任一信号查询失败则
// 该维度按零值参与打分，请求照常返回
func (s *feedServiceImpl) ForYou(ctx context.Context, viewerID uint64, sessionID string, req *dto.FeedQueryDTO) (*dto.FeedPageDTO, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	identity := util.ResolveIdentity(viewerID, sessionID)
	variant := s.assignVariant(identity, req.Variant)
	weights := s.configService.GetWeights(ctx, variant)

	poolSize := limit * candidateMultiplier
	if poolSize < minCandidatePool {
		poolSize = minCandidatePool
	}
	candidates, err := s.storyRepo.GetPublishedStories(ctx, poolSize)
	if err != nil {
		log.ErrorContext(ctx, "候选召回失败", "err", err)
		return nil, ErrFeedUnavailable
	}
	if len(candidates) == 0 {
		return emptyFeedPage(page, limit, variant), nil
	}

	storyIDs := make([]uint64, 0, len(candidates))
	creatorSet := make(map[uint64]struct{}, len(candidates))
	creatorIDs := make([]uint64, 0, len(candidates))
	for _, c := range candidates {
		storyIDs = append(storyIDs, c.ID)
		if _, ok := creatorSet[c.CreatorID]; !ok {
			creatorSet[c.CreatorID] = struct{}{}
			creatorIDs = append(creatorIDs, c.CreatorID)
		}
	}

	now := time.Now()
	var (
		likeCounts      map[uint64]int64
		engagements     map[uint64]*model.StoryEngagement
		velocities      map[uint64]*model.StoryVelocity
		authorities     map[uint64]*model.CreatorAuthority
		exposedIDs      []uint64
		creatorExposure map[uint64]int
		following       map[uint64]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.signalRepo.GetLikeCounts(gctx, storyIDs)
		if err != nil {
			log.WarnContext(gctx, "点赞信号查询失败，按零值参与", "err", err)
			return nil
		}
		likeCounts = m
		return nil
	})
	g.Go(func() error {
		m, err := s.signalRepo.GetEngagements(gctx, storyIDs)
		if err != nil {
			log.WarnContext(gctx, "播放信号查询失败，按零值参与", "err", err)
			return nil
		}
		engagements = m
		return nil
	})
	g.Go(func() error {
		m, err := s.signalRepo.GetVelocities(gctx, storyIDs)
		if err != nil {
			log.WarnContext(gctx, "热度信号查询失败，按零值参与", "err", err)
			return nil
		}
		velocities = m
		return nil
	})
	g.Go(func() error {
		m, err := s.signalRepo.GetAuthorities(gctx, creatorIDs)
		if err != nil {
			log.WarnContext(gctx, "信誉信号查询失败，按零值参与", "err", err)
			return nil
		}
		authorities = m
		return nil
	})
	if !identity.IsAnonymous() {
		g.Go(func() error {
			ids, err := s.exposureRepo.GetExposedStoryIDs(gctx, identity, now.Add(-suppressionWindow))
			if err != nil {
				log.WarnContext(gctx, "曝光去重查询失败，跳过去重", "err", err)
				return nil
			}
			exposedIDs = ids
			return nil
		})
		g.Go(func() error {
			m, err := s.exposureRepo.GetCreatorExposureCounts(gctx, identity, now.Add(-cooldownWindow))
			if err != nil {
				log.WarnContext(gctx, "创作者冷却查询失败，跳过冷却", "err", err)
				return nil
			}
			creatorExposure = m
			return nil
		})
	}
	if viewerID > 0 {
		g.Go(func() error {
			ids, err := s.followRepo.GetFollowingIDs(gctx, viewerID)
			if err != nil {
				log.WarnContext(gctx, "关注列表查询失败，跳过关注加成", "err", err)
				return nil
			}
			following = make(map[uint64]struct{}, len(ids))
			for _, id := range ids {
				following[id] = struct{}{}
			}
			return nil
		})
	}
	_ = g.Wait()

	// 去重：窗口内已曝光的候选剔除
	if len(exposedIDs) > 0 {
		exposedSet := make(map[uint64]struct{}, len(exposedIDs))
		for _, id := range exposedIDs {
			exposedSet[id] = struct{}{}
		}
		kept := make([]*model.Story, 0, len(candidates))
		for _, c := range candidates {
			if _, ok := exposedSet[c.ID]; ok {
				continue
			}
			kept = append(kept, c)
		}
		candidates = kept
	}
	if len(candidates) == 0 {
		return emptyFeedPage(page, limit, variant), nil
	}

	affinity := s.computeAffinity(ctx, viewerID, weights, candidates)

	sc := &scoreContext{
		Weights:         weights,
		Now:             now,
		Following:       following,
		CreatorExposure: creatorExposure,
		TopicBoost:      affinity.topic,
		CoEngageBoost:   affinity.coEngage,
	}
	scored := make([]*scoredStory, 0, len(candidates))
	for _, c := range candidates {
		sig := &storySignals{
			LikeCount:  likeCounts[c.ID],
			Engagement: engagements[c.ID],
			Velocity:   velocities[c.ID],
			Authority:  authorities[c.CreatorID],
		}
		jitter := s.rand.Float64() * s.tuning.JitterScale
		scored = append(scored, &scoredStory{Story: c, Score: scoreStory(c, sig, sc, jitter)})
	}
	sortByScore(scored)

	qualifying := selectDiverse(scored, weights.PerCreatorMax)
	total := len(qualifying)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	var pageItems []*scoredStory
	if start < total {
		pageItems = qualifying[start:end]
	}

	if len(pageItems) > 0 && !identity.IsAnonymous() {
		s.recordExposures(ctx, identity, variant, pageItems, start)
	}

	stories := make([]*dto.StoryDTO, 0, len(pageItems))
	for _, item := range pageItems {
		stories = append(stories, toStoryDTO(item.Story, likeCounts[item.Story.ID]))
	}
	return &dto.FeedPageDTO{
		Stories: stories,
		Pagination: dto.PaginationDTO{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
		Variant: variant,
	}, nil
}

// assignVariant 显式指定 > 登录用户稳定散列 > 匿名随机
func (s *feedServiceImpl) assignVariant(identity util.Identity, explicit string) string {
	switch explicit {
	case consts.VariantA, consts.VariantB:
		return explicit
	}
	if identity.ViewerID > 0 {
		if util.BucketViewer(identity.ViewerID, 2) == 0 {
			return consts.VariantA
		}
		return consts.VariantB
	}
	if s.rand.Intn(2) == 0 {
		return consts.VariantA
	}
	return consts.VariantB
}

// recordExposures 异步落曝光流水并上报分析端，失败只记日志不影响响应
func (s *feedServiceImpl) recordExposures(ctx context.Context, identity util.Identity, variant string, items []*scoredStory, offset int) {
	traceCtx := logger.DetachContext(ctx)
	go func() {
		writeCtx, cancel := context.WithTimeout(traceCtx, 5*time.Second)
		defer cancel()

		now := time.Now()
		exposures := make([]*model.FeedExposure, 0, len(items))
		events := make([]analytics.ExposureEvent, 0, len(items))
		for i, item := range items {
			exposures = append(exposures, &model.FeedExposure{
				UserID:    identity.ViewerID,
				SessionID: identity.SessionID,
				Variant:   variant,
				StoryID:   item.Story.ID,
				Position:  offset + i,
				CreatedAt: now,
			})
			events = append(events, analytics.ExposureEvent{
				ViewerID:  identity.ViewerID,
				SessionID: identity.SessionID,
				Variant:   variant,
				StoryID:   item.Story.ID,
				Position:  offset + i,
				Timestamp: now.Unix(),
			})
		}
		if err := s.exposureRepo.CreateBatch(writeCtx, exposures); err != nil {
			log.ErrorContext(writeCtx, "曝光落库失败", "count", len(exposures), "err", err)
		}
		if s.analytics != nil && s.analytics.Enabled() {
			if err := s.analytics.PostExposures(writeCtx, events); err != nil {
				log.WarnContext(writeCtx, "曝光上报失败", "count", len(events), "err", err)
			}
		}
	}()
}

// Following 关注流，按发布时间倒序的瀑布流
func (s *feedServiceImpl) Following(ctx context.Context, viewerID uint64, page, pageSize int) (*dto.StoryWaterfallDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultFeedLimit
	}

	creatorIDs, err := s.followRepo.GetFollowingIDs(ctx, viewerID)
	if err != nil {
		log.ErrorContext(ctx, "关注列表查询失败", "viewer_id", viewerID, "err", err)
		return nil, UnExpectedError
	}
	if len(creatorIDs) == 0 {
		return &dto.StoryWaterfallDTO{List: []*dto.StoryDTO{}, HasMore: false}, nil
	}

	// 多取一条判断是否还有下一页
	stories, err := s.storyRepo.GetStoriesByCreators(ctx, creatorIDs, pageSize+1, (page-1)*pageSize)
	if err != nil {
		log.ErrorContext(ctx, "关注流查询失败", "viewer_id", viewerID, "err", err)
		return nil, UnExpectedError
	}
	hasMore := len(stories) > pageSize
	if hasMore {
		stories = stories[:pageSize]
	}

	storyIDs := make([]uint64, 0, len(stories))
	for _, st := range stories {
		storyIDs = append(storyIDs, st.ID)
	}
	likeCounts, err := s.signalRepo.GetLikeCounts(ctx, storyIDs)
	if err != nil {
		log.WarnContext(ctx, "点赞数查询失败", "err", err)
		likeCounts = nil
	}

	return &dto.StoryWaterfallDTO{List: toStoryDTOs(stories, likeCounts), HasMore: hasMore}, nil
}

func emptyFeedPage(page, limit int, variant string) *dto.FeedPageDTO {
	return &dto.FeedPageDTO{
		Stories: []*dto.StoryDTO{},
		Pagination: dto.PaginationDTO{
			Page:  page,
			Limit: limit,
		},
		Variant: variant,
	}
}

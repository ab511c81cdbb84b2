package wire

import (
	"Splintr/internal/api"
	"Splintr/internal/api/config"
	"Splintr/internal/api/handler"
	"Splintr/internal/job"
	"Splintr/internal/pkg/analytics"
	"Splintr/internal/pkg/cron"
	"Splintr/internal/pkg/kafka"
	"Splintr/internal/repository"
	"Splintr/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	storyRepo := repository.NewStoryRepo(db)
	storyLikeRepo := repository.NewStoryLikeRepo(db)
	signalRepo := repository.NewSignalRepo(db)
	exposureRepo := repository.NewExposureRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)
	rankingConfigRepo := repository.NewRankingConfigRepo(db)

	analyticsClient := analytics.NewClient(cfg.Analytics)

	userService := service.NewUserService(userRepo)
	userFollowService := service.NewUserFollowService(userFollowRepo, userRepo)
	storyService := service.NewStoryService(storyRepo, storyLikeRepo, signalRepo, interactionRepo)
	storyActionService := service.NewStoryActionService(storyRepo, storyLikeRepo, interactionRepo)
	rankingConfigService := service.NewRankingConfigService(
		rankingConfigRepo,
		time.Duration(cfg.Ranking.WeightsCacheTTL)*time.Second,
	)
	feedService := service.NewFeedService(
		storyRepo,
		signalRepo,
		exposureRepo,
		interactionRepo,
		userFollowRepo,
		rankingConfigService,
		analyticsClient,
		service.NewSystemRand(),
		service.FeedTuning{
			JitterScale:          cfg.Ranking.JitterScale,
			AffinitySeedLimit:    cfg.Ranking.AffinitySeedLimit,
			CoEngagementRowLimit: cfg.Ranking.CoEngagementRowLimit,
		},
	)

	handlers := &api.HandlersGroup{
		UserHandler:          handler.NewUserHandler(userService),
		UserFollowHandler:    handler.NewUserFollowHandler(userFollowService),
		StoryHandler:         handler.NewStoryHandler(storyService),
		StoryActionHandler:   handler.NewStoryActionHandler(storyActionService),
		FeedHandler:          handler.NewFeedHandler(feedService),
		RankingConfigHandler: handler.NewRankingConfigHandler(rankingConfigService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, interactionRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewEngagementSyncJob(signalRepo),
		job.NewVelocityRollupJob(interactionRepo, signalRepo),
		job.NewAuthorityRollupJob(userFollowRepo, signalRepo),
		job.NewExposurePruneJob(exposureRepo),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}

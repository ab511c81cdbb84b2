package api

import (
	"Splintr/internal/api/handler"
	"Splintr/internal/api/middleware"
	"Splintr/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlersGroup 路由注册所需的全部处理器
type HandlersGroup struct {
	UserHandler          *handler.UserHandler
	UserFollowHandler    *handler.UserFollowHandler
	StoryHandler         *handler.StoryHandler
	StoryActionHandler   *handler.StoryActionHandler
	FeedHandler          *handler.FeedHandler
	RankingConfigHandler *handler.RankingConfigHandler
}

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetSelf)
			}
		}

		relationGroup := apiGroup.Group("/user-relation")
		{
			relationGroup.Use(middleware.AuthMiddleware())
			{
				relationGroup.POST("/follow/:id", group.UserFollowHandler.Follow)
				relationGroup.DELETE("/follow/:id", group.UserFollowHandler.Unfollow)
			}
		}

		storyGroup := apiGroup.Group("/stories")
		{
			authOptGroup := storyGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/detail/:id", group.StoryHandler.GetStory)
				authOptGroup.GET("/list/:id", group.StoryHandler.GetStoriesByCreator)
			}

			authGroup := storyGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.StoryHandler.CreateStory)
				authGroup.GET("/self", group.StoryHandler.GetStoriesSelf)
				authGroup.DELETE("/:id", group.StoryHandler.DeleteStory)
				authGroup.POST("/thumbnail", group.StoryHandler.UploadThumbnail)
				authGroup.POST("/like/:id", group.StoryActionHandler.Like)
				authGroup.DELETE("/like/:id", group.StoryActionHandler.Unlike)
			}
		}

		feedGroup := apiGroup.Group("/feed")
		{
			authOptGroup := feedGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/foryou", group.FeedHandler.ForYou)
			}

			authGroup := feedGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/following", group.FeedHandler.Following)
			}
		}

		// 排序权重管理，需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin/ranking")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles("ADMIN"))
		{
			adminGroup.GET("/config/:variant", group.RankingConfigHandler.GetConfig)
			adminGroup.PUT("/config", group.RankingConfigHandler.UpdateConfig)
		}
	}

	return r
}

package router

import (
	"net/http"

	"moke/internal/handlers"
	"moke/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	userHandler := handlers.NewUserHandler()

	// 公共路由 (Public Routes)
	r.GET("/", postHandler.Index)                    // 首页 - 全站文章流
	r.GET("/group/:slug", postHandler.GroupList)     // 分组下的文章列表
	r.GET("/groups", postHandler.GroupIndex)         // 所有分组列表
	r.GET("/profile/:username", userHandler.Profile) // 作者主页
	r.GET("/posts/:id", postHandler.Detail)          // 文章详情页

	r.GET("/signup", authHandler.ShowRegister) // 注册页面
	r.POST("/signup", authHandler.Register)    // 提交注册
	r.GET("/login", authHandler.ShowLogin)     // 登录页面
	r.POST("/login", authHandler.Login)        // 提交登录
	r.GET("/logout", authHandler.Logout)       // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create", postHandler.ShowCreate)             // 发布文章页面
		authorized.POST("/create", postHandler.Create)                // 提交发布文章
		authorized.GET("/posts/:id/edit", postHandler.ShowEdit)       // 编辑文章页面
		authorized.POST("/posts/:id/edit", postHandler.Update)        // 提交文章更新
		authorized.POST("/posts/:id/comment", postHandler.AddComment) // 发表评论

		authorized.GET("/follow", userHandler.FollowIndex)           // 关注流
		authorized.POST("/follow/:username", userHandler.Follow)     // 关注作者
		authorized.POST("/unfollow/:username", userHandler.Unfollow) // 取消关注
	}

	// 未匹配路由渲染 404 页面
	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "页面不存在")
	})
}

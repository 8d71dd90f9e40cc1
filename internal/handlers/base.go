package handlers

import (
	"moke/internal/identity"
	"moke/internal/middleware"
	"moke/internal/models"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	// 缓存的渲染数据会在请求间复用，这个键必须每次重置
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	} else {
		obj["CurrentUser"] = nil
	}

	obj["CurrentPath"] = c.Request.URL.Path

	// 模板里用 eq 比较导航高亮，保证键存在
	if _, ok := obj["Active"]; !ok {
		obj["Active"] = ""
	}

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	// Simple error page rendering
	Render(c, code, "error.html", gin.H{"Error": message})
}

// CurrentIdentity 从 LoadUser 中间件的结果构造请求身份
func CurrentIdentity(c *gin.Context) identity.Identity {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return identity.FromUser(user.(*models.User))
	}
	return identity.Anon()
}

package handlers

import (
	"errors"
	"net/http"

	"moke/internal/db"
	"moke/internal/feed"
	"moke/internal/middleware"
	"moke/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile - 作者主页 /profile/:username
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")
	page := feed.ParsePage(c.Query("page"))

	author, following, result, err := feed.ByAuthor(username, CurrentIdentity(c), page)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "用户不存在")
			return
		}
		RenderError(c, http.StatusInternalServerError, "加载失败")
		return
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":       author.Username + " 的主页",
		"Author":      author,
		"Following":   following,
		"Posts":       result.Posts,
		"PostTotal":   result.Total,
		"CurrentPage": result.CurrentPage,
		"TotalPages":  result.TotalPages,
		"HasNext":     result.HasNext,
		"HasPrev":     result.HasPrev,
	})
}

// FollowIndex 关注流 /follow
func (h *UserHandler) FollowIndex(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	page := feed.ParsePage(c.Query("page"))

	result, err := feed.Following(user, page)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载失败")
		return
	}

	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Title":       "我的关注",
		"Active":      "follow",
		"Posts":       result.Posts,
		"CurrentPage": result.CurrentPage,
		"TotalPages":  result.TotalPages,
		"HasNext":     result.HasNext,
		"HasPrev":     result.HasPrev,
	})
}

// Follow 关注作者 /follow/:username
// 重复关注和自我关注都静默处理，不报错
func (h *UserHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	if author.ID != user.ID {
		follow := models.Follow{UserID: user.ID, AuthorID: author.ID}
		db.DB.Where("user_id = ? AND author_id = ?", user.ID, author.ID).FirstOrCreate(&follow)
	}

	c.Redirect(http.StatusFound, "/follow")
}

// Unfollow 取消关注 /unfollow/:username
// 未关注时是幂等空操作
func (h *UserHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	db.DB.Where("user_id = ? AND author_id = ?", user.ID, author.ID).Delete(&models.Follow{})

	c.Redirect(http.StatusFound, "/follow")
}

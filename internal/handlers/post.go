package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"moke/internal/db"
	"moke/internal/feed"
	"moke/internal/middleware"
	"moke/internal/models"
	"moke/internal/services"
	"moke/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// indexCacheTTL 首页整页缓存时长。写入不主动失效，
// 新文章最多延迟 20 秒出现在首页，属预期行为。
const indexCacheTTL = 20 * time.Second

// Index 全站文章流 /
func (h *PostHandler) Index(c *gin.Context) {
	page := feed.ParsePage(c.Query("page"))

	cacheKey := fmt.Sprintf("feed:global:page:%d", page)
	data, err := utils.GetCache().GetOrCompute(cacheKey, indexCacheTTL, func() (interface{}, error) {
		result, err := feed.Global(page)
		if err != nil {
			return nil, err
		}
		return gin.H{
			"Title":       "最新发布",
			"Active":      "index",
			"Posts":       result.Posts,
			"CurrentPage": result.CurrentPage,
			"TotalPages":  result.TotalPages,
			"HasNext":     result.HasNext,
			"HasPrev":     result.HasPrev,
		}, nil
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "加载失败")
		return
	}

	// 命中缓存时多个请求共享同一份 map，而 Render 会往里写
	// CurrentUser 等键，必须复制一份再渲染
	cached := data.(gin.H)
	obj := make(gin.H, len(cached)+3)
	for k, v := range cached {
		obj[k] = v
	}
	Render(c, http.StatusOK, "post/list.html", obj)
}

// GroupList 分组文章流 /group/:slug
func (h *PostHandler) GroupList(c *gin.Context) {
	slug := c.Param("slug")
	page := feed.ParsePage(c.Query("page"))

	group, result, err := feed.ByGroup(slug, page)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "分组不存在")
			return
		}
		RenderError(c, http.StatusInternalServerError, "加载失败")
		return
	}

	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Title":       group.Title,
		"Active":      "group",
		"Group":       group,
		"Posts":       result.Posts,
		"CurrentPage": result.CurrentPage,
		"TotalPages":  result.TotalPages,
		"HasNext":     result.HasNext,
		"HasPrev":     result.HasPrev,
	})
}

// GroupIndex 分组目录 /groups
func (h *PostHandler) GroupIndex(c *gin.Context) {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)

	Render(c, http.StatusOK, "group/list.html", gin.H{
		"Title":  "全部分组",
		"Groups": groups,
	})
}

// Detail 文章详情页 /posts/:id
func (h *PostHandler) Detail(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("User").Preload("Group").First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	// Load comments
	var comments []models.Comment
	db.DB.Preload("User").Where("post_id = ?", post.ID).Order("created_at ASC, id ASC").Find(&comments)

	type renderedComment struct {
		models.Comment
		TextHTML template.HTML
		Floor    int
	}
	renderedComments := make([]renderedComment, len(comments))
	for i, com := range comments {
		renderedComments[i] = renderedComment{
			Comment:  com,
			TextHTML: utils.RenderMarkdown(com.Text),
			Floor:    i + 1,
		}
	}

	viewer := CurrentIdentity(c)

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Title":    post.Text,
		"Post":     post,
		"PostHTML": utils.RenderMarkdown(post.Text),
		"Comments": renderedComments,
		"CanEdit":  viewer.CanEdit(&post),
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	// 获取所有分组供用户选择
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)

	Render(c, http.StatusOK, "post/create.html", gin.H{
		"Title":  "发布",
		"Groups": groups,
	})
}

// parseGroupID 解析表单中的分组选择，空值表示不归属任何分组，
// 非空时校验分组存在
func parseGroupID(groupIDStr string) (*uint, error) {
	if groupIDStr == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(groupIDStr)
	if err != nil {
		return nil, fmt.Errorf("分组不存在")
	}
	var group models.Group
	if err := db.DB.First(&group, id).Error; err != nil {
		return nil, fmt.Errorf("分组不存在")
	}
	return &group.ID, nil
}

// saveImage 保存可选的图片附件，未上传时返回空路径
func saveImage(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		// 没有上传图片
		return "", nil
	}
	defer file.Close()
	return services.SaveUpload(file, header)
}

func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	text := c.PostForm("text")
	groupIDStr := c.PostForm("group_id")

	renderFormError := func(message string) {
		var groups []models.Group
		db.DB.Order("id ASC").Find(&groups)
		Render(c, http.StatusBadRequest, "post/create.html", gin.H{
			"Error":  message,
			"Text":   text,
			"Groups": groups,
		})
	}

	if text == "" {
		renderFormError("内容不能为空")
		return
	}

	groupID, err := parseGroupID(groupIDStr)
	if err != nil {
		renderFormError(err.Error())
		return
	}

	image, err := saveImage(c)
	if err != nil {
		renderFormError(err.Error())
		return
	}

	post := models.Post{
		UserID:  user.ID,
		GroupID: groupID,
		Text:    text,
		Image:   image,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		renderFormError("发布失败")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	// 非作者不报错，静默跳回详情页
	if !CurrentIdentity(c).CanEdit(&post) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)

	Render(c, http.StatusOK, "post/edit.html", gin.H{
		"Title":  "编辑文章",
		"Post":   post,
		"Groups": groups,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	// 作者校验先于表单校验；非作者静默跳回详情页，不做任何修改
	if !CurrentIdentity(c).CanEdit(&post) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	text := c.PostForm("text")
	groupIDStr := c.PostForm("group_id")

	renderFormError := func(message string) {
		var groups []models.Group
		db.DB.Order("id ASC").Find(&groups)
		Render(c, http.StatusBadRequest, "post/edit.html", gin.H{
			"Error":  message,
			"Post":   post,
			"Groups": groups,
		})
	}

	if text == "" {
		renderFormError("内容不能为空")
		return
	}

	groupID, err := parseGroupID(groupIDStr)
	if err != nil {
		renderFormError(err.Error())
		return
	}

	image, err := saveImage(c)
	if err != nil {
		renderFormError(err.Error())
		return
	}

	// 只更新 text/group/image，CreatedAt 永不变更
	updates := map[string]interface{}{
		"text":     text,
		"group_id": groupID,
	}
	if image != "" {
		updates["image"] = image
	}

	if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
		renderFormError("保存失败")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

// AddComment 发表评论 /posts/:id/comment
func (h *PostHandler) AddComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	text := c.PostForm("text")
	if text == "" {
		// 空评论不入库，跳回详情页
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   text,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "评论失败")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

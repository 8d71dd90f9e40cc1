package feed

import (
	"moke/internal/db"
	"moke/internal/identity"
	"moke/internal/models"
)

// 四个列表页（全站/分组/作者主页/关注流）的查询都在这里，
// 全部是纯读操作，统一按 created_at DESC, id DESC 排序。

// Page 一页文章及分页元数据
type Page struct {
	Posts []models.Post
	Pagination
}

const feedOrder = "created_at DESC, id DESC"

// fillCommentCounts 批量填充文章的评论数量
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

// Global 全站文章流
func Global(page int) (Page, error) {
	var total int64
	if err := db.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		return Page{}, err
	}
	pg := Paginate(total, page)

	var posts []models.Post
	if err := db.DB.Preload("User").Preload("Group").
		Order(feedOrder).
		Limit(PerPage).
		Offset(pg.Offset()).
		Find(&posts).Error; err != nil {
		return Page{}, err
	}
	fillCommentCounts(posts)

	return Page{Posts: posts, Pagination: pg}, nil
}

// ByGroup 分组下的文章流，分组不存在时返回 gorm.ErrRecordNotFound
func ByGroup(slug string, page int) (models.Group, Page, error) {
	var group models.Group
	if err := db.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		return models.Group{}, Page{}, err
	}

	var total int64
	if err := db.DB.Model(&models.Post{}).Where("group_id = ?", group.ID).Count(&total).Error; err != nil {
		return group, Page{}, err
	}
	pg := Paginate(total, page)

	var posts []models.Post
	if err := db.DB.Preload("User").
		Where("group_id = ?", group.ID).
		Order(feedOrder).
		Limit(PerPage).
		Offset(pg.Offset()).
		Find(&posts).Error; err != nil {
		return group, Page{}, err
	}
	fillCommentCounts(posts)

	return group, Page{Posts: posts, Pagination: pg}, nil
}

// ByAuthor 作者主页文章流，同时返回当前访问者是否已关注该作者。
// 匿名访问者的 following 恒为 false。
func ByAuthor(username string, viewer identity.Identity, page int) (models.User, bool, Page, error) {
	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		return models.User{}, false, Page{}, err
	}

	following := false
	if viewer.IsAuthenticated() {
		var count int64
		db.DB.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewer.User.ID, author.ID).
			Count(&count)
		following = count > 0
	}

	var total int64
	if err := db.DB.Model(&models.Post{}).Where("user_id = ?", author.ID).Count(&total).Error; err != nil {
		return author, following, Page{}, err
	}
	pg := Paginate(total, page)

	var posts []models.Post
	if err := db.DB.Preload("Group").Preload("User").
		Where("user_id = ?", author.ID).
		Order(feedOrder).
		Limit(PerPage).
		Offset(pg.Offset()).
		Find(&posts).Error; err != nil {
		return author, following, Page{}, err
	}
	fillCommentCounts(posts)

	return author, following, Page{Posts: posts, Pagination: pg}, nil
}

// Following 关注流：viewer 关注的所有作者的文章。
// 调用方保证 viewer 已登录（路由层 AuthRequired 把关）。
func Following(viewer *models.User, page int) (Page, error) {
	authorIDs := db.DB.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", viewer.ID)

	var total int64
	if err := db.DB.Model(&models.Post{}).Where("user_id IN (?)", authorIDs).Count(&total).Error; err != nil {
		return Page{}, err
	}
	pg := Paginate(total, page)

	var posts []models.Post
	if err := db.DB.Preload("User").Preload("Group").
		Where("user_id IN (?)", authorIDs).
		Order(feedOrder).
		Limit(PerPage).
		Offset(pg.Offset()).
		Find(&posts).Error; err != nil {
		return Page{}, err
	}
	fillCommentCounts(posts)

	return Page{Posts: posts, Pagination: pg}, nil
}

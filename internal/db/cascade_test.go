package db

import (
	"testing"

	"moke/internal/models"
)

func TestDeleteGroupDetachesPosts(t *testing.T) {
	SetupTest(t)

	user := models.User{Username: "anna", Email: "anna@example.com", Password: "x"}
	if err := DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	group := models.Group{Title: "新闻", Slug: "news", Description: "d"}
	if err := DB.Create(&group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	post := models.Post{UserID: user.ID, GroupID: &group.ID, Text: "hello"}
	if err := DB.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := DeleteGroup(group.ID); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}

	// 文章保留，分组引用置空
	var got models.Post
	if err := DB.First(&got, post.ID).Error; err != nil {
		t.Fatalf("post must survive group deletion: %v", err)
	}
	if got.GroupID != nil {
		t.Errorf("GroupID = %v, want nil", *got.GroupID)
	}

	var count int64
	DB.Model(&models.Group{}).Where("id = ?", group.ID).Count(&count)
	if count != 0 {
		t.Error("group should be deleted")
	}
}

func TestDeleteUserCascades(t *testing.T) {
	SetupTest(t)

	anna := models.User{Username: "anna", Email: "anna@example.com", Password: "x"}
	viktor := models.User{Username: "viktor", Email: "viktor@example.com", Password: "x"}
	for _, u := range []*models.User{&anna, &viktor} {
		if err := DB.Create(u).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	annaPost := models.Post{UserID: anna.ID, Text: "anna post"}
	viktorPost := models.Post{UserID: viktor.ID, Text: "viktor post"}
	for _, p := range []*models.Post{&annaPost, &viktorPost} {
		if err := DB.Create(p).Error; err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	// anna 在 viktor 的文章下留了评论，viktor 也评论了 anna 的文章
	comments := []models.Comment{
		{PostID: viktorPost.ID, UserID: anna.ID, Text: "by anna"},
		{PostID: annaPost.ID, UserID: viktor.ID, Text: "by viktor on anna's post"},
	}
	for i := range comments {
		if err := DB.Create(&comments[i]).Error; err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	// 双向关注
	DB.Create(&models.Follow{UserID: anna.ID, AuthorID: viktor.ID})
	DB.Create(&models.Follow{UserID: viktor.ID, AuthorID: anna.ID})

	if err := DeleteUser(anna.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	var count int64
	DB.Model(&models.Post{}).Where("user_id = ?", anna.ID).Count(&count)
	if count != 0 {
		t.Error("anna's posts should be deleted")
	}
	DB.Model(&models.Comment{}).Count(&count)
	if count != 0 {
		// anna 的评论随人删，viktor 在 anna 文章下的评论随文章删
		t.Errorf("all comments tied to anna should be gone, %d left", count)
	}
	DB.Model(&models.Follow{}).Count(&count)
	if count != 0 {
		t.Errorf("both follow directions should be gone, %d left", count)
	}

	// viktor 和他自己的文章不受影响
	if err := DB.First(&models.User{}, viktor.ID).Error; err != nil {
		t.Errorf("viktor should survive: %v", err)
	}
	if err := DB.First(&models.Post{}, viktorPost.ID).Error; err != nil {
		t.Errorf("viktor's post should survive: %v", err)
	}
}

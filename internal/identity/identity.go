package identity

import (
	"moke/internal/models"
)

// Kind 当前访问者的身份类别
type Kind int

const (
	Anonymous     Kind = iota // 未登录
	Authenticated             // 已登录
	Author                    // 已登录且是目标资源的作者
)

// Identity 请求级身份，贯穿查询层和写入层，避免到处判空
type Identity struct {
	Kind Kind
	User *models.User
}

func Anon() Identity {
	return Identity{Kind: Anonymous}
}

// FromUser 根据中间件加载的用户构造身份，user 为 nil 时为匿名
func FromUser(user *models.User) Identity {
	if user == nil {
		return Anon()
	}
	return Identity{Kind: Authenticated, User: user}
}

// ForPost 针对具体文章收窄身份：作者本人得到 Author
func (id Identity) ForPost(post *models.Post) Identity {
	if id.Kind == Anonymous || id.User == nil {
		return id
	}
	if id.User.ID == post.UserID {
		return Identity{Kind: Author, User: id.User}
	}
	return Identity{Kind: Authenticated, User: id.User}
}

func (id Identity) IsAuthenticated() bool {
	return id.Kind != Anonymous && id.User != nil
}

// CanEdit 只有作者可以编辑文章
func (id Identity) CanEdit(post *models.Post) bool {
	return id.ForPost(post).Kind == Author
}

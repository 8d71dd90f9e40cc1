package identity

import (
	"testing"

	"moke/internal/models"
)

func TestFromUser(t *testing.T) {
	if id := FromUser(nil); id.Kind != Anonymous {
		t.Errorf("nil user should be Anonymous, got %v", id.Kind)
	}

	user := &models.User{ID: 1, Username: "mo"}
	id := FromUser(user)
	if id.Kind != Authenticated || id.User != user {
		t.Errorf("FromUser(user) = %+v, want Authenticated", id)
	}
}

func TestForPost(t *testing.T) {
	author := &models.User{ID: 1}
	other := &models.User{ID: 2}
	post := &models.Post{ID: 10, UserID: 1}

	if got := FromUser(author).ForPost(post).Kind; got != Author {
		t.Errorf("author identity = %v, want Author", got)
	}
	if got := FromUser(other).ForPost(post).Kind; got != Authenticated {
		t.Errorf("non-author identity = %v, want Authenticated", got)
	}
	if got := Anon().ForPost(post).Kind; got != Anonymous {
		t.Errorf("anonymous identity = %v, want Anonymous", got)
	}
}

func TestCanEdit(t *testing.T) {
	post := &models.Post{ID: 10, UserID: 1}

	if !FromUser(&models.User{ID: 1}).CanEdit(post) {
		t.Error("author should be able to edit")
	}
	if FromUser(&models.User{ID: 2}).CanEdit(post) {
		t.Error("non-author must not be able to edit")
	}
	if Anon().CanEdit(post) {
		t.Error("anonymous must not be able to edit")
	}
}

func TestIsAuthenticated(t *testing.T) {
	if Anon().IsAuthenticated() {
		t.Error("anonymous should not be authenticated")
	}
	if !FromUser(&models.User{ID: 3}).IsAuthenticated() {
		t.Error("user identity should be authenticated")
	}
}

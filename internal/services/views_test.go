package services

import (
	"encoding/json"
	"testing"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/google/uuid"
)

func TestPublicUserProjections(t *testing.T) {
	cover := "https://media.test/cover.png"
	hash := "secret"
	u := &models.User{
		Base:             models.Base{ID: uuid.New()},
		Username:         "alice",
		Email:            "alice@example.com",
		FullName:         "Alice",
		Avatar:           "https://media.test/a.png",
		CoverImage:       &cover,
		PasswordHash:     "bcrypt",
		RefreshTokenHash: &hash,
	}

	cases := []struct {
		name    string
		omit    userField
		present []string
		absent  []string
	}{
		{"ownerSummary", ownerSummary, []string{"username", "fullName", "avatar"}, []string{"id", "email", "coverImage", "createdAt"}},
		{"commenterView", commenterView, []string{"id", "username", "email", "avatar"}, []string{"fullName", "coverImage", "createdAt"}},
		{"subscriberView", subscriberView, []string{"id", "username", "fullName", "email", "avatar"}, []string{"coverImage", "updatedAt"}},
		{"likedVideoOwner", likedVideoOwner, []string{"id", "username", "fullName", "avatar"}, []string{"email", "coverImage", "createdAt", "updatedAt"}},
		{"tweetOwner", tweetOwner, []string{"id", "username", "fullName", "avatar"}, []string{"email", "coverImage", "createdAt", "updatedAt"}},
		{"channelView", channelView, []string{"id", "email", "coverImage"}, []string{"createdAt", "updatedAt"}},
		{"fullView", fullView, []string{"id", "email", "coverImage", "createdAt", "updatedAt"}, nil},
	}
	for _, tc := range cases {
		raw, err := json.Marshal(publicUser(u, tc.omit))
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}
		var got map[string]interface{}
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		for _, k := range tc.present {
			if _, ok := got[k]; !ok {
				t.Errorf("%s: missing %q in %s", tc.name, k, raw)
			}
		}
		for _, k := range append(tc.absent, "password", "passwordHash", "refreshToken", "refreshTokenHash", "watchHistory") {
			if _, ok := got[k]; ok {
				t.Errorf("%s: unexpected %q in %s", tc.name, k, raw)
			}
		}
	}

	if publicUser(nil, fullView) != nil {
		t.Error("publicUser(nil) should be nil")
	}
}

func TestPaginated(t *testing.T) {
	p := paginated([]int{1, 2}, 5, 2, 2)
	if p.TotalPages != 3 || !p.HasNextPage {
		t.Errorf("page 2 of 5/2: %+v", p)
	}
	p = paginated([]int{}, 0, 1, 10)
	if p.TotalPages != 0 || p.HasNextPage {
		t.Errorf("empty: %+v", p)
	}
}

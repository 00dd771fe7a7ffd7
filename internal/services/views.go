package services

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/google/uuid"
)

// UserView is the public representation of a user embedded in other output.
// Password hash, refresh token hash and watch history are never included.
type UserView struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Username   string     `json:"username"`
	FullName   string     `json:"fullName,omitempty"`
	Email      string     `json:"email,omitempty"`
	Avatar     string     `json:"avatar"`
	CoverImage *string    `json:"coverImage,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// userField selects optional UserView fields to leave out.
type userField uint8

const (
	omitID userField = 1 << iota
	omitFullName
	omitEmail
	omitCoverImage
	omitTimestamps
)

// Projections used across the query engine.
const (
	// {username, fullName, avatar}
	ownerSummary = omitID | omitEmail | omitCoverImage | omitTimestamps
	// {id, username, fullName, avatar}
	likedVideoOwner = omitEmail | omitCoverImage | omitTimestamps
	// {id, username, fullName, avatar}
	tweetOwner = omitEmail | omitCoverImage | omitTimestamps
	// {id, username, email, avatar}
	commenterView = omitFullName | omitCoverImage | omitTimestamps
	// {id, username, fullName, email, avatar}
	subscriberView = omitCoverImage | omitTimestamps
	// everything public except timestamps
	channelView = omitTimestamps
	// everything public
	fullView userField = 0
)

func publicUser(u *models.User, omit userField) *UserView {
	if u == nil {
		return nil
	}
	v := &UserView{Username: u.Username, Avatar: u.Avatar}
	if omit&omitID == 0 {
		id := u.ID
		v.ID = &id
	}
	if omit&omitFullName == 0 {
		v.FullName = u.FullName
	}
	if omit&omitEmail == 0 {
		v.Email = u.Email
	}
	if omit&omitCoverImage == 0 {
		v.CoverImage = u.CoverImage
	}
	if omit&omitTimestamps == 0 {
		created, updated := u.CreatedAt, u.UpdatedAt
		v.CreatedAt = &created
		v.UpdatedAt = &updated
	}
	return v
}

// VideoView is a video with its owner embedded.
type VideoView struct {
	models.Video
	Owner *UserView `json:"owner"`
}

func videoView(v models.Video, omit userField) VideoView {
	return VideoView{Video: v, Owner: publicUser(v.Owner, omit)}
}

func videoViews(videos []models.Video, omit userField) []VideoView {
	out := make([]VideoView, 0, len(videos))
	for _, v := range videos {
		out = append(out, videoView(v, omit))
	}
	return out
}

// CommentView is a comment with its author embedded.
type CommentView struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	VideoID   uuid.UUID `json:"videoId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Owner     *UserView `json:"owner"`
}

// TweetView is a tweet with its author embedded.
type TweetView struct {
	models.Tweet
	Owner *UserView `json:"owner"`
}

// ChannelProfile is a user seen as a channel by the acting user.
type ChannelProfile struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Avatar            string    `json:"avatar"`
	CoverImage        *string   `json:"coverImage"`
	SubscribersCount  int64     `json:"subscribersCount"`
	SubscribedToCount int64     `json:"subscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
}

// ChannelStats are the dashboard totals of a channel.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}

// ChannelVideo is one row of the dashboard video list.
type ChannelVideo struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LikeSummary describes the likes of one video from the acting user's view.
type LikeSummary struct {
	TotalLikes    int64 `json:"totalLikes"`
	IsLikedByUser bool  `json:"isLikedByUser"`
}

// SubscriberEntry is one row of a channel's subscriber list.
type SubscriberEntry struct {
	Subscriber *UserView `json:"subscriber"`
}

// Paginated is one page of a larger result set.
type Paginated[T any] struct {
	Docs        []T   `json:"docs"`
	TotalDocs   int64 `json:"totalDocs"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
}

func paginated[T any](docs []T, total int64, page, limit int) *Paginated[T] {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return &Paginated[T]{
		Docs:        docs,
		TotalDocs:   total,
		Page:        page,
		Limit:       limit,
		TotalPages:  pages,
		HasNextPage: page < pages,
	}
}

// VideoDetail is a single video as seen by the acting user.
type VideoDetail struct {
	VideoView
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
	LikesCount       int64 `json:"likesCount"`
	IsLiked          bool  `json:"isLiked"`
}

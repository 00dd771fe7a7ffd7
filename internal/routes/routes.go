package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups every route handler.
type Handlers struct {
	Health        *handlers.HealthHandler
	Users         *handlers.UserHandler
	Videos        *handlers.VideoHandler
	Comments      *handlers.CommentHandler
	Tweets        *handlers.TweetHandler
	Likes         *handlers.LikeHandler
	Subscriptions *handlers.SubscriptionHandler
	Playlists     *handlers.PlaylistHandler
	Dashboard     *handlers.DashboardHandler
}

// Setup mounts the API. storage backs the rate limiters; nil keeps limiter
// state in memory.
func Setup(app *fiber.App, cfg *config.Config, users *services.UserService, h Handlers, storage fiber.Storage) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(newLimiter(60, storage))

	api.Get("/health", h.Health.Check)

	v1 := api.Group("/v1")
	auth := []fiber.Handler{middleware.JWTProtected(cfg), middleware.RequireUser(users)}

	// Credential endpoints: 10 req/min per IP (stricter)
	credentials := newLimiter(10, storage)

	u := v1.Group("/users")
	u.Post("/register", credentials, h.Users.Register)
	u.Post("/login", credentials, h.Users.Login)
	u.Post("/refresh-token", credentials, h.Users.RefreshToken)
	u.Post("/logout", with(auth, h.Users.Logout)...)
	u.Post("/change-password", with(auth, h.Users.ChangePassword)...)
	u.Get("/current-user", with(auth, h.Users.CurrentUser)...)
	u.Patch("/update-account", with(auth, h.Users.UpdateAccount)...)
	u.Patch("/avatar", with(auth, h.Users.UpdateAvatar)...)
	u.Patch("/cover-image", with(auth, h.Users.UpdateCoverImage)...)
	u.Get("/c/:username", with(auth, h.Users.ChannelProfile)...)
	u.Get("/history", with(auth, h.Users.WatchHistory)...)

	videos := v1.Group("/videos", auth...)
	videos.Get("/", h.Videos.List)
	videos.Post("/", h.Videos.Publish)
	videos.Get("/recommended", h.Videos.Recommended)
	videos.Get("/user/:username", h.Videos.ByUsername)
	videos.Patch("/toggle/publish/:videoId", h.Videos.TogglePublish)
	videos.Get("/:videoId", h.Videos.Get)
	videos.Patch("/:videoId/views", h.Videos.AddView)
	videos.Patch("/:videoId", h.Videos.Update)
	videos.Delete("/:videoId", h.Videos.Delete)

	comments := v1.Group("/comments", auth...)
	comments.Patch("/c/:commentId", h.Comments.Update)
	comments.Delete("/c/:commentId", h.Comments.Delete)
	comments.Get("/:videoId", h.Comments.List)
	comments.Post("/:videoId", h.Comments.Add)

	tweets := v1.Group("/tweets", auth...)
	tweets.Post("/", h.Tweets.Create)
	tweets.Get("/user/:userId", h.Tweets.ByUser)
	tweets.Patch("/:tweetId", h.Tweets.Update)
	tweets.Delete("/:tweetId", h.Tweets.Delete)

	likes := v1.Group("/likes", auth...)
	likes.Post("/toggle/v/:videoId", h.Likes.ToggleVideoLike)
	likes.Post("/toggle/c/:commentId", h.Likes.ToggleCommentLike)
	likes.Post("/toggle/t/:tweetId", h.Likes.ToggleTweetLike)
	likes.Get("/videos", h.Likes.LikedVideos)
	likes.Get("/video/:videoId", h.Likes.VideoLikes)

	subs := v1.Group("/subscriptions", auth...)
	subs.Post("/c/:channelId", h.Subscriptions.Toggle)
	subs.Get("/c/:channelId", h.Subscriptions.Subscribers)
	subs.Get("/u/:subscriberId", h.Subscriptions.SubscribedChannels)

	playlists := v1.Group("/playlists", auth...)
	playlists.Post("/", h.Playlists.Create)
	playlists.Get("/user/:userId", h.Playlists.ByUser)
	playlists.Patch("/add/:videoId/:playlistId", h.Playlists.AddVideo)
	playlists.Patch("/remove/:videoId/:playlistId", h.Playlists.RemoveVideo)
	playlists.Get("/:playlistId", h.Playlists.Get)
	playlists.Patch("/:playlistId", h.Playlists.Update)
	playlists.Delete("/:playlistId", h.Playlists.Delete)

	dashboard := v1.Group("/dashboard", auth...)
	dashboard.Get("/stats", h.Dashboard.Stats)
	dashboard.Get("/videos", h.Dashboard.Videos)
}

func newLimiter(max int, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Storage:           storage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Status:  fiber.StatusTooManyRequests,
				Message: "Too many requests",
			})
		},
	})
}

func with(chain []fiber.Handler, h fiber.Handler) []fiber.Handler {
	return append(append([]fiber.Handler{}, chain...), h)
}

package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// Token types carried in the "typ" claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Session is the result of a successful login or refresh.
type Session struct {
	User         *UserView `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

// UserService is the identity store: accounts, credentials, sessions and
// per-user watch history.
type UserService struct {
	db    *gorm.DB
	cfg   *config.Config
	relay media.Relay
}

func NewUserService(db *gorm.DB, cfg *config.Config, relay media.Relay) *UserService {
	return &UserService{db: db, cfg: cfg, relay: relay}
}

func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*UserView, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(req.Password) == "" {
		return nil, validationError("All fields are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationError("Invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, validationError("Password must be at least %d characters", minPasswordLength)
	}
	if req.Avatar == nil {
		return nil, validationError("Avatar file is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return nil, validationError("User with this username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	avatar, err := upload(ctx, s.relay, req.Avatar, "avatar")
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       avatar.URL,
		PasswordHash: string(hash),
	}
	if req.CoverImage != nil {
		cover, err := upload(ctx, s.relay, req.CoverImage, "cover image")
		if err != nil {
			discardMedia(ctx, s.relay, avatar.URL)
			return nil, err
		}
		user.CoverImage = &cover.URL
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		discardMedia(ctx, s.relay, user.Avatar, deref(user.CoverImage))
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationError("User with this username or email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return publicUser(&user, fullView), nil
}

// Login accepts either username or email together with the password.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*Session, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, validationError("Username or email is required")
	}
	if req.Password == "" {
		return nil, validationError("Password is required")
	}

	q := s.db.WithContext(ctx)
	switch {
	case username != "" && email != "":
		q = q.Where("username = ? OR email = ?", username, email)
	case username != "":
		q = q.Where("username = ?", username)
	default:
		q = q.Where("email = ?", email)
	}

	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User does not exist")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, unauthorized("Invalid user credentials")
	}
	return s.startSession(ctx, &user)
}

// Logout revokes the stored refresh token.
func (s *UserService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token_hash", nil).Error
}

// Refresh rotates the session. The presented token must be a valid refresh
// JWT and must match the one last issued to its user.
func (s *UserService) Refresh(ctx context.Context, rawToken string) (*Session, error) {
	if rawToken == "" {
		return nil, unauthorized("Unauthorized request")
	}
	userID, err := s.parseToken(rawToken, TokenRefresh)
	if err != nil {
		return nil, unauthorized("Invalid refresh token")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized("Invalid refresh token")
		}
		return nil, err
	}
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != hashToken(rawToken) {
		return nil, unauthorized("Refresh token is expired or used")
	}
	return s.startSession(ctx, &user)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return validationError("Old and new password are required")
	}
	if len(req.NewPassword) < minPasswordLength {
		return validationError("Password must be at least %d characters", minPasswordLength)
	}

	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return validationError("Invalid old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(user).Update("password_hash", string(hash)).Error
}

// FindByID loads a user or reports NotFound.
func (s *UserService) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return publicUser(user, fullView), nil
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, req *dto.UpdateAccountRequest) (*UserView, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		return nil, validationError("All fields are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationError("Invalid email address")
	}

	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var taken int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, validationError("Email is already in use")
	}
	err = s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationError("Email is already in use")
		}
		return nil, err
	}
	user.FullName, user.Email = fullName, email
	return publicUser(user, fullView), nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, up *dto.Upload) (*UserView, error) {
	if up == nil {
		return nil, validationError("Avatar file is missing")
	}
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	asset, err := upload(ctx, s.relay, up, "avatar")
	if err != nil {
		return nil, err
	}
	previous := user.Avatar
	if err := s.db.WithContext(ctx).Model(user).Update("avatar", asset.URL).Error; err != nil {
		discardMedia(ctx, s.relay, asset.URL)
		return nil, err
	}
	discardMedia(ctx, s.relay, previous)
	user.Avatar = asset.URL
	return publicUser(user, fullView), nil
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, up *dto.Upload) (*UserView, error) {
	if up == nil {
		return nil, validationError("Cover image file is missing")
	}
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	asset, err := upload(ctx, s.relay, up, "cover image")
	if err != nil {
		return nil, err
	}
	previous := deref(user.CoverImage)
	if err := s.db.WithContext(ctx).Model(user).Update("cover_image", asset.URL).Error; err != nil {
		discardMedia(ctx, s.relay, asset.URL)
		return nil, err
	}
	discardMedia(ctx, s.relay, previous)
	user.CoverImage = &asset.URL
	return publicUser(user, fullView), nil
}

// ChannelProfile returns username's channel as seen by viewerID.
func (s *UserService) ChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, validationError("Username is missing")
	}

	var profile ChannelProfile
	res := s.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.full_name, u.email, u.avatar, u.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to_count,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?) AS is_subscribed
		FROM users u
		WHERE u.username = ?`, viewerID, username).Scan(&profile)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFound("Channel does not exist")
	}
	return &profile, nil
}

// WatchHistory lists the videos userID has watched, oldest first, each with
// a summary of its owner.
func (s *UserService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]VideoView, error) {
	var entries []models.WatchEntry
	err := s.db.WithContext(ctx).
		Preload("Video.Owner").
		Where("user_id = ?", userID).
		Order("watched_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	out := make([]VideoView, 0, len(entries))
	for _, e := range entries {
		if e.Video == nil {
			continue
		}
		out = append(out, videoView(*e.Video, ownerSummary))
	}
	return out, nil
}

// ParseAccessToken validates an access token and returns its subject.
func (s *UserService) ParseAccessToken(raw string) (uuid.UUID, error) {
	return s.parseToken(raw, TokenAccess)
}

func (s *UserService) startSession(ctx context.Context, user *models.User) (*Session, error) {
	access, err := s.signToken(user, TokenAccess, s.cfg.JWTAccessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, TokenRefresh, s.cfg.JWTRefreshExpiry)
	if err != nil {
		return nil, err
	}

	hash := hashToken(refresh)
	if err := s.db.WithContext(ctx).Model(user).Update("refresh_token_hash", hash).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshTokenHash = &hash

	return &Session{
		User:         publicUser(user, fullView),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *UserService) signToken(user *models.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"typ": typ,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if typ == TokenAccess {
		claims["username"] = user.Username
		claims["email"] = user.Email
		claims["fullName"] = user.FullName
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *UserService) parseToken(raw, typ string) (uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, err
	}
	return SubjectFromClaims(token.Claims, typ)
}

// SubjectFromClaims checks the token type and returns the subject as a user ID.
func SubjectFromClaims(c jwt.Claims, typ string) (uuid.UUID, error) {
	claims, ok := c.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected claims type")
	}
	if got, _ := claims["typ"].(string); got != typ {
		return uuid.Nil, fmt.Errorf("token type %q, want %q", got, typ)
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(sub)
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package services

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour

	// RoleRacer is the default role for self-registered users.
	RoleRacer = "RACER"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	User         UserInfo `json:"user"`
}

type UserInfo struct {
	ID          uint                `json:"id"`
	Username    string              `json:"username"`
	Email       string              `json:"email,omitempty"`
	Role        string              `json:"role,omitempty"` // legacy single-role alias, first of Roles
	Roles       []string            `json:"roles"`
	Permissions []models.Permission `json:"permissions"`
}

func userInfo(user *models.User) UserInfo {
	info := UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Roles:       make([]string, 0, len(user.Roles)),
		Permissions: user.Authorities(),
	}
	for i := range user.Roles {
		info.Roles = append(info.Roles, user.Roles[i].Name)
	}
	if primary := user.PrimaryRole(); primary != nil {
		info.Role = primary.Name
	}
	return info
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("username already exists")
	}
	if req.Email != "" {
		if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("email already exists")
		}
	}

	var role models.Role
	if err := s.db.Where("name = ?", RoleRacer).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("role not found: %s", RoleRacer)
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Roles:    []models.Role{role},
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("username already exists")
		}
		return nil, err
	}

	log.Printf("User %s registered with role %s", user.Username, role.Name)
	return s.buildResponse(&user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	err := s.db.Preload("Roles").Where("username = ?", req.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid username or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid username or password")
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("Failed to record last login for user %d: %v", user.ID, err)
	}

	log.Printf("User %s logged in", user.Username)
	return s.buildResponse(&user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	if claims["type"] != "refresh" {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	var user models.User
	if err := s.db.Preload("Roles").First(&user, uint(userID)).Error; err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	return s.buildResponse(&user)
}

func (s *AuthService) buildResponse(user *models.User) (*AuthResponse, error) {
	access, err := s.signToken(user, "access", accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
		User:         userInfo(user),
	}, nil
}

func (s *AuthService) signToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"type":     tokenType,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"streakconnect/internal/members"
	"streakconnect/internal/shared/config"
	"streakconnect/internal/shared/constants"
	"streakconnect/pkg/cache"
	"streakconnect/pkg/logger"
)

var (
	ErrInvalidState  = errors.New("invalid or expired login state")
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidToken  = errors.New("invalid token")
)

type Service interface {
	StartLogin(ctx context.Context) (*LoginStartResponse, error)
	HandleCallback(ctx context.Context, req CallbackRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	line          LineClient
	memberService members.Service
	cacheService  cache.Service
	config        *config.Config
	log           *logger.Logger
}

func NewService(line LineClient, memberService members.Service, cacheService cache.Service, cfg *config.Config) Service {
	return &service{
		line:          line,
		memberService: memberService,
		cacheService:  cacheService,
		config:        cfg,
		log:           logger.GetDefault(),
	}
}

// StartLogin mints a one-time state nonce and returns the LINE consent URL.
func (s *service) StartLogin(ctx context.Context) (*LoginStartResponse, error) {
	state := uuid.New().String()

	key := constants.BuildLoginStateKey(state)
	if err := s.cacheService.Set(ctx, key, true, s.config.Redis.LoginStateTTL); err != nil {
		return nil, err
	}

	return &LoginStartResponse{
		AuthorizeURL: s.line.AuthorizeURL(state),
		State:        state,
	}, nil
}

func (s *service) HandleCallback(ctx context.Context, req CallbackRequest) (*AuthResponse, error) {
	// The state nonce is single use: consume it before talking to LINE
	key := constants.BuildLoginStateKey(req.State)
	var stored bool
	if err := s.cacheService.Get(ctx, key, &stored); err != nil || !stored {
		return nil, ErrInvalidState
	}
	_ = s.cacheService.Delete(ctx, key)

	profile, err := s.line.ExchangeCode(ctx, req.Code)
	if err != nil {
		s.log.LogAuthFailure(ctx, "line code exchange failed", "")
		return nil, err
	}

	member, err := s.memberService.UpsertFromLogin(profile.UserID, profile.DisplayName, profile.PictureURL)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(member)
	if err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, member.ID, "line")

	return &AuthResponse{
		Member:       member.ToResponse(),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	// Re-read the member so role and consent changes land in the new pair
	member, err := s.memberService.GetMemberModel(claims.MemberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	return s.generateTokenPair(member)
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.validateToken(tokenString)
}

func (s *service) generateTokenPair(member *members.Member) (*TokenPair, error) {
	now := time.Now()

	accessClaims := JWTClaims{
		MemberID:    member.ID,
		DisplayName: member.DisplayName,
		Role:        string(member.Role),
		Consented:   member.HasConsented(),
		Type:        "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.JWTExpiresIn)),
			Issuer:    "streakconnect",
			Subject:   member.ID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := JWTClaims{
		MemberID:    member.ID,
		DisplayName: member.DisplayName,
		Role:        string(member.Role),
		Consented:   member.HasConsented(),
		Type:        "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.RefreshExpiresIn)),
			Issuer:    "streakconnect",
			Subject:   member.ID,
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

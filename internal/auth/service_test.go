package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streakconnect/internal/members"
	"streakconnect/internal/shared/config"
)

type stubLineClient struct {
	profile *LineProfile
	err     error
}

func (s *stubLineClient) AuthorizeURL(state string) string {
	return "https://access.line.me/oauth2/v2.1/authorize?state=" + state
}

func (s *stubLineClient) ExchangeCode(ctx context.Context, code string) (*LineProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubMemberService struct {
	members map[string]*members.Member
}

func newStubMemberService() *stubMemberService {
	return &stubMemberService{members: make(map[string]*members.Member)}
}

func (s *stubMemberService) GetMember(id string) (*members.MemberResponse, error) {
	m, err := s.GetMemberModel(id)
	if err != nil {
		return nil, err
	}
	resp := m.ToResponse()
	return &resp, nil
}

func (s *stubMemberService) GetMemberModel(id string) (*members.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return nil, errors.New("member not found")
	}
	return m, nil
}

func (s *stubMemberService) GetAllMembers() ([]members.MemberResponse, error) {
	return nil, nil
}

func (s *stubMemberService) UpsertFromLogin(id, displayName, pictureURL string) (*members.Member, error) {
	m, ok := s.members[id]
	if !ok {
		m = &members.Member{ID: id, Role: members.RoleMember}
		s.members[id] = m
	}
	m.DisplayName = displayName
	m.PictureURL = pictureURL
	return m, nil
}

func (s *stubMemberService) UpdateProfile(id string, req members.UpdateProfileRequest) (*members.MemberResponse, error) {
	return nil, nil
}

func (s *stubMemberService) RecordConsent(id string) (*members.MemberResponse, error) {
	m, err := s.GetMemberModel(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m.ConsentAt = &now
	resp := m.ToResponse()
	return &resp, nil
}

func (s *stubMemberService) SetRole(id string, role members.Role) (*members.MemberResponse, error) {
	m, err := s.GetMemberModel(id)
	if err != nil {
		return nil, err
	}
	m.Role = role
	resp := m.ToResponse()
	return &resp, nil
}

func (s *stubMemberService) DeleteMember(id string) error {
	delete(s.members, id)
	return nil
}

// memoryCache is a minimal map-backed stand-in for the Redis cache.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]interface{})}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return errors.New("cache miss")
	}
	if b, ok := dest.(*bool); ok {
		*b = v.(bool)
		return nil
	}
	return errors.New("unsupported dest")
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (c *memoryCache) Exists(ctx context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func (c *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	return errors.New("not implemented")
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
		Redis: config.RedisConfig{
			LoginStateTTL: 10 * time.Minute,
		},
	}
}

func newTestAuthService(line LineClient) (Service, *stubMemberService) {
	memberService := newStubMemberService()
	svc := NewService(line, memberService, newMemoryCache(), testConfig())
	return svc, memberService
}

func TestStartLogin_IssuesStateNonce(t *testing.T) {
	svc, _ := newTestAuthService(&stubLineClient{})

	resp, err := svc.StartLogin(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.State)
	assert.Contains(t, resp.AuthorizeURL, resp.State)
}

func TestHandleCallback_CreatesMemberAndTokens(t *testing.T) {
	line := &stubLineClient{profile: &LineProfile{
		UserID:      "U1234567890",
		DisplayName: "Sax Fan",
		PictureURL:  "https://profile.line-scdn.net/pic",
	}}
	svc, _ := newTestAuthService(line)

	start, err := svc.StartLogin(context.Background())
	require.NoError(t, err)

	resp, err := svc.HandleCallback(context.Background(), CallbackRequest{
		Code:  "auth-code",
		State: start.State,
	})
	require.NoError(t, err)

	assert.Equal(t, "U1234567890", resp.Member.ID)
	assert.Equal(t, "Sax Fan", resp.Member.DisplayName)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "U1234567890", claims.MemberID)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "member", claims.Role)
	assert.False(t, claims.Consented)
}

func TestHandleCallback_RejectsUnknownState(t *testing.T) {
	svc, _ := newTestAuthService(&stubLineClient{profile: &LineProfile{UserID: "U1"}})

	_, err := svc.HandleCallback(context.Background(), CallbackRequest{
		Code:  "auth-code",
		State: "never-issued",
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestHandleCallback_StateIsSingleUse(t *testing.T) {
	line := &stubLineClient{profile: &LineProfile{UserID: "U1", DisplayName: "A"}}
	svc, _ := newTestAuthService(line)

	start, err := svc.StartLogin(context.Background())
	require.NoError(t, err)

	req := CallbackRequest{Code: "auth-code", State: start.State}
	_, err = svc.HandleCallback(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.HandleCallback(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRefreshToken_PicksUpRoleAndConsentChanges(t *testing.T) {
	line := &stubLineClient{profile: &LineProfile{UserID: "U1", DisplayName: "A"}}
	svc, memberService := newTestAuthService(line)

	start, err := svc.StartLogin(context.Background())
	require.NoError(t, err)
	resp, err := svc.HandleCallback(context.Background(), CallbackRequest{Code: "c", State: start.State})
	require.NoError(t, err)

	// promote and consent after login
	_, err = memberService.SetRole("U1", members.RoleAdmin)
	require.NoError(t, err)
	_, err = memberService.RecordConsent("U1")
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.True(t, claims.Consented)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	line := &stubLineClient{profile: &LineProfile{UserID: "U1"}}
	svc, _ := newTestAuthService(line)

	start, err := svc.StartLogin(context.Background())
	require.NoError(t, err)
	resp, err := svc.HandleCallback(context.Background(), CallbackRequest{Code: "c", State: start.State})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(&stubLineClient{})

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenTTL     = 8 * time.Hour
	permissionCacheTTL  = time.Minute
	unknownUserPassword = "timing-equaliser"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type StoreAPI interface {
	FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	RolePermissions(ctx context.Context, roleID string) ([]string, error)
}

type Service struct {
	Store    StoreAPI
	Secret   string
	TokenTTL time.Duration
	Now      func() time.Time

	mu    sync.RWMutex
	perms map[string]cachedGrants

	dummyOnce sync.Once
	dummyHash string
}

type cachedGrants struct {
	keys    map[string]struct{}
	expires time.Time
}

func NewService(store StoreAPI, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Service{Store: store, Secret: secret, TokenTTL: ttl, Now: time.Now, perms: map[string]cachedGrants{}}
}

// Login checks the credentials and issues a signed access token. Unknown
// emails still pay for a bcrypt comparison.
func (s *Service) Login(ctx context.Context, email, password string) (string, AuthUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", AuthUser{}, ErrInvalidCredentials
	}
	user, err := s.Store.FindActiveUserByEmail(ctx, email)
	if err != nil {
		_ = CheckPassword(s.unknownUserHash(), password)
		return "", AuthUser{}, ErrInvalidCredentials
	}
	if err := CheckPassword(user.Password, password); err != nil {
		return "", AuthUser{}, ErrInvalidCredentials
	}
	token, err := GenerateToken(s.Secret, Claims{UserID: user.ID, TenantID: user.TenantID, RoleID: user.RoleID, RoleName: user.RoleName}, s.TokenTTL)
	if err != nil {
		return "", AuthUser{}, err
	}
	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("update last login failed", "userId", user.ID, "err", err)
	}
	user.Password = ""
	return token, user, nil
}

// HasPermission answers from a per-role grant set refreshed every minute.
func (s *Service) HasPermission(ctx context.Context, roleID, permission string) (bool, error) {
	grants, err := s.grants(ctx, roleID)
	if err != nil {
		return false, err
	}
	_, allowed := grants.keys[permission]
	return allowed, nil
}

// Permissions lists the role's grants in DefaultPermissions order.
func (s *Service) Permissions(ctx context.Context, roleID string) ([]string, error) {
	grants, err := s.grants(ctx, roleID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(grants.keys))
	for _, perm := range DefaultPermissions {
		if _, ok := grants.keys[perm]; ok {
			out = append(out, perm)
		}
	}
	return out, nil
}

func (s *Service) grants(ctx context.Context, roleID string) (cachedGrants, error) {
	now := s.Now()
	s.mu.RLock()
	grants, ok := s.perms[roleID]
	s.mu.RUnlock()

	if !ok || now.After(grants.expires) {
		keys, err := s.Store.RolePermissions(ctx, roleID)
		if err != nil {
			return cachedGrants{}, err
		}
		grants = cachedGrants{keys: make(map[string]struct{}, len(keys)), expires: now.Add(permissionCacheTTL)}
		for _, key := range keys {
			grants.keys[key] = struct{}{}
		}
		s.mu.Lock()
		s.perms[roleID] = grants
		s.mu.Unlock()
	}
	return grants, nil
}

func (s *Service) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := HashPassword(unknownUserPassword)
		if err != nil {
			slog.Warn("dummy hash failed", "err", err)
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// OAuthOptions configures the external identity-provider round trip.
type OAuthOptions struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
	UserInfoURL  string
	Scopes       []string
}

// IdentityService implements ports.IdentityBackend: password sign-in/up,
// durable session issuance and lookup, and the OAuth code exchange.
type IdentityService struct {
	users       ports.UserRepository
	sessions    ports.SessionRepository
	oauth       *oauth2.Config
	userInfoURL string
	sessionTTL  time.Duration
}

func NewIdentityService(users ports.UserRepository, sessions ports.SessionRepository, opts OAuthOptions, sessionTTL time.Duration) *IdentityService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &IdentityService{
		users:    users,
		sessions: sessions,
		oauth: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Scopes:       opts.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  opts.AuthURL,
				TokenURL: opts.TokenURL,
			},
		},
		userInfoURL: opts.UserInfoURL,
		sessionTTL:  sessionTTL,
	}
}

func (s *IdentityService) SignUp(ctx context.Context, email, password, name, ip, userAgent string) (*domain.User, *domain.Session, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.issueSession(ctx, created.ID, ip, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return created, session, nil
}

func (s *IdentityService) SignIn(ctx context.Context, email, password, ip, userAgent string) (*domain.User, *domain.Session, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if user.IsBanned(time.Now().UTC()) {
		return nil, nil, domain.ErrBanned
	}

	session, err := s.issueSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// GetSession resolves a durable session token to its (user, session) pair.
// Missing, malformed and expired tokens are all anonymous, not errors: the
// gate must treat "expired" identically to "missing".
func (s *IdentityService) GetSession(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	if token == "" {
		return nil, nil, nil
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	now := time.Now().UTC()
	if session.IsExpired(now) {
		return nil, nil, nil
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Dangling session: the referenced account is gone.
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if user.IsBanned(now) {
		return nil, nil, nil
	}

	return user, session, nil
}

func (s *IdentityService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.sessions.DeleteByToken(ctx, token)
	if err == domain.ErrSessionNotFound {
		return nil
	}
	return err
}

func (s *IdentityService) RevokeUserSessions(ctx context.Context, userID string) (int64, error) {
	return s.sessions.DeleteByUser(ctx, userID)
}

// AuthCodeURL builds the provider authorize URL. The caller is responsible
// for storing state and the pending redirect before navigating away.
func (s *IdentityService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

type providerUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ExchangeCode completes the provider round trip: code → token → userinfo,
// then upserts the account and issues a fresh durable session. Provider
// accounts arrive email-verified.
func (s *IdentityService) ExchangeCode(ctx context.Context, code, ip, userAgent string) (*domain.User, *domain.Session, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("oauth exchange: %w", err)
	}

	resp, err := s.oauth.Client(ctx, token).Get(s.userInfoURL)
	if err != nil {
		return nil, nil, fmt.Errorf("oauth userinfo: %w", err)
	}
	defer resp.Body.Close()

	var info providerUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, nil, fmt.Errorf("oauth userinfo decode: %w", err)
	}
	if info.Email == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, info.Email)
	if err == domain.ErrUserNotFound {
		now := time.Now().UTC()
		user, err = s.users.Create(ctx, &domain.User{
			Email:         info.Email,
			Name:          info.Name,
			Role:          domain.RoleMember,
			EmailVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	if err != nil {
		return nil, nil, err
	}
	if user.IsBanned(time.Now().UTC()) {
		return nil, nil, domain.ErrBanned
	}

	session, err := s.issueSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *IdentityService) issueSession(ctx context.Context, userID, ip, userAgent string) (*domain.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		IPAddress: ip,
		UserAgent: userAgent,
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// newSessionToken returns 32 bytes of hex-encoded random token material.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

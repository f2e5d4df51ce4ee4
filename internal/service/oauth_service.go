package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"client-retention-be/internal/config"
	"client-retention-be/internal/dto"
	"client-retention-be/internal/entity"
	"client-retention-be/internal/pkg/logger"
	"client-retention-be/internal/repository/specification"
	"client-retention-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	googleConf *oauth2.Config
	logger     logger.ILogger
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, sysLogger logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		googleConf: conf,
		logger:     sysLogger,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	googleUser, err := s.fetchGoogleUser(token.AccessToken)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Returning users are matched by provider link first, then by email so an
	// existing password account gets the Google login attached instead of a
	// duplicate row.
	user, err := s.resolveUser(ctx, uow, googleUser)
	if err != nil {
		return nil, err
	}

	signed, err := signAccessToken(user.Id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("OAuthService", "Google login completed", map[string]interface{}{"user_id": user.Id.String()})

	return &dto.LoginResponse{Token: signed}, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (s *oauthService) fetchGoogleUser(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading user info response: %w", err)
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *oauthService) resolveUser(ctx context.Context, uow unitofwork.UnitOfWork, googleUser *googleUserInfo) (*entity.User, error) {
	link, err := uow.UserRepository().FindProvider(ctx, "google", googleUser.ID)
	if err != nil {
		return nil, err
	}
	if link != nil {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: link.UserId})
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if user == nil {
		user = &entity.User{
			Id:           uuid.New(),
			Email:        googleUser.Email,
			FullName:     googleUser.Name,
			PasswordHash: nil,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	}

	provider := &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   "google",
		ProviderUserId: googleUser.ID,
		CreatedAt:      time.Now(),
	}
	if err := uow.UserRepository().CreateProvider(ctx, provider); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

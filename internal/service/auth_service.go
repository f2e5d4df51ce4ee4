package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"client-retention-be/internal/dto"
	"client-retention-be/internal/entity"
	"client-retention-be/internal/pkg/logger"
	"client-retention-be/internal/repository/memory"
	"client-retention-be/internal/repository/specification"
	"client-retention-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory    unitofwork.RepositoryFactory
	pubSub        *gochannel.GoChannel
	mailTopicName string
	loginAttempts *memory.LoginAttemptRepository
	logger        logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	mailTopicName string,
	loginAttempts *memory.LoginAttemptRepository,
	sysLogger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:    uowFactory,
		pubSub:        pubSub,
		mailTopicName: mailTopicName,
		loginAttempts: loginAttempts,
		logger:        sysLogger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome mail goes through the work queue; a dead SMTP server must not
	// fail the registration.
	s.queueWelcomeMail(user.Email, user.FullName)

	return &dto.RegisterResponse{
		Id:    user.Id,
		Email: user.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginAttempts.IsLocked(req.Email) {
		return nil, ErrTooManyAttempts
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		s.loginAttempts.RecordFailure(req.Email)
		return nil, ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.loginAttempts.RecordFailure(req.Email)
		return nil, ErrInvalidLogin
	}

	s.loginAttempts.Reset(req.Email)

	token, err := signAccessToken(user.Id)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: token}, nil
}

func (s *authService) queueWelcomeMail(email, fullName string) {
	task := dto.WelcomeEmailTask{Email: email, FullName: fullName}
	payload, err := json.Marshal(task)
	if err != nil {
		s.logger.Error("AuthService", "Failed to marshal welcome mail task", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.mailTopicName, msg); err != nil {
		s.logger.Error("AuthService", "Failed to queue welcome mail", map[string]interface{}{"error": err.Error(), "email": email})
	}
}

// signAccessToken issues the HS256 access token shared by password and OAuth
// logins.
func signAccessToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

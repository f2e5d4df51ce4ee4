package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"client-retention-be/internal/dto"
	"client-retention-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMailTopic = "SEND_WELCOME_EMAIL"

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestAuth(t *testing.T) (IAuthService, *gochannel.GoChannel) {
	t.Setenv("JWT_SECRET", "test-secret")

	factory := memory.NewFactory(memory.NewStore())
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewAuthService(factory, pubSub, testMailTopic, memory.NewLoginAttemptRepository(), nopLogger{})
	return svc, pubSub
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuth(t)

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "owner@example.com",
		Password: "secret-password",
		FullName: "Owner",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", res.Email)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth(t)

	req := &dto.RegisterRequest{Email: "owner@example.com", Password: "secret-password", FullName: "Owner"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterQueuesWelcomeMail(t *testing.T) {
	svc, pubSub := newTestAuth(t)

	messages, err := pubSub.Subscribe(context.Background(), testMailTopic)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "owner@example.com",
		Password: "secret-password",
		FullName: "Owner",
	})
	require.NoError(t, err)

	select {
	case msg := <-messages:
		var task dto.WelcomeEmailTask
		require.NoError(t, json.Unmarshal(msg.Payload, &task))
		assert.Equal(t, "owner@example.com", task.Email)
		assert.Equal(t, "Owner", task.FullName)
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("welcome mail task was not published")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "owner@example.com",
		Password: "secret-password",
		FullName: "Owner",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "owner@example.com",
		Password: "secret-password",
		FullName: "Owner",
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "owner@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidLogin)
	}

	// Even the correct password is rejected while locked out.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

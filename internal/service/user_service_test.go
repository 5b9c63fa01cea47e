package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pixel-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_List(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	users := []model.User{
		{ID: 1, Username: "alice", Email: "alice@example.com", CreatedAt: time.Now()},
		{ID: 2, Username: "bob", Email: "bob@example.com", IsAdmin: true, CreatedAt: time.Now()},
	}

	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	mockRepo.On("List", ctx).Return(users, nil)

	got, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, users, got)
	mockRepo.AssertExpectations(t)
}

func TestUserService_List_Error(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	mockRepo.On("List", ctx).Return(nil, errors.New("connection reset"))

	got, err := service.List(ctx)

	require.Error(t, err)
	assert.Nil(t, got)
}

func TestUserService_Update_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := model.UpdateUserRequest{
		Username: "alice2",
		Email:    "Alice2@Example.com",
		FullName: "Alice Example",
		IsAdmin:  true,
	}

	// The email is normalised before reaching the repository
	normalised := req
	normalised.Email = "alice2@example.com"

	updated := &model.User{
		ID:       1,
		Username: "alice2",
		Email:    "alice2@example.com",
		FullName: "Alice Example",
		IsAdmin:  true,
	}

	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	mockRepo.On("Update", ctx, int64(1), normalised).Return(nil)
	mockRepo.On("GetByID", ctx, int64(1)).Return(updated, nil)

	user, err := service.Update(ctx, 1, req)

	require.NoError(t, err)
	assert.Equal(t, updated, user)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Update_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := model.UpdateUserRequest{Username: "ghost", Email: "ghost@example.com"}

	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	mockRepo.On("Update", ctx, int64(99), req).Return(model.ErrUserNotFound)

	user, err := service.Update(ctx, 99, req)

	require.Error(t, err)
	assert.Equal(t, model.ErrUserNotFound, err)
	assert.Nil(t, user)
}

func TestUserService_Update_Validation(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, logger)

	_, err := service.Update(ctx, 1, model.UpdateUserRequest{Email: "a@b.com"})
	require.Error(t, err)

	_, err = service.Update(ctx, 1, model.UpdateUserRequest{Username: "alice", Email: "not-an-email"})
	require.Error(t, err)

	mockRepo.AssertNotCalled(t, "Update")
}

// dao/user_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	sail_errors "github.com/sapictureday/sail/errors"
	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
)

type UserDAO struct {
	DB *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{DB: db}
}

func (dao *UserDAO) CreateUser(ctx context.Context, user model.User) (string, error) {
	start := time.Now()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	if err := dao.DB.WithContext(ctx).Create(&user).Error; err != nil {
		logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.Duration("duration", time.Since(start)))
		return "", sail_errors.ErrDatabaseOperation
	}

	logger.Info("User created successfully",
		zap.String("userID", user.ID),
		zap.Duration("duration", time.Since(start)))
	return user.ID, nil
}

func (dao *UserDAO) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := dao.DB.WithContext(ctx).Take(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, sail_errors.ErrUserNotFound
	}
	if err != nil {
		return nil, sail_errors.ErrDatabaseOperation
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := dao.DB.WithContext(ctx).Take(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, sail_errors.ErrUserNotFound
	}
	if err != nil {
		return nil, sail_errors.ErrDatabaseOperation
	}
	return &user, nil
}

package repository

import (
	"context"
	"errors"

	"garage/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規スタッフ作成
	Create(ctx context.Context, user *model.User) error
	// IDからスタッフを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからスタッフを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//最終ログイン時刻の更新など
	Update(ctx context.Context, user *model.User) error
}

package repository

import (
	"context"
	"errors"
	"fmt"

	appErr "github.com/starwars-blog/api/pkg/errors"
	"gorm.io/gorm"
)

// BaseRepository defines the operations shared by every table. Records are
// never updated in place, so there is no Update.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id uint, dest *T) error
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id uint) error
}

type baseRepository[T any] struct {
	db   *gorm.DB
	name string
}

// NewBaseRepository builds a repository for T; name is used in error messages.
func NewBaseRepository[T any](db *gorm.DB, name string) BaseRepository[T] {
	return &baseRepository[T]{db: db, name: name}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, fmt.Sprintf("create %s failed", r.name))
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id uint, dest *T) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, fmt.Sprintf("%s %d not found", r.name, id))
		}
		return appErr.Wrap(err, appErr.CodeInternal, fmt.Sprintf("get %s failed", r.name))
	}
	return nil
}

func (r *baseRepository[T]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, fmt.Sprintf("list %s failed", r.name))
	}
	return out, nil
}

func (r *baseRepository[T]) Delete(ctx context.Context, id uint) error {
	var t T
	res := r.db.WithContext(ctx).Delete(&t, "id = ?", id)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, fmt.Sprintf("delete %s failed", r.name))
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("%s %d not found", r.name, id))
	}
	return nil
}

// firstWhere loads the first row matching column = value into dest.
func firstWhere[T any](ctx context.Context, db *gorm.DB, name, column string, value any, dest *T) error {
	if err := db.WithContext(ctx).Where(column+" = ?", value).Order("id ASC").First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, fmt.Sprintf("%s not found", name))
		}
		return appErr.Wrap(err, appErr.CodeInternal, fmt.Sprintf("get %s by %s failed", name, column))
	}
	return nil
}

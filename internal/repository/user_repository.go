package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByGmail(ctx context.Context, gmail string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.User, int64, error)
	FindAdmins(ctx context.Context) ([]models.User, error)
	CountAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByGmail(ctx context.Context, gmail string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(gmail) = ?", strings.ToLower(gmail)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *userRepository) List(ctx context.Context, query *ListQuery) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	db := r.db.WithContext(ctx).Model(&models.User{})

	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Where("nama ILIKE ? OR username ILIKE ? OR gmail ILIKE ? OR nim ILIKE ?", term, term, term, term)
	}
	if role := query.Filters["role"]; role != "" {
		db = db.Where("role = ?", role)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if query.SortBy != "" {
		order = query.SortBy
		if strings.ToLower(query.SortDir) == "desc" {
			order += " DESC"
		} else {
			order += " ASC"
		}
	}

	err := db.Order(order).
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) FindAdmins(ctx context.Context) ([]models.User, error) {
	var admins []models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Find(&admins).Error
	return admins, err
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

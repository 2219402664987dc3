package token

import (
	"errors"

	"github.com/Mieluoxxx/Vaultix/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrTokenNotFound Token 不存在
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenNameExists Token 名称已存在
	ErrTokenNameExists = errors.New("token name already exists")
)

// Repository Token 数据访问层
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建 Repository 实例
// db 可以来自 db.InitDatabase，也可以是调用方已打开的句柄
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 创建 Token 及其全部权限记录
// token 行和 rights 行在同一事务中写入，任一失败则整体回滚
func (r *Repository) Create(token *models.Token) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Token{}).Where("name = ?", token.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTokenNameExists
		}
		return tx.Create(token).Error
	})
	// 并发创建同名 Token 时由主键约束兜底
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrTokenNameExists
	}
	return err
}

// FindByName 根据名称查找 Token，带权限列表
func (r *Repository) FindByName(name string) (*models.Token, error) {
	var token models.Token
	err := r.db.Preload("Rights").Where("name = ?", name).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// FindBySecret 根据 secret 查找 Token，带权限列表
func (r *Repository) FindBySecret(secret string) (*models.Token, error) {
	var token models.Token
	err := r.db.Preload("Rights").Where("secret = ?", secret).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// FindAll 查找所有 Token，带权限列表
func (r *Repository) FindAll() ([]*models.Token, error) {
	var tokens []*models.Token
	err := r.db.Preload("Rights").Order("name").Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// DeleteByName 根据名称删除 Token，权限记录由外键级联删除
// 返回是否实际删除了记录，删除不存在的名称不报错
func (r *Repository) DeleteByName(name string) (bool, error) {
	result := r.db.Where("name = ?", name).Delete(&models.Token{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CheckNameExists 检查名称是否存在，不关心过期状态
func (r *Repository) CheckNameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Token{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CheckSecretValid 检查 secret 是否存在且未过期
// expiration 为 0 表示永不过期，否则必须严格大于 now
func (r *Repository) CheckSecretValid(secret string, now int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Token{}).
		Where("secret = ? AND (expiration = 0 OR expiration > ?)", secret, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CheckSecretRight 检查 secret 对应的 Token 是否拥有指定权限
// 只按 secret 和 right 联表，不涉及过期时间
func (r *Repository) CheckSecretRight(secret string, right string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Right{}).
		Joins("JOIN tokens ON tokens.name = rights.name").
		Where(`tokens.secret = ? AND rights."right" = ?`, secret, right).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Mieluoxxx/Vaultix/internal/models"
)

const (
	// SecretPrefix secret 的固定前缀，标识本系统的令牌格式
	SecretPrefix = "auth-"
	// ExpirationNever 过期时间哨兵值，表示永不过期
	ExpirationNever int64 = 0
)

// Service Token 业务逻辑层
type Service struct {
	repo *Repository
}

// NewService 创建 Service 实例
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GenerateSecret 生成新的 secret 值
// 格式: auth- + 32 字节随机数的十六进制编码（64 个字符）
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return SecretPrefix + hex.EncodeToString(bytes), nil
}

// GenerateToken 创建 Token
// name 已存在时返回 ErrTokenNameExists，存储不发生任何变更
// 成功时返回含 secret 的完整记录，secret 仅在此处返回一次
func (s *Service) GenerateToken(name string, rights []string, expiration int64) (*models.Token, error) {
	secret, err := GenerateSecret()
	if err != nil {
		return nil, err
	}

	token := &models.Token{
		Name:       name,
		Expiration: expiration,
		Secret:     secret,
	}

	// 同一 Token 内重复的权限没有意义，去重后写入
	seen := make(map[string]struct{}, len(rights))
	for _, right := range rights {
		if _, ok := seen[right]; ok {
			continue
		}
		seen[right] = struct{}{}
		token.Rights = append(token.Rights, models.Right{Name: name, Right: right})
	}

	if err := s.repo.Create(token); err != nil {
		return nil, err
	}

	return token, nil
}

// HasToken 检查名称对应的 Token 是否存在，不关心过期状态
func (s *Service) HasToken(name string) (bool, error) {
	return s.repo.CheckNameExists(name)
}

// GetToken 根据名称获取 Token 安全视图
// 不存在时返回 ErrTokenNotFound
func (s *Service) GetToken(name string) (*TokenDTO, error) {
	token, err := s.repo.FindByName(name)
	if err != nil {
		return nil, err
	}
	return ToTokenDTO(token), nil
}

// GetOptionalToken 根据名称获取 Token 安全视图
// 不存在时返回 nil 而不是错误，供把缺失当常规情况的调用方使用
func (s *Service) GetOptionalToken(name string) (*TokenDTO, error) {
	token, err := s.repo.FindByName(name)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToTokenDTO(token), nil
}

// DeleteToken 根据名称删除 Token，权限记录级联删除
// 返回是否实际删除了记录，幂等
func (s *Service) DeleteToken(name string) (bool, error) {
	return s.repo.DeleteByName(name)
}

// ListTokens 获取所有 Token 的安全视图列表
func (s *Service) ListTokens() ([]*TokenDTO, error) {
	tokens, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	dtos := make([]*TokenDTO, 0, len(tokens))
	for _, token := range tokens {
		dtos = append(dtos, ToTokenDTO(token))
	}
	return dtos, nil
}

// VerifyTokenValidity 验证 secret 是否有效
// 存在匹配记录且（永不过期，或过期时间严格晚于当前时间）时为 true
// 过期的记录不会被清理，只是验证失败，仍可按名称查询
func (s *Service) VerifyTokenValidity(secret string) (bool, error) {
	return s.repo.CheckSecretValid(secret, time.Now().Unix())
}

// VerifyTokenRight 验证 secret 对应的 Token 是否拥有指定权限
// 注意：不检查过期时间，需要时效校验的调用方必须另行调用 VerifyTokenValidity
func (s *Service) VerifyTokenRight(secret string, right string) (bool, error) {
	return s.repo.CheckSecretRight(secret, right)
}

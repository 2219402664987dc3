package token

import (
	"github.com/Mieluoxxx/Vaultix/internal/models"
)

// TokenDTO Token 安全视图，永不包含 secret
// 所有查询类接口统一返回该视图
type TokenDTO struct {
	Name       string   `json:"name"`
	Expiration int64    `json:"expiration"`
	Rights     []string `json:"rights"`
}

// ToTokenDTO 将 Token 模型转换为安全视图
func ToTokenDTO(token *models.Token) *TokenDTO {
	rights := make([]string, 0, len(token.Rights))
	for _, r := range token.Rights {
		rights = append(rights, r.Right)
	}

	return &TokenDTO{
		Name:       token.Name,
		Expiration: token.Expiration,
		Rights:     rights,
	}
}

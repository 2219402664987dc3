package token_test

import (
	"path/filepath"
	"testing"

	"github.com/Mieluoxxx/Vaultix/internal/config"
	"github.com/Mieluoxxx/Vaultix/internal/db"
	"github.com/Mieluoxxx/Vaultix/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupIntegrationEnv 通过配置和 db 包搭建完整环境
func setupIntegrationEnv(t *testing.T) *token.Service {
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "vaultix.db"))

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	database, err := db.InitDatabase(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDatabase(database) })

	require.NoError(t, db.AutoMigrate(database))

	return token.NewService(token.NewRepository(database))
}

// TestTokenLifecycle 测试完整的 Token 生命周期
func TestTokenLifecycle(t *testing.T) {
	service := setupIntegrationEnv(t)

	// 1. 创建 Token
	t.Log("步骤 1: 创建 Token")
	created, err := service.GenerateToken("svc1", []string{"read", "write"}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, created.Secret)
	assert.Equal(t, int64(0), created.Expiration)

	// 2. 验证有效性与权限
	t.Log("步骤 2: 验证有效性与权限")
	valid, err := service.VerifyTokenValidity(created.Secret)
	require.NoError(t, err)
	assert.True(t, valid, "永不过期的 Token 应始终有效")

	ok, err := service.VerifyTokenRight(created.Secret, "read")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.VerifyTokenRight(created.Secret, "admin")
	require.NoError(t, err)
	assert.False(t, ok, "未授予的权限应验证失败")

	// 3. 列表返回安全视图
	t.Log("步骤 3: 获取 Token 列表")
	tokens, err := service.ListTokens()
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "svc1", tokens[0].Name)
	assert.ElementsMatch(t, []string{"read", "write"}, tokens[0].Rights)

	// 4. 删除后验证全部失败
	t.Log("步骤 4: 删除 Token")
	deleted, err := service.DeleteToken("svc1")
	require.NoError(t, err)
	assert.True(t, deleted)

	valid, err = service.VerifyTokenValidity(created.Secret)
	require.NoError(t, err)
	assert.False(t, valid, "删除后 secret 应失效")

	exists, err := service.HasToken("svc1")
	require.NoError(t, err)
	assert.False(t, exists)
}

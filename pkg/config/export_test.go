package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/MikuPush/pkg/models"
)

func TestExportStripsSensitiveFields(t *testing.T) {
	cfg := &Configuration{Profiles: map[string]models.Profile{"web": webProfile()}}

	data, err := Export(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "s3cret")
	assert.Contains(t, string(data), "example.com")

	// 导出不改动调用方持有的配置
	assert.Equal(t, "s3cret", cfg.Profiles["web"].Identity.Password)
}

func TestImportMergesAndOverwrites(t *testing.T) {
	existing := webProfile()
	cfg := &Configuration{Profiles: map[string]models.Profile{"web": existing, "db": {Address: "10.0.0.5", Port: 22}}}

	incoming := &Configuration{Profiles: map[string]models.Profile{
		"web": {Address: "web02.example.com", Port: 2222, Identity: models.Identity{User: "ops", AuthType: models.AuthKey, KeyPath: "~/.ssh/id_ed25519"}},
		"app": {Address: "app01.example.com", Port: 22},
	}}
	data, err := Export(incoming)
	require.NoError(t, err)

	n, err := Import(cfg, data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// 同名覆盖,未导入的保留
	assert.Len(t, cfg.Profiles, 3)
	assert.Equal(t, "web02.example.com", cfg.Profiles["web"].Address)
	assert.Equal(t, uint16(2222), cfg.Profiles["web"].Port)
	assert.Equal(t, "10.0.0.5", cfg.Profiles["db"].Address)
	assert.Equal(t, "app01.example.com", cfg.Profiles["app"].Address)
}

func TestImportInvalidFile(t *testing.T) {
	cfg := &Configuration{Profiles: map[string]models.Profile{}}
	_, err := Import(cfg, []byte("profiles: [not a map"))
	assert.Error(t, err)
	assert.Empty(t, cfg.Profiles)
}

func TestExportImportRoundTripThroughStore(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Save(&Configuration{Profiles: map[string]models.Profile{"web": webProfile()}}))

	cfg, err := store.Load()
	require.NoError(t, err)
	data, err := Export(cfg)
	require.NoError(t, err)

	// 导出件导入到另一台机器的空配置
	other, _ := newTestStore(t)
	fresh, err := other.Load()
	require.NoError(t, err)
	n, err := Import(fresh, data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, other.Save(fresh))

	loaded, err := other.Load()
	require.NoError(t, err)
	p := loaded.Profiles["web"]
	assert.Equal(t, "example.com", p.Address)
	assert.Equal(t, "/var/www/html", p.RemoteDir)
	// 密码不随导出件迁移
	assert.Empty(t, p.Identity.Password)
}

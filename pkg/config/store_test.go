package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/MikuPush/pkg/crypto"
	"example.com/MikuPush/pkg/models"
)

func newTestStore(t *testing.T) (Store, string) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	store, err := NewDefaultStore(path, filepath.Join(dir, "profiles.key"))
	require.NoError(t, err)
	return store, path
}

func webProfile() models.Profile {
	return models.Profile{
		Alias:   []string{"prod"},
		Address: "example.com",
		Port:    22,
		Identity: models.Identity{
			User:     "deploy",
			AuthType: models.AuthPassword,
			Password: "s3cret",
		},
		RemoteDir: "/var/www/html",
		Extract:   true,
	}
}

func TestSaveLoadEncryptsSensitiveFields(t *testing.T) {
	store, path := newTestStore(t)

	cfg := &Configuration{Profiles: map[string]models.Profile{"web": webProfile()}}
	require.NoError(t, store.Save(cfg))

	// 磁盘上的文件不应出现明文密码
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret")
	assert.Contains(t, string(raw), crypto.Prefix)

	// Save 不应改动调用方持有的明文配置
	assert.Equal(t, "s3cret", cfg.Profiles["web"].Identity.Password)

	loaded, err := store.Load()
	require.NoError(t, err)
	p := loaded.Profiles["web"]
	assert.Equal(t, "s3cret", p.Identity.Password)
	assert.Equal(t, "example.com", p.Address)
	assert.Equal(t, uint16(22), p.Port)
	assert.Equal(t, "/var/www/html", p.RemoteDir)
	assert.True(t, p.Extract)
}

func TestSaveLoadKeyPassphrase(t *testing.T) {
	store, path := newTestStore(t)

	p := webProfile()
	p.Identity = models.Identity{
		User:       "deploy",
		AuthType:   models.AuthKey,
		KeyPath:    "~/.ssh/id_rsa",
		Passphrase: "keypass",
	}
	require.NoError(t, store.Save(&Configuration{Profiles: map[string]models.Profile{"web": p}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "keypass")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "keypass", loaded.Profiles["web"].Identity.Passphrase)
	assert.Equal(t, "~/.ssh/id_rsa", loaded.Profiles["web"].Identity.KeyPath)
}

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	store, _ := newTestStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Profiles)
}

func TestFindByNameAndAlias(t *testing.T) {
	cfg := &Configuration{Profiles: map[string]models.Profile{"web": webProfile()}}

	assert.Equal(t, "web", cfg.Find("web"))
	assert.Equal(t, "web", cfg.Find("prod"))
	assert.Equal(t, "", cfg.Find("staging"))
	assert.Equal(t, "", cfg.Find(""))
}

func TestResolve(t *testing.T) {
	cfg := &Configuration{Profiles: map[string]models.Profile{"web": webProfile()}}

	p, ok := cfg.Resolve("prod")
	require.True(t, ok)
	assert.Equal(t, "example.com", p.Address)

	_, ok = cfg.Resolve("missing")
	assert.False(t, ok)
}

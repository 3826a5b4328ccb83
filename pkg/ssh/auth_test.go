package ssh

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/MikuPush/pkg/models"
)

func TestFromIdentityPassword(t *testing.T) {
	auth, err := FromIdentity(models.Identity{
		User: "deploy", AuthType: models.AuthPassword, Password: "secret",
	})
	require.NoError(t, err)
	assert.IsType(t, &PasswordAuth{}, auth)

	method, err := auth.GetMethod()
	require.NoError(t, err)
	assert.NotNil(t, method)
}

func TestFromIdentityKey(t *testing.T) {
	auth, err := FromIdentity(models.Identity{
		User: "deploy", AuthType: models.AuthKey, KeyPath: "~/.ssh/id_rsa", Passphrase: "pp",
	})
	require.NoError(t, err)
	keyAuth, ok := auth.(*KeyAuth)
	require.True(t, ok)
	assert.Equal(t, "~/.ssh/id_rsa", keyAuth.Path)
	assert.Equal(t, "pp", keyAuth.Passphrase)
}

func TestFromIdentityInvalid(t *testing.T) {
	_, err := FromIdentity(models.Identity{AuthType: models.AuthPassword})
	assert.Error(t, err)

	_, err = FromIdentity(models.Identity{AuthType: models.AuthKey})
	assert.Error(t, err)

	_, err = FromIdentity(models.Identity{AuthType: "agent"})
	assert.Error(t, err)
}

func TestExpandHomeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandHomeDir("~"))
	assert.Equal(t, filepath.Join(home, ".ssh", "id_rsa"), expandHomeDir("~/.ssh/id_rsa"))
	// "~user" 形式不展开
	assert.Equal(t, "~deploy/.ssh/id_rsa", expandHomeDir("~deploy/.ssh/id_rsa"))
	assert.Equal(t, "/etc/key", expandHomeDir("/etc/key"))
	assert.Equal(t, "relative/key", expandHomeDir("relative/key"))
}

func TestKeyAuthMissingFile(t *testing.T) {
	auth := &KeyAuth{Path: filepath.Join(t.TempDir(), "no-such-key")}
	_, err := auth.GetMethod()
	assert.Error(t, err)
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, isAuthError(errors.New("ssh: handshake failed: ssh: unable to authenticate, attempted methods [none password]")))
	assert.True(t, isAuthError(errors.New("ssh: unable to authenticate, no supported methods remain")))
	assert.False(t, isAuthError(errors.New("dial tcp 192.0.2.1:22: i/o timeout")))
}

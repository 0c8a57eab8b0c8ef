package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/auth"
)

func TestTokenCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  baseURL: http://hr.local\njwt:\n  secret: s3cret\n  accessTokenTTLMin: 5\n"), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--config", path, "--uid", "u-42"})
	require.NoError(t, cmd.Execute())

	j := &auth.JWTer{Secret: []byte("s3cret"), Issuer: "rwafi"}
	claims, err := j.Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "u-42", claims.UID)
	assert.True(t, claims.Allows("roles.manage"))
	assert.False(t, claims.Allows("roles.delete"))
}

func TestMigrateCmd_RequiresDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  baseURL: http://hr.local\njwt:\n  secret: s3cret\n"), 0o600))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate", "--config", path})
	assert.ErrorContains(t, cmd.Execute(), "db.driver is empty")
}

package database

import (
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		name, in, user, pass       string
		wantUser, wantPass, wantDB string
	}{
		{"native", "u:p@tcp(db:3306)/hr", "", "", "u", "p", "hr"},
		{"url", "mysql://a:b@db:3306/hr?charset=utf8mb4", "", "", "a", "b", "hr"},
		{"override", "mysql://a:b@db:3306/hr", "audit", "pw", "audit", "pw", "hr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := mysqlDSN(tt.in, tt.user, tt.pass)
			require.NoError(t, err)
			cfg, err := mysqldrv.ParseDSN(dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, cfg.User)
			assert.Equal(t, tt.wantPass, cfg.Passwd)
			assert.Equal(t, "db:3306", cfg.Addr)
			assert.Equal(t, tt.wantDB, cfg.DBName)
			assert.True(t, cfg.ParseTime)
		})
	}

	_, err := mysqlDSN("not a dsn", "", "")
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t, "postgres://audit:pw@db:5432/hr", postgresDSN("postgres://x:y@db:5432/hr", "audit", "pw"))
	assert.Equal(t, "postgres://x:pw@db:5432/hr", postgresDSN("postgres://x@db:5432/hr", "", "pw"))
	assert.Equal(t, "host=db dbname=hr user=audit", postgresDSN("host=db dbname=hr", "audit", ""))
	assert.Equal(t, "host=db", postgresDSN(" host=db ", "", ""))
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "audit:****@tcp(db:3306)/hr", maskDSN("mysql", "audit:pw@tcp(db:3306)/hr"))
	assert.Equal(t, "postgres://audit:xxxxx@db:5432/hr", maskDSN("postgres", "postgres://audit:pw@db:5432/hr"))
	assert.Equal(t, "postgres://audit@db/hr", maskDSN("postgres", "postgres://audit@db/hr"))
	assert.Equal(t, "host=db user=audit password=****", maskDSN("postgres", "host=db user=audit password=secret"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

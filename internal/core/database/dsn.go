package database

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
)

const masked = "****"

// mysqlDSN 接受驱动原生 DSN 或 mysql:// URL，账号密码可由配置覆盖；总是开启 parseTime
func mysqlDSN(raw, user, pass string) (string, error) {
	raw = strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(raw, "mysql://"); ok {
		u, err := url.Parse("mysql://" + rest)
		if err != nil {
			return "", fmt.Errorf("mysql url: %w", err)
		}
		cred := ""
		if u.User != nil {
			cred = u.User.String() + "@"
		}
		raw = fmt.Sprintf("%stcp(%s)%s", cred, u.Host, u.EscapedPath())
		if u.RawQuery != "" {
			raw += "?" + u.RawQuery
		}
	}
	cfg, err := mysqldrv.ParseDSN(raw)
	if err != nil {
		return "", err
	}
	if user != "" {
		cfg.User = user
	}
	if pass != "" {
		cfg.Passwd = pass
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// postgresDSN URL 形式改写 userinfo，key=value 形式追加（后出现的生效）
func postgresDSN(raw, user, pass string) string {
	raw = strings.TrimSpace(raw)
	if user == "" && pass == "" {
		return raw
	}
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		u, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		if user == "" && u.User != nil {
			user = u.User.Username()
		}
		if pass == "" && u.User != nil {
			pass, _ = u.User.Password()
		}
		u.User = url.UserPassword(user, pass)
		return u.String()
	}
	if user != "" {
		raw += " user=" + user
	}
	if pass != "" {
		raw += " password=" + pass
	}
	return strings.TrimSpace(raw)
}

var kvPassword = regexp.MustCompile(`password=\S+`)

// maskDSN 日志里只出现脱敏后的连接串
func maskDSN(driver, dsn string) string {
	switch {
	case driver == "mysql":
		cfg, err := mysqldrv.ParseDSN(dsn)
		if err != nil {
			return masked
		}
		if cfg.Passwd != "" {
			cfg.Passwd = masked
		}
		return cfg.FormatDSN()
	case strings.Contains(dsn, "://"):
		u, err := url.Parse(dsn)
		if err != nil {
			return masked
		}
		return u.Redacted()
	default:
		return kvPassword.ReplaceAllString(dsn, "password="+masked)
	}
}

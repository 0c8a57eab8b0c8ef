package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/auth"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/config"
)

// 本地联调用：按服务配置里的密钥签一个管理端令牌
func newTokenCmd(configPath *string) *cobra.Command {
	var (
		uid   string
		role  string
		perms []string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin JWT signed with the configured secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute
			}
			if len(perms) == 0 && role != auth.RoleAdmin {
				perms = []string{cfg.JWT.Permission}
			}
			j := &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, TTL: ttl}
			tok, err := j.Issue(uid, role, perms...)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "local-admin", "subject user id")
	cmd.Flags().StringVar(&role, "role", "staff", "platform role")
	cmd.Flags().StringSliceVar(&perms, "perm", nil, "permissions (default: the configured admin permission)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: jwt.accessTokenTTLMin)")
	return cmd
}

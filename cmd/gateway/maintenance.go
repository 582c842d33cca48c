package main

import (
	"bufio"
	"fmt"
	"strings"

	pgStorage "secure-acceptance-gateway/internal/adapter/storage/postgres"
	"secure-acceptance-gateway/internal/service"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			pool, err := connectPostgres(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer pool.Close()
			return pgStorage.Migrate(cmd.Context(), pool, log)
		},
	}
}

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Secure Acceptance profile maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "purge-unreadable",
		Short: "Delete profiles whose secret key can not be decrypted with the current key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.maintenance.PurgeUnreadableProfiles(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d unreadable profile(s)\n", n)
			return nil
		},
	})
	return cmd
}

func repliesCmd() *cobra.Command {
	var olderThan string

	cmd := &cobra.Command{
		Use:   "replies",
		Short: "Gateway reply log maintenance",
	}
	scrub := &cobra.Command{
		Use:   "scrub",
		Short: "Erase the stored payload of old gateway replies",
		Example: `  gateway replies scrub --older-than 90d
  gateway replies scrub --older-than 720h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			age, err := service.ParseAge(olderThan)
			if err != nil {
				return err
			}
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.maintenance.ScrubReplies(cmd.Context(), age)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scrubbed %d reply log(s)\n", n)
			return nil
		},
	}
	scrub.Flags().StringVar(&olderThan, "older-than", "", "minimum reply age (e.g. 90d, 2w, 720h); defaults to retention.reply_max_age")
	cmd.AddCommand(scrub)
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the argon2id hash for admin.password_hash",
		Long:  "Print the argon2id hash for admin.password_hash. Without an argument the password is read from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, args)
			if err != nil {
				return err
			}
			hash, err := service.NewArgon2HashService().Hash(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}

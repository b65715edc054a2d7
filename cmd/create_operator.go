package cmd

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

var (
	operatorUsername string
	operatorPassword string
)

var createOperatorCmd = &cobra.Command{
	Use:   "create-operator",
	Short: "Create the operator account or reset its password",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		username := operatorUsername
		if username == "" {
			username = cfg.AdminUsername
		}
		password := operatorPassword
		if password == "" {
			password = cfg.AdminPassword
		}
		if password == "" {
			return errors.New("a password is required, pass --password or set ADMIN_PASSWORD")
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(database)

		auth := services.NewAuthService(repository.NewUserRepository(database), cfg.JWTSecret, cfg.AccessTokenTTL)
		user, err := auth.SetOperatorPassword(cmd.Context(), username, password)
		if err != nil {
			return err
		}

		log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("operator ready")
		return nil
	},
}

func init() {
	createOperatorCmd.Flags().StringVar(&operatorUsername, "username", "", "operator username (defaults to ADMIN_USERNAME)")
	createOperatorCmd.Flags().StringVar(&operatorPassword, "password", "", "operator password (defaults to ADMIN_PASSWORD)")
	rootCmd.AddCommand(createOperatorCmd)
}

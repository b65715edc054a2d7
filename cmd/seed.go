package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/seed"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace members and tasks with generated sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(database)

		res, err := seed.Run(cmd.Context(), database, seedOpts)
		if err != nil {
			return err
		}

		log.Info().
			Int("members", res.Members).
			Int("tasks", res.Tasks).
			Int("logs", res.Logs).
			Msg("sample data created")
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.Members, "members", 10, "number of members to create")
	seedCmd.Flags().IntVar(&seedOpts.Tasks, "tasks", 50, "number of tasks to create")
	seedCmd.Flags().Uint64Var(&seedOpts.Seed, "seed", 0, "random seed, 0 for a random one")
	rootCmd.AddCommand(seedCmd)
}

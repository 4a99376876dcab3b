package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"go-voicings/config"
	"go-voicings/debug"
	"go-voicings/voicing"
)

var (
	debugFlag bool
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "voicings",
	Short: "Guitar chord voicings and progression player",
	Long: `voicings generates drop and shell guitar voicings for chord symbols,
voices jazz progressions with smooth voice leading and plays them back
on a 160 beat grid.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		if debugFlag || os.Getenv(debug.EnvVar) != "" {
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			if err := debug.Enable(dir); err != nil {
				return fmt.Errorf("enable debug log: %w", err)
			}
		}

		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		debug.Log("cmd", "%s %v", cmd.Name(), args)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		debug.Disable()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log to the config directory")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// voicingFlags reads --type and --strings, falling back to the config.
func voicingFlags(cmd *cobra.Command) (voicing.Type, []int, error) {
	name := cfg.Voicing.Type
	if cmd.Flags().Changed("type") {
		name, _ = cmd.Flags().GetString("type")
	}
	t, err := voicing.ParseType(name)
	if err != nil {
		return 0, nil, err
	}

	strs := cfg.Voicing.Strings
	if cmd.Flags().Changed("strings") {
		raw, _ := cmd.Flags().GetString("strings")
		if strs, err = voicing.ParseStrings(raw); err != nil {
			return 0, nil, err
		}
	}
	return t, strs, nil
}

func addVoicingFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "voicing family: drop2, drop3, drop2_4, shell, freddiegreen")
	cmd.Flags().StringP("strings", "s", "", "comma separated string set, 0 is low E")
}

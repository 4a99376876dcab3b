package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"go-voicings/config"
	"go-voicings/progression"
	"go-voicings/sequencer"
)

var progressionCmd = &cobra.Command{
	Use:   "progression <name> <key>",
	Short: "Voice a progression template in a key",
	Long: `Voice a progression template in a key and print the chosen voicings.

Templates: ` + strings.Join(progression.Names(), ", "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, strs, err := voicingFlags(cmd)
		if err != nil {
			return err
		}
		strict := cfg.Voicing.Strict
		if cmd.Flags().Changed("strict") {
			strict, _ = cmd.Flags().GetBool("strict")
		}

		res, err := progression.Generate(args[0], args[1], t, strs, progression.Options{Strict: strict})
		if err != nil {
			return err
		}

		for i, c := range res.Chords {
			v := res.Voicings[i]
			if v == nil {
				fmt.Printf("%3d  %-8s rest\n", c.Start+1, c.Symbol)
				continue
			}
			fmt.Printf("%3d  %-8s %-16s %s\n", c.Start+1, c.Symbol, v.Name, describe(v))
		}
		if len(res.Skipped) > 0 {
			fmt.Printf("no %s voicing for: %s\n", t.Label(), strings.Join(res.Skipped, ", "))
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := sequencer.WriteSequence(out, res.Sequence); err != nil {
				return err
			}
			fmt.Println("wrote", out)
		}
		if project, _ := cmd.Flags().GetString("project"); project != "" {
			store, err := projectStore()
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%s_in_%s", args[0], args[1])
			filename, err := store.Save(project, name, res.Sequence)
			if err != nil {
				return err
			}
			fmt.Println("saved", filepath.Join(store.ProjectDir(project), filename))
		}
		return nil
	},
}

func init() {
	addVoicingFlags(progressionCmd)
	progressionCmd.Flags().Bool("strict", false, "fail instead of resting when a chord cannot be voiced")
	progressionCmd.Flags().StringP("out", "o", "", "write the sequence as JSON to this file")
	progressionCmd.Flags().StringP("project", "p", "", "also save the sequence into this project")
	rootCmd.AddCommand(progressionCmd)
}

func projectStore() (*sequencer.Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return sequencer.NewStore(filepath.Join(dir, "projects")), nil
}

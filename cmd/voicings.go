package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-voicings/progression"
	"go-voicings/theme"
	"go-voicings/voicing"
	"go-voicings/widgets"
)

var voicingsCmd = &cobra.Command{
	Use:   "voicings <chord>",
	Short: "List voicings for a chord symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, strs, err := voicingFlags(cmd)
		if err != nil {
			return err
		}
		vs, err := progression.Candidates(args[0], t, strs)
		if err != nil {
			return err
		}
		if len(vs) == 0 {
			fmt.Printf("no %s voicings for %s\n", t.Label(), args[0])
			return nil
		}

		diagrams, _ := cmd.Flags().GetBool("diagrams")
		sym := theme.New(theme.Default()).Symbols
		for i := range vs {
			v := &vs[i]
			fmt.Printf("%-16s %s\n", v.Name, describe(v))
			if diagrams {
				fmt.Println(widgets.RenderFretboard(v, sym))
			}
		}
		return nil
	},
}

func init() {
	addVoicingFlags(voicingsCmd)
	voicingsCmd.Flags().BoolP("diagrams", "d", false, "draw a fretboard diagram for each voicing")
	rootCmd.AddCommand(voicingsCmd)
}

// describe renders "str:fret note(label)" for each position, low string first.
func describe(v *voicing.Voicing) string {
	parts := make([]string, 0, len(v.Positions))
	for _, p := range v.SortedPositions() {
		s := fmt.Sprintf("%d:%d %s", p.String, p.Fret, p.Note)
		if l, ok := v.Intervals[p.Note]; ok {
			s += "(" + l + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "  ")
}

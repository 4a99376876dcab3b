package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-voicings/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI output ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()

		fmt.Println("(waiting up to 3 seconds...)")
		names, err := midi.OutPorts()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("  (none)")
			return nil
		}
		for i, n := range names {
			fmt.Printf("  [%d] %s\n", i, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects [project]",
	Short: "List projects, or the saves of one project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := projectStore()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			names, err := store.ListProjects()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		}

		saves, err := store.ListSaves(args[0])
		if err != nil {
			return err
		}
		for _, s := range saves {
			fmt.Printf("%s  %-20s %s\n", s.Timestamp.Format("2006-01-02 15:04:05"), s.Name, s.Filename)
		}
		return nil
	},
}

var projectNewCmd = &cobra.Command{
	Use:   "new <project>",
	Short: "Create an empty project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := projectStore()
		if err != nil {
			return err
		}
		return store.CreateProject(args[0])
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <project> [save]",
	Short: "Delete a project or one of its saves",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := projectStore()
		if err != nil {
			return err
		}
		if len(args) == 2 {
			return store.DeleteSave(args[0], args[1])
		}
		return store.DeleteProject(args[0])
	},
}

var projectMvCmd = &cobra.Command{
	Use:   "mv <project> [save] <new name>",
	Short: "Rename a project or one of its saves",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := projectStore()
		if err != nil {
			return err
		}
		if len(args) == 3 {
			filename, err := store.RenameSave(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Println(filename)
			return nil
		}
		return store.RenameProject(args[0], args[1])
	},
}

func init() {
	projectsCmd.AddCommand(projectNewCmd, projectRmCmd, projectMvCmd)
	rootCmd.AddCommand(projectsCmd)
}

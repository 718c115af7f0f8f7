package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresentationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presentation",
		Short: "Manage registered presentations",
	}

	cmd.AddCommand(newPresentationNewCommand())
	cmd.AddCommand(newPresentationListCommand())

	return cmd
}

func newPresentationNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Register a new presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.CreatePresentation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created presentation %q (%s)\n", p.Name, p.ID)
			return nil
		},
	}
}

func newPresentationListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered presentations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			all, err := s.ListPresentations(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No presentations registered.")
				return nil
			}
			for _, p := range all {
				fmt.Printf("%s  %s  %s\n", p.ID, p.CreatedAt.Format("2006-01-02"), p.Name)
			}
			return nil
		},
	}
}

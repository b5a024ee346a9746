package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matrukan/tricog/internal/app/ds"
	"github.com/matrukan/tricog/internal/app/matcher"
	"github.com/matrukan/tricog/internal/app/repository"
	"github.com/matrukan/tricog/internal/app/seed"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all symptom rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			rules, err := repo.ListRules(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range rules {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d questions)\n", r.Symptom, len(r.FollowUpQuestions))
			}
			return nil
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get <symptom>",
	Short: "Show the follow-up questions of one symptom",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			rule, err := repo.GetRule(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("unknown symptom %q", args[0])
			}
			if err != nil {
				return err
			}
			printRule(cmd, rule)
			return nil
		})
	},
}

var mapCmd = &cobra.Command{
	Use:   "map <text>",
	Short: "Map free text onto the stored symptom keys",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			known, err := repo.Symptoms(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range matcher.Match(strings.Join(args, " "), known) {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <rules.yaml>",
	Short: "Insert rules from a YAML file, keeping existing ones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := seed.LoadFile(args[0])
		if err != nil {
			return err
		}
		return withRepository(func(repo *repository.Repository) error {
			n, err := repo.Seed(cmd.Context(), rules)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d rules\n", n, len(rules))
			return nil
		})
	},
}

var putQuestions []string

var putCmd = &cobra.Command{
	Use:   "put <symptom>",
	Short: "Create or replace a rule",
	Long:  "Create or replace a rule. Questions are stored in the order the --question flags are given.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			rule, err := repo.SaveRule(cmd.Context(), ds.NewSymptomRule(args[0], putQuestions...))
			if err != nil {
				return err
			}
			printRule(cmd, rule)
			return nil
		})
	},
}

func init() {
	putCmd.Flags().StringArrayVarP(&putQuestions, "question", "q", nil, "follow-up question (repeatable)")
}

func printRule(cmd *cobra.Command, rule ds.SymptomRule) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, rule.Symptom)
	for i, q := range rule.FollowUpQuestions {
		fmt.Fprintf(out, "  %d. %s\n", i+1, q)
	}
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1SadFox/psyco/internal/domain"
	"github.com/1SadFox/psyco/internal/service"
)

var errAborted = errors.New("assessment aborted")

func testCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Browse and take self-assessment questionnaires",
	}
	cmd.AddCommand(testListCmd())
	cmd.AddCommand(testTakeCmd())
	return cmd
}

func testListCmd() *cobra.Command {
	var (
		category string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available questionnaires",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := newEngine(newLogger()).Catalog()
			items := catalog.List(service.CatalogFilter{Category: category, Search: search})
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No questionnaires match.")
				return nil
			}
			for _, q := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-11s %2d questions, %s\n  %s\n",
					q.ID, q.Category, q.QuestionCount, q.EstimatedDuration, q.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().StringVarP(&search, "search", "q", "", "search title and description")
	return cmd
}

func testTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <id>",
		Short: "Take a questionnaire interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			session, err := newEngine(logger).LoadQuestionnaire(args[0])
			if err != nil {
				return err
			}
			err = runAssessment(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), session)
			if errors.Is(err, errAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "\nAssessment abandoned, nothing was saved.")
				return nil
			}
			return err
		},
	}
}

// runAssessment conduce la sesion por consola: numero de opcion para responder,
// "b" para volver, "q" para salir. Enter conserva la respuesta previa.
func runAssessment(reader *bufio.Reader, out io.Writer, session *service.AssessmentSession) error {
	q := session.Questionnaire()
	fmt.Fprintf(out, "===== %s =====\n", q.Title)
	fmt.Fprintln(out, q.Description)
	fmt.Fprintf(out, "%d questions, about %s.\n", len(q.Questions), q.EstimatedDuration)
	fmt.Fprint(out, "Press Enter to start (q to quit): ")
	input, err := readLine(reader)
	if err != nil {
		return err
	}
	if strings.EqualFold(input, "q") {
		return errAborted
	}
	if err := session.Start(); err != nil {
		return err
	}

	for session.Phase() == domain.PhaseInProgress {
		question, _ := session.CurrentQuestion()
		progress := session.Progress()
		fmt.Fprintf(out, "\n[%d/%d] %s\n", progress.Current, progress.Total, question.Prompt)
		for i, opt := range question.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Label)
		}
		prev, answered := session.Answer(question.ID)
		if answered {
			fmt.Fprintf(out, "Current answer: %s\n", optionLabel(question, prev))
		}
		fmt.Fprint(out, "> ")

		input, err := readLine(reader)
		if err != nil {
			return err
		}
		switch {
		case strings.EqualFold(input, "q"):
			return errAborted
		case strings.EqualFold(input, "b"):
			_ = session.Previous()
			continue
		case input == "" && answered:
		default:
			idx, convErr := strconv.Atoi(input)
			if convErr != nil || idx < 1 || idx > len(question.Options) {
				fmt.Fprintf(out, "Choose 1-%d, b to go back or q to quit.\n", len(question.Options))
				continue
			}
			if err := session.SelectAnswer(question.ID, question.Options[idx-1].Value); err != nil {
				return err
			}
		}

		if err := session.Next(); err != nil {
			if errors.Is(err, service.ErrIncompleteAnswer) {
				fmt.Fprintln(out, "Please choose an answer first.")
				continue
			}
			return err
		}
	}

	result, err := session.Result()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n===== Result =====")
	fmt.Fprintf(out, "Score: %d\n", result.Score)
	fmt.Fprintf(out, "Interpretation: %s\n", result.Label)
	if len(result.Recommendations) > 0 {
		fmt.Fprintln(out, "Recommendations:")
		for _, r := range result.Recommendations {
			fmt.Fprintf(out, "  - %s\n", r)
		}
	}
	fmt.Fprintln(out, "\nThis is a screening tool, not a diagnosis.")
	return nil
}

func optionLabel(q domain.Question, value int) string {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return strconv.Itoa(value)
}

// readLine trata EOF sin texto como abandono.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", errAborted
		}
		if !errors.Is(err, io.EOF) {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}

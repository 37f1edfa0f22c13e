package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/1SadFox/psyco/internal/domain"
	"github.com/1SadFox/psyco/internal/service"
)

func moodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Record and review daily mood entries",
	}
	cmd.AddCommand(moodAddCmd())
	cmd.AddCommand(moodShowCmd())
	cmd.AddCommand(moodListCmd())
	cmd.AddCommand(moodCalendarCmd())
	return cmd
}

func moodAddCmd() *cobra.Command {
	var (
		date     string
		mood     int
		symptoms []string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save the mood for a day, replacing any earlier entry for that day",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			day := a.policy.Today()
			if date != "" {
				if day, err = domain.ParseEntryDate(date, a.loc); err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
				}
			}
			if err := a.policy.Check(day); err != nil {
				return err
			}

			list := make([]domain.Symptom, 0, len(symptoms))
			for _, s := range symptoms {
				list = append(list, domain.Symptom(s))
			}
			entry, err := a.journal.SaveMoodEntry(domain.MoodEntry{
				Date:     day,
				Mood:     domain.Mood(mood),
				Symptoms: list,
				Notes:    notes,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", entry.Key())
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day of the entry (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&mood, "mood", "m", 0, "mood from 1 (terrible) to 5 (great)")
	cmd.Flags().StringSliceVarP(&symptoms, "symptom", "s", nil, "symptom, repeatable ("+symptomList()+")")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

func moodShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show the entry for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			day := a.policy.Today()
			if len(args) == 1 {
				if day, err = domain.ParseEntryDate(args[0], a.loc); err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
				}
			}
			entry, ok := a.journal.GetMoodEntryByDate(day)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry for %s\n", domain.DateKey(day))
				return nil
			}
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
}

func moodListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			entries := a.journal.GetAllMoodEntries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries yet.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %d %-8s  %s\n",
					e.Key(), e.Mood, e.Mood.Label(), truncate(e.Notes, 50))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum entries to show")
	return cmd
}

func moodCalendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [year month]",
		Short: "Show a month grid with the mood of each day",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			today := a.policy.Today()
			year, month := today.Year(), int(today.Month())
			switch len(args) {
			case 1:
				return fmt.Errorf("calendar needs both year and month")
			case 2:
				if year, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				if month, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid month %q", args[1])
				}
			}

			days, err := a.journal.MonthView(year, time.Month(month), a.policy)
			if err != nil {
				return err
			}
			renderCalendar(cmd.OutOrStdout(), year, time.Month(month), a.loc, days)
			return nil
		},
	}
}

func printEntry(w io.Writer, e domain.MoodEntry) {
	fmt.Fprintf(w, "Date:     %s\n", e.Key())
	fmt.Fprintf(w, "Mood:     %d (%s)\n", e.Mood, e.Mood.Label())
	if len(e.Symptoms) > 0 {
		names := make([]string, 0, len(e.Symptoms))
		for _, s := range e.Symptoms {
			names = append(names, string(s))
		}
		fmt.Fprintf(w, "Symptoms: %s\n", strings.Join(names, ", "))
	}
	if e.Notes != "" {
		fmt.Fprintf(w, "Notes:    %s\n", e.Notes)
	}
}

// renderCalendar imprime una grilla lunes-domingo; cada dia lleva el animo o un marcador.
func renderCalendar(w io.Writer, year int, month time.Month, loc *time.Location, days []service.CalendarDay) {
	fmt.Fprintf(w, "%s %d\n", month, year)
	fmt.Fprintln(w, " Mo   Tu   We   Th   Fr   Sa   Su")

	offset := (int(time.Date(year, month, 1, 0, 0, 0, 0, loc).Weekday()) + 6) % 7
	fmt.Fprint(w, strings.Repeat("     ", offset))
	col := offset
	for i, d := range days {
		fmt.Fprintf(w, "%2d%-3s", i+1, bandMarker(d))
		col++
		if col == 7 && i < len(days)-1 {
			fmt.Fprintln(w)
			col = 0
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "legend: 1-5 mood, . empty, ~ future")
}

func bandMarker(d service.CalendarDay) string {
	switch {
	case d.HasEntry:
		return ":" + bandDigit(d.Band)
	case d.Future:
		return " ~"
	default:
		return " ."
	}
}

func bandDigit(band string) string {
	switch band {
	case domain.MoodBandCritical:
		return "1"
	case domain.MoodBandLow:
		return "2"
	case domain.MoodBandNeutral:
		return "3"
	case domain.MoodBandGood:
		return "4"
	case domain.MoodBandGreat:
		return "5"
	default:
		return "?"
	}
}

func symptomList() string {
	names := make([]string, 0, len(domain.DefaultSymptoms()))
	for _, s := range domain.DefaultSymptoms() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

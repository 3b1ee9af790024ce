package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/lotsize/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query past calculations",
	Long: `Query and display recorded calculations from the SQLite journal.

Subcommands:
  show   - Details of one calculation by ID
  today  - Calculations made today
  day    - Calculations made on a specific day

Examples:
  lotsize journal show <id>
  lotsize journal today
  lotsize journal day 2024-01-15`,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Details of one calculation",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List calculations made today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List calculations made on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default journal.db_path from config)")
}

func openSQLiteJournal() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Journal.DBPath
	}
	if path == "" {
		path = "./lotsize.sqlite"
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openSQLiteJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	e, err := j.Get(args[0])
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatEntryOrg(e))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listDay(cmd, time.Now().In(time.Local).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, args[0])
}

func listDay(cmd *cobra.Command, day string) error {
	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := openSQLiteJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.ListBetween(start, end)
	if err != nil {
		return fmt.Errorf("query entries: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatEntriesOrg(entries))
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}

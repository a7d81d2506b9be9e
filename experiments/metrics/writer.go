package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type GameRecord struct {
	ID            int
	Seed          uint64
	Profiles      []string // Profile name per seat, in seat order
	WinnerProfile string
	GameMetric
}

type ProfileSummary struct {
	Profile string
	Seats   int
	Wins    int
	WinRate float64
}

type Writer struct {
	baseDir string
}

// NewWriter creates baseDir if needed. Every file it writes is replaced.
func NewWriter(baseDir string) (*Writer, error) {
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "seed", "profiles", "winner", "winner_profile", "reason", "turns", "moves", "purchases", "builds", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			strings.Join(record.Profiles, "|"),
			record.Winner,
			record.WinnerProfile,
			string(record.Reason),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Purchases),
			strconv.Itoa(record.Builds),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteProfileSummary(summaries []ProfileSummary) error {
	header := []string{"profile", "seats", "wins", "win_rate"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Profile,
			strconv.Itoa(s.Seats),
			strconv.Itoa(s.Wins),
			strconv.FormatFloat(s.WinRate, 'f', 4, 64),
		})
	}
	return w.write("profile_summary.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

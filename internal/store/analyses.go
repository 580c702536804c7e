package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Record is one completed analysis. ResultJSON is the verbatim dump of the
// backend response, so re-exporting from history loses nothing.
type Record struct {
	ID          int64
	RepoURL     string
	IssueNumber int
	RequestedAt time.Time
	ResultJSON  string
}

func (s *Store) SaveAnalysis(repoURL string, issueNumber int, resultJSON string) error {
	if repoURL == "" {
		return fmt.Errorf("repoURL is required")
	}
	if resultJSON == "" {
		return fmt.Errorf("resultJSON is required")
	}
	_, err := s.db.Exec(`
		INSERT INTO analyses (repo_url, issue_number, requested_at, result_json)
		VALUES (?, ?, datetime('now'), ?)
	`, repoURL, issueNumber, resultJSON)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

func (s *Store) ListAnalyses(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, repo_url, issue_number, requested_at, result_json
		FROM analyses
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, nil
}

func (s *Store) LastAnalysis() (Record, error) {
	row := s.db.QueryRow(`
		SELECT id, repo_url, issue_number, requested_at, result_json
		FROM analyses
		ORDER BY id DESC
		LIMIT 1
	`)
	return scanAnalysis(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Record, error) {
	var record Record
	var requestedAtStr string
	if err := row.Scan(&record.ID, &record.RepoURL, &record.IssueNumber, &requestedAtStr, &record.ResultJSON); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("failed to read analysis: %w", err)
	}
	parsed, err := time.Parse("2006-01-02 15:04:05", requestedAtStr)
	if err == nil {
		record.RequestedAt = parsed
	}
	return record, nil
}

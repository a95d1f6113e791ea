package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("storage: solve not found")

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Solve is one recorded solve attempt.
type Solve struct {
	SolveID   string
	CreatedAt time.Time
	Facelets  string
	Status    string
	Solution  string
	Length    int
	MaxDepth  int
	Nodes     uint64
	ElapsedMs int64
	Source    string
}

// SolveRepository stores and queries solve attempts.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create inserts s with a fresh id and returns the id. CreatedAt defaults to
// now.
func (r *SolveRepository) Create(s Solve) (string, error) {
	id := uuid.New().String()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.Source == "" {
		s.Source = "cli"
	}

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, created_at, facelets, status, solution, length, max_depth, nodes, elapsed_ms, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, s.CreatedAt.UTC().Format(timeLayout), s.Facelets, s.Status, s.Solution,
		s.Length, s.MaxDepth, int64(s.Nodes), s.ElapsedMs, s.Source)
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}
	return id, nil
}

const solveColumns = `solve_id, created_at, facelets, status, solution, length, max_depth, nodes, elapsed_ms, source`

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (Solve, error) {
	var (
		s         Solve
		createdAt string
		nodes     int64
	)
	err := row.Scan(&s.SolveID, &createdAt, &s.Facelets, &s.Status, &s.Solution,
		&s.Length, &s.MaxDepth, &nodes, &s.ElapsedMs, &s.Source)
	if err != nil {
		return Solve{}, err
	}
	s.Nodes = uint64(nodes)
	s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return s, nil
}

// Get retrieves a solve by id.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID)
	s, err := scanSolve(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, solveID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return &s, nil
}

// List returns the most recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT `+solveColumns+` FROM solves
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	return solves, nil
}

// FindSolution returns the shortest recorded solution for facelets whose
// length fits within maxDepth, or nil when there is none.
func (r *SolveRepository) FindSolution(facelets string, maxDepth int) (*Solve, error) {
	row := r.db.QueryRow(`
		SELECT `+solveColumns+` FROM solves
		WHERE facelets = ? AND status = 'solved' AND length <= ?
		ORDER BY length ASC, created_at ASC
		LIMIT 1
	`, facelets, maxDepth)
	s, err := scanSolve(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find solution: %w", err)
	}
	return &s, nil
}

// Count returns the number of recorded solves.
func (r *SolveRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM solves").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return n, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"mbti-service/internal/domain"
)

// ResultArchive appends scored results to the results table.
type ResultArchive struct {
	pool *pgxpool.Pool
}

func NewResultArchive(pool *pgxpool.Pool) *ResultArchive {
	return &ResultArchive{pool: pool}
}

func (a *ResultArchive) Archive(ctx context.Context, sessionID string, record domain.ResultRecord) error {
	tally, err := json.Marshal(record.Tally)
	if err != nil {
		return fmt.Errorf("marshal tally: %w", err)
	}
	answers, err := json.Marshal(record.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = a.pool.Exec(ctx,
		`INSERT INTO results (session_id, type_code, tally, answers, scored_at) VALUES ($1, $2, $3, $4, $5)`,
		sessionID, string(record.TypeCode), tally, answers, record.ScoredAt,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (a *ResultArchive) TypeCounts(ctx context.Context) ([]domain.TypeCount, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT type_code, COUNT(*) FROM results GROUP BY type_code ORDER BY COUNT(*) DESC, type_code`,
	)
	if err != nil {
		return nil, fmt.Errorf("query type counts: %w", err)
	}
	defer rows.Close()

	var counts []domain.TypeCount
	for rows.Next() {
		var (
			code  string
			count int64
		)
		if err := rows.Scan(&code, &count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		counts = append(counts, domain.TypeCount{TypeCode: domain.TypeCode(code), Count: int(count)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read type counts: %w", err)
	}
	return counts, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/spiread/ent/schema"
	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/session"
)

var (
	runsTable     = schema.Table(schema.GameRun{})
	progressTable = schema.Table(schema.GameProgress{})
	runColumns    = schema.Columns(schema.GameRun{})
)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// SaveRun implements session.PersistenceGateway.
func (s *Store) SaveRun(ctx context.Context, r session.Results) error {
	return s.RunRepo().Save(ctx, r)
}

type runRepo struct {
	drv *entsql.Driver
}

func (r *runRepo) Save(ctx context.Context, res session.Results) error {
	if res.RunID == "" {
		return fmt.Errorf("save run: empty run id")
	}
	stats, err := json.Marshal(res.AdaptiveStats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	var score any
	if res.Score != nil {
		score = int64(*res.Score)
	}
	q, args := builder().Insert(runsTable).
		Columns(runColumns...).
		Values(
			res.RunID, string(res.GameID),
			res.StartedAt.UnixMilli(), res.EndedAt.UnixMilli(),
			res.DurationMs, res.PausedMs,
			res.StartLevel, res.FinalLevel, score, string(res.EndReason),
			boolInt(res.Valid), res.Pauses, res.AutoPauses, string(stats),
		).Query()
	if err := tx.Exec(ctx, q, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("save run: %w", err)
	}

	prev, found, err := getProgress(ctx, tx, res.GameID)
	if err != nil {
		tx.Rollback()
		return err
	}
	next := foldRun(prev, found, res)

	var best any
	if next.BestScore != nil {
		best = int64(*next.BestScore)
	}
	q, args = builder().Insert(progressTable).
		Columns(progressColumns...).
		Values(string(next.Game), next.LastLevel, best, next.TotalRuns, next.ValidRuns, next.TotalTrials, next.UpdatedAt.UnixMilli()).
		OnConflict(entsql.ConflictColumns("game"), entsql.ResolveWithNewValues()).
		Query()
	if err := tx.Exec(ctx, q, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("update progress: %w", err)
	}

	return tx.Commit()
}

// foldRun applies a completed run to the previous progress record. The
// level always carries forward; the best score only counts valid runs.
func foldRun(prev Progress, found bool, res session.Results) Progress {
	next := prev
	if !found {
		next = Progress{Game: res.GameID}
	}
	next.LastLevel = res.FinalLevel
	next.TotalRuns++
	next.TotalTrials += res.AdaptiveStats.TotalTrials
	next.UpdatedAt = res.EndedAt
	if res.Valid {
		next.ValidRuns++
		if res.Score != nil && (next.BestScore == nil || *res.Score > *next.BestScore) {
			best := *res.Score
			next.BestScore = &best
		}
	}
	return next
}

func (r *runRepo) List(ctx context.Context, rq RunQuery) ([]session.Results, error) {
	b := builder()
	sel := b.Select(runColumns...).From(b.Table(runsTable))
	if rq.Game != "" {
		sel.Where(entsql.EQ("game", string(rq.Game)))
	}
	if !rq.From.IsZero() {
		sel.Where(entsql.GTE("started_at", rq.From.UnixMilli()))
	}
	if !rq.To.IsZero() {
		sel.Where(entsql.LTE("started_at", rq.To.UnixMilli()))
	}
	if rq.ValidOnly {
		sel.Where(entsql.EQ("valid", 1))
	}
	sel.OrderBy(entsql.Desc("started_at"))
	if rq.Limit > 0 {
		sel.Limit(rq.Limit)
	}

	q, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []session.Results
	for rows.Next() {
		res, err := scanRun(&rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *runRepo) Get(ctx context.Context, id string) (*session.Results, error) {
	b := builder()
	q, args := b.Select(runColumns...).
		From(b.Table(runsTable)).
		Where(entsql.EQ("id", id)).
		Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	res, err := scanRun(&rows)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanRun(rows *entsql.Rows) (session.Results, error) {
	var (
		res                session.Results
		game, reason, raw  string
		startedAt, endedAt int64
		score              sql.NullInt64
		valid              int64
	)
	err := rows.Scan(
		&res.RunID, &game, &startedAt, &endedAt, &res.DurationMs, &res.PausedMs,
		&res.StartLevel, &res.FinalLevel, &score, &reason, &valid,
		&res.Pauses, &res.AutoPauses, &raw,
	)
	if err != nil {
		return res, fmt.Errorf("scan run: %w", err)
	}
	res.GameID = games.ID(game)
	res.StartedAt = time.UnixMilli(startedAt)
	res.EndedAt = time.UnixMilli(endedAt)
	res.EndReason = session.EndReason(reason)
	res.Valid = valid != 0
	if score.Valid {
		v := int(score.Int64)
		res.Score = &v
	}

	var stats difficulty.Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return res, fmt.Errorf("unmarshal stats: %w", err)
	}
	res.AdaptiveStats = stats
	return res, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendActivity(ctx context.Context, data ActivityEventData) error {
	err := r.insert(ctx, activityTable,
		[]string{"action", "user_id", "success", "detail"},
		[]any{data.Action, data.UserID, data.Success, data.Detail},
	)
	if err != nil {
		return fmt.Errorf("save activity event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryActivity(ctx context.Context, userID string, opts QueryOpts) ([]ActivityEvent, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("id", "sequence", "timestamp", "action", "user_id", "success", "detail").
		From(b.Table(activityTable)).
		OrderBy(entsql.Desc("sequence"))

	preds := queryPredicates(opts)
	if userID != "" {
		preds = append(preds, entsql.EQ("user_id", userID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var events []ActivityEvent
	for rows.Next() {
		var e ActivityEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Action, &e.UserID, &e.Success, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

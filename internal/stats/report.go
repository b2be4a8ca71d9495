package stats

import (
	"context"

	"github.com/verte-zerg/rounds/internal/model"
	"github.com/verte-zerg/rounds/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Sessions []model.SessionRecord
	Summary  model.HistorySummary
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Sessions: sessions,
		Summary:  Summarize(sessions),
	}, nil
}

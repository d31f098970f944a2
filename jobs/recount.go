// Package jobs holds the background cron work: cache refreshes that are
// deliberately not maintained transactionally.
package jobs

import (
	"github.com/avisser/personal-site-backend/database"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// recountSchedule runs at the top of every hour.
const recountSchedule = "0 * * * *"

// StartRecountCron refreshes the cached postCount on categories and tags
// hourly, and once immediately at startup. Returns the scheduler so the
// caller can Stop it on shutdown.
func StartRecountCron(db database.Database) *cron.Cron {
	logger := log.With().Str("job", "recount").Logger()

	recount := func() {
		if err := db.BlogCategoryRepo().RecomputePostCounts(); err != nil {
			logger.Error().Err(err).Msg("failed to recompute category post counts")
		}
		if err := db.BlogTagRepo().RecomputePostCounts(); err != nil {
			logger.Error().Err(err).Msg("failed to recompute tag post counts")
		}
		logger.Info().Msg("post counts recomputed")
	}

	go recount()

	c := cron.New()
	if _, err := c.AddFunc(recountSchedule, recount); err != nil {
		logger.Error().Err(err).Msg("failed to schedule recount job")
		return c
	}
	c.Start()
	return c
}

// Package policy loads the civic policy corpus and retrieves the excerpt
// most relevant to a report, using token-set similarity. No network, no
// model: retrieval quality degrades gracefully instead of failing.
package policy

import (
	"encoding/json"
	"os"

	"github.com/civicgrid/triage/internal/domain"
	"github.com/civicgrid/triage/internal/logger"
)

// LoadCorpus reads the policy corpus from a JSON array of
// {title, text, source} objects, preserving file order. A missing or
// unreadable file yields an empty corpus and a log entry, never an error:
// a service with no policy excerpts is degraded, not broken. Entries that
// fail to decode are skipped individually so one bad record cannot take
// the whole corpus down.
func LoadCorpus(path string, log logger.Logger) []domain.Policy {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("civic policy corpus not readable, retrieval disabled",
			logger.String("path", path),
			logger.Error(err))
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Error("civic policy corpus is not a JSON array, retrieval disabled",
			logger.String("path", path),
			logger.Error(err))
		return nil
	}

	policies := make([]domain.Policy, 0, len(raw))
	for i, entry := range raw {
		var p domain.Policy
		if err := json.Unmarshal(entry, &p); err != nil {
			log.Warn("skipping malformed policy entry",
				logger.String("path", path),
				logger.Int("index", i),
				logger.Error(err))
			continue
		}
		policies = append(policies, p)
	}

	log.Info("civic policy corpus loaded",
		logger.String("path", path),
		logger.Int("policies", len(policies)))
	return policies
}

package sync

import (
	"context"

	"dotatracker/syncer/data/steam"
)

// reconcileTeams resolves every distinct team id observed in the batch to its
// display name and bulk updates the denormalized match columns. Entirely best
// effort: a failed lookup leaves the name null and never aborts the sync.
func (s *Service) reconcileTeams(ctx context.Context, matches []steam.HistoryMatch) {
	teamIds := distinctTeamIds(matches)
	if len(teamIds) == 0 {
		return
	}

	s.logInfof("Reconciling %d distinct teams", len(teamIds))

	// Sequential with a fixed delay per lookup, same rate limit policy as
	// the match fetches.
	names := make(map[int64]string, len(teamIds))
	for i, teamId := range teamIds {
		info, err := s.teams.GetTeamInfo(ctx, teamId)
		if err != nil {
			s.logWarnf("Couldn't resolve team %d: %v", teamId, err)
		} else if info != nil {
			names[teamId] = info.Name
		}

		if i < len(teamIds)-1 {
			s.sleep(teamLookupDelay)
		}
	}

	for _, match := range matches {
		if match.RadiantTeamId == nil && match.DireTeamId == nil {
			continue
		}

		radiantName := lookupName(names, match.RadiantTeamId)
		direName := lookupName(names, match.DireTeamId)

		err := s.MatchRepository.SetTeams(match.MatchId, match.RadiantTeamId, radiantName, match.DireTeamId, direName)
		if err != nil {
			s.logWarnf("Couldn't update the teams of match %d: %v", match.MatchId, err)
		}
	}
}

// distinctTeamIds collects the unique team ids of the batch, in first seen order.
func distinctTeamIds(matches []steam.HistoryMatch) []int64 {
	seen := make(map[int64]bool)
	var ids []int64

	for _, match := range matches {
		for _, teamId := range []*int64{match.RadiantTeamId, match.DireTeamId} {
			if teamId == nil || seen[*teamId] {
				continue
			}
			seen[*teamId] = true
			ids = append(ids, *teamId)
		}
	}

	return ids
}

func lookupName(names map[int64]string, teamId *int64) *string {
	if teamId == nil {
		return nil
	}

	name, exists := names[*teamId]
	if !exists {
		return nil
	}

	return &name
}

// Package achievements derives rule based achievement facts from a fully
// parsed match. Detection is a pure function of the match context, the only
// side effect is the caller's replace-all persistence.
package achievements

import (
	"encoding/json"

	"dotatracker/pkg/database/models"

	"gorm.io/datatypes"
)

// Detect evaluates the fixed rule set over the match context and returns the
// resulting fact set. Deterministic, every matching rule fires.
func Detect(mc *MatchContext) []*models.Achievement {
	var facts []*models.Achievement

	for i := range mc.Players {
		player := &mc.Players[i]

		// Anonymous roster slots have no persisted player row. Their stats
		// still feed the match level aggregates, but they never own a fact.
		if player.PlayerId == 0 {
			continue
		}

		for _, rule := range PlayerRules {
			if !rule.Matches(mc, player) {
				continue
			}

			var payload map[string]any
			if rule.Payload != nil {
				payload = rule.Payload(mc, player)
			}

			playerId := player.PlayerId
			side := player.Side
			facts = append(facts, &models.Achievement{
				MatchId:         mc.MatchId,
				PlayerId:        &playerId,
				AchievementType: rule.Type,
				AchievementName: rule.Name,
				AchievementDesc: rule.Description,
				Team:            &side,
				Value:           marshalPayload(payload),
			})
		}
	}

	for _, rule := range TeamRules {
		side, ok := rule.Matches(mc)
		if !ok {
			continue
		}

		var payload map[string]any
		if rule.Payload != nil {
			payload = rule.Payload(mc)
		}

		facts = append(facts, &models.Achievement{
			MatchId:         mc.MatchId,
			AchievementType: rule.Type,
			AchievementName: rule.Name,
			AchievementDesc: rule.Description,
			Team:            &side,
			Value:           marshalPayload(payload),
		})
	}

	return facts
}

// marshalPayload encodes the triggering values, nil payloads stay null.
func marshalPayload(payload map[string]any) datatypes.JSON {
	if payload == nil {
		return nil
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	return datatypes.JSON(encoded)
}

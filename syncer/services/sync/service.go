// Package sync orchestrates the match synchronization pipeline: discovery of
// candidate matches, sequential fetch with backoff, normalized persistence and
// achievement recomputation for fully parsed matches.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"dotatracker/pkg/database/models"
	"dotatracker/pkg/logger"
	opendota "dotatracker/syncer/data/opendota"
	"dotatracker/syncer/data/steam"
	"dotatracker/syncer/repositories"
	"dotatracker/syncer/services/achievements"
	"dotatracker/syncer/services/players"

	"gorm.io/datatypes"
)

// Inter request delays, a deliberate rate limit avoidance policy.
const (
	fetchDelayFloor  = 2 * time.Second
	fetchDelayJitter = time.Second
	teamLookupDelay  = time.Second
)

// Sentinel errors of the trigger surface.
var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchDataUnavailable  = errors.New("no data available for the match")
	ErrParseAlreadyRequested = errors.New("parse already requested for the match")
)

// MatchLister is the discovery slice of the match source.
type MatchLister interface {
	GetMatchHistory(ctx context.Context, leagueId int) ([]steam.HistoryMatch, error)
}

// MatchDetailer is the detail and enrichment slice of the match source.
type MatchDetailer interface {
	GetMatchDetail(ctx context.Context, matchId int64) (*opendota.MatchDetail, error)
	RequestParse(ctx context.Context, matchId int64) (int64, error)
}

// TeamDirectory resolves team ids to display identities.
type TeamDirectory interface {
	GetTeamInfo(ctx context.Context, teamId int64) (*steam.TeamInfo, error)
}

// RunResult summarizes one coordinator run.
type RunResult struct {
	Synced int `json:"synced"`
	Total  int `json:"total"`
}

// ResyncResult summarizes a bulk reset run.
type ResyncResult struct {
	Deleted int64 `json:"deleted"`
	Synced  int   `json:"synced"`
	Total   int   `json:"total"`
}

// Service is the sync coordinator and match ingestor.
type Service struct {
	lister   MatchLister
	detailer MatchDetailer
	teams    TeamDirectory

	MatchRepository   repositories.MatchRepository
	PlayerRepository  repositories.PlayerRepository
	SyncLogRepository repositories.SyncLogRepository

	playerService      *players.Service
	achievementService *achievements.Service

	tracker   *Tracker
	runLogger *logger.RunLogger

	// Swapped out on tests to avoid real waiting.
	sleep func(time.Duration)
}

// ServiceDeps carries the collaborators of the sync service.
type ServiceDeps struct {
	Lister   MatchLister
	Detailer MatchDetailer
	Teams    TeamDirectory

	MatchRepository   repositories.MatchRepository
	PlayerRepository  repositories.PlayerRepository
	SyncLogRepository repositories.SyncLogRepository

	PlayerService      *players.Service
	AchievementService *achievements.Service

	RunLogger *logger.RunLogger
}

// NewService creates the sync service.
func NewService(deps *ServiceDeps) *Service {
	return &Service{
		lister:             deps.Lister,
		detailer:           deps.Detailer,
		teams:              deps.Teams,
		MatchRepository:    deps.MatchRepository,
		PlayerRepository:   deps.PlayerRepository,
		SyncLogRepository:  deps.SyncLogRepository,
		playerService:      deps.PlayerService,
		achievementService: deps.AchievementService,
		tracker:            NewTracker(),
		runLogger:          deps.RunLogger,
		sleep:              time.Sleep,
	}
}

// StartSync accepts a run for the league and returns without waiting for
// completion. Fails with ErrAlreadyRunning when a run is in flight.
func (s *Service) StartSync(leagueId int) error {
	if err := s.tracker.Begin(); err != nil {
		return err
	}

	go func() {
		// The run owns the cleanup through its deferred Finish.
		s.run(context.Background(), leagueId)
	}()

	return nil
}

// GetStatus returns the current run snapshot. Side effect free.
func (s *Service) GetStatus() Status {
	return s.tracker.Snapshot()
}

// ForceResync deletes every match of the league and runs a full sync from
// scratch, synchronously. Only entry point that bulk deletes match data.
func (s *Service) ForceResync(ctx context.Context, leagueId int) (*ResyncResult, error) {
	if err := s.tracker.Begin(); err != nil {
		return nil, err
	}

	deleted, err := s.MatchRepository.DeleteByLeague(leagueId)
	if err != nil {
		s.tracker.Finish(err)
		return nil, fmt.Errorf("couldn't delete the matches of league %d: %v", leagueId, err)
	}

	result, err := s.run(ctx, leagueId)
	if err != nil {
		return nil, err
	}

	return &ResyncResult{
		Deleted: deleted,
		Synced:  result.Synced,
		Total:   result.Total,
	}, nil
}

// run executes one full sync: discover, diff, fetch each new match
// sequentially, reconcile team identities and log the outcome. Per match
// failures are skipped, only discovery failures abort the run.
func (s *Service) run(ctx context.Context, leagueId int) (result *RunResult, err error) {
	synced := 0

	defer func() {
		// Deterministic cleanup: the running flag is cleared on every exit
		// path, success or failure.
		s.tracker.Finish(err)
	}()

	s.logInfof("Starting match sync for league %d", leagueId)

	// DISCOVER: every candidate the source knows for the league.
	candidates, err := s.lister.GetMatchHistory(ctx, leagueId)
	if err != nil {
		s.logOutcome(models.SyncTypeMatch, err, synced)
		return nil, fmt.Errorf("couldn't list the candidate matches: %v", err)
	}

	// DIFF: the working set is candidates minus already persisted ids.
	existingIds, err := s.MatchRepository.GetExistingMatchIds(leagueId)
	if err != nil {
		s.logOutcome(models.SyncTypeMatch, err, synced)
		return nil, fmt.Errorf("couldn't get the existing matches: %v", err)
	}

	known := make(map[int64]bool, len(existingIds))
	for _, id := range existingIds {
		known[id] = true
	}

	var newMatches []steam.HistoryMatch
	for _, candidate := range candidates {
		if !known[candidate.MatchId] {
			newMatches = append(newMatches, candidate)
		}
	}

	s.tracker.SetTotal(len(newMatches))
	s.logInfof("Found %d candidates, %d already known, %d to sync", len(candidates), len(existingIds), len(newMatches))

	// FETCH_EACH: strictly sequential with a randomized delay between items
	// to respect the upstream rate limit. Never parallelize this loop.
	for i, candidate := range newMatches {
		s.tracker.BeginItem(candidate.MatchId, i+1)

		if err := s.syncNewMatch(ctx, candidate.MatchId, leagueId); err != nil {
			// A failed match is skipped, the batch keeps going.
			s.logErrorf("Failed to sync match %d: %v", candidate.MatchId, err)
		} else {
			synced++
			s.logInfof("[%d/%d] Synced match %d", i+1, len(newMatches), candidate.MatchId)
		}

		s.tracker.EndItem()

		if i < len(newMatches)-1 {
			s.sleep(s.fetchDelay())
		}
	}

	// RECONCILE_TEAMS: best effort resolution of the observed team ids.
	s.reconcileTeams(ctx, newMatches)

	// LOG: one outcome row per run.
	s.logOutcome(models.SyncTypeMatch, nil, synced)
	s.logInfof("Match sync completed, synced %d/%d", synced, len(newMatches))
	s.uploadRunLog(leagueId)

	return &RunResult{Synced: synced, Total: len(newMatches)}, nil
}

// syncNewMatch ingests one newly discovered match: upserts the match row,
// materializes the participations (first sight only path) and recomputes the
// achievements when the payload is fully parsed.
func (s *Service) syncNewMatch(ctx context.Context, matchId int64, leagueId int) error {
	detail, err := s.detailer.GetMatchDetail(ctx, matchId)
	if err != nil {
		return err
	}

	// Missing data is a soft skip, not an error.
	if detail == nil {
		s.logWarnf("No data for match %d, skipping", matchId)
		return nil
	}

	match := mapMatch(detail, leagueId)
	if err := s.MatchRepository.UpsertMatch(match); err != nil {
		return fmt.Errorf("couldn't upsert the match %d: %v", matchId, err)
	}

	// Participations are write once: only materialized here, on the first
	// successful fetch of the match. Refreshes never recreate them.
	playerIds, roster, err := s.persistRoster(ctx, detail)
	if err != nil {
		return err
	}

	// Best effort profile enrichment, never blocks ingestion.
	s.playerService.EnrichPlayers(ctx, roster)

	// Partial data must never produce facts.
	if !detail.IsParsed() {
		return nil
	}

	mc := achievements.BuildMatchContext(detail, playerIds)
	if _, err := s.achievementService.Recompute(mc); err != nil {
		return err
	}

	return nil
}

// persistRoster resolves every roster entry to a player row and creates the
// participation rows. Anonymous entries (no account id) are skipped.
func (s *Service) persistRoster(ctx context.Context, detail *opendota.MatchDetail) (map[int64]uint, []*models.Player, error) {
	playerIds := make(map[int64]uint, len(detail.Players))
	var roster []*models.Player
	var participations []*models.MatchPlayer
	var participantIds []uint
	var winnerIds []uint

	winner := achievements.SideRadiant
	if !detail.RadiantWin {
		winner = achievements.SideDire
	}

	for i := range detail.Players {
		entry := &detail.Players[i]
		if entry.AccountId == 0 {
			s.logWarnf("Match %d has an anonymous roster slot %d, skipping", detail.MatchId, entry.PlayerSlot)
			continue
		}

		// The participation row must reference a persisted player id, so the
		// resolution is awaited here.
		player, err := s.playerService.EnsurePlayer(entry.AccountId)
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't resolve the player %d: %v", entry.AccountId, err)
		}

		playerIds[entry.AccountId] = player.ID
		roster = append(roster, player)

		side := achievements.SideOfSlot(entry.PlayerSlot)
		participations = append(participations, mapParticipation(detail.MatchId, player.ID, side, entry))
		participantIds = append(participantIds, player.ID)
		if side == winner {
			winnerIds = append(winnerIds, player.ID)
		}
	}

	if err := s.MatchRepository.CreateMatchPlayers(participations); err != nil {
		return nil, nil, fmt.Errorf("couldn't create the participations for match %d: %v", detail.MatchId, err)
	}

	if err := s.PlayerRepository.BumpAggregates(participantIds, winnerIds); err != nil {
		// Counter drift is tolerable, the participation rows are the truth.
		s.logWarnf("Couldn't bump the aggregates for match %d: %v", detail.MatchId, err)
	}

	return playerIds, roster, nil
}

// RefreshMatch re-fetches one known match, updates the match row in place and
// re-runs detection if the payload is now fully parsed. The participation
// rows are never recreated. This is the sole correction path for facts.
func (s *Service) RefreshMatch(ctx context.Context, matchId int64) (*models.Match, error) {
	match, err := s.MatchRepository.GetByMatchId(matchId)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrMatchNotFound
	}

	detail, err := s.detailer.GetMatchDetail(ctx, matchId)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrMatchDataUnavailable
	}

	updated := mapMatch(detail, match.LeagueId)
	if err := s.MatchRepository.UpsertMatch(updated); err != nil {
		return nil, fmt.Errorf("couldn't update the match %d: %v", matchId, err)
	}

	if detail.IsParsed() {
		playerIds, err := s.persistedPlayerIds(matchId)
		if err != nil {
			return nil, err
		}

		mc := achievements.BuildMatchContext(detail, playerIds)
		if _, err := s.achievementService.Recompute(mc); err != nil {
			return nil, err
		}
	}

	return s.MatchRepository.GetByMatchId(matchId)
}

// RequestParse marks the match for upstream enrichment. Only stamps the
// request flag and timestamp, completeness is confirmed by a later refresh.
func (s *Service) RequestParse(ctx context.Context, matchId int64) (int64, error) {
	match, err := s.MatchRepository.GetByMatchId(matchId)
	if err != nil {
		return 0, err
	}
	if match == nil {
		return 0, ErrMatchNotFound
	}
	if match.ParseRequested {
		return 0, ErrParseAlreadyRequested
	}

	jobId, err := s.detailer.RequestParse(ctx, matchId)
	if err != nil {
		return 0, err
	}

	if err := s.MatchRepository.SetParseRequested(matchId, time.Now().UTC()); err != nil {
		return 0, err
	}

	return jobId, nil
}

// persistedPlayerIds rebuilds the account id to surrogate key map from the
// participation rows written at first ingestion.
func (s *Service) persistedPlayerIds(matchId int64) (map[int64]uint, error) {
	participations, err := s.MatchRepository.GetMatchPlayers(matchId)
	if err != nil {
		return nil, err
	}

	var ids []uint
	for i := range participations {
		ids = append(ids, participations[i].PlayerId)
	}

	playersById, err := s.PlayerRepository.GetByIds(ids)
	if err != nil {
		return nil, err
	}

	playerIds := make(map[int64]uint, len(playersById))
	for i := range playersById {
		playerIds[playersById[i].AccountId] = playersById[i].ID
	}

	return playerIds, nil
}

// fetchDelay returns the randomized inter request delay.
func (s *Service) fetchDelay() time.Duration {
	return fetchDelayFloor + time.Duration(rand.Int63n(int64(fetchDelayJitter)))
}

// logOutcome appends one row to the run outcome log.
func (s *Service) logOutcome(syncType string, runErr error, count int) {
	entry := &models.SyncLog{
		SyncType:    syncType,
		Status:      models.SyncStatusSuccess,
		SyncedCount: count,
	}

	if runErr != nil {
		message := runErr.Error()
		entry.Status = models.SyncStatusFailed
		entry.ErrorMessage = &message
	}

	if err := s.SyncLogRepository.Create(entry); err != nil {
		s.logErrorf("Couldn't write the sync log: %v", err)
	}
}

// uploadRunLog pushes the run log to the configured bucket, best effort.
func (s *Service) uploadRunLog(leagueId int) {
	if s.runLogger == nil {
		return
	}

	key := fmt.Sprintf("sync/league-%d-%d.log", leagueId, time.Now().Unix())
	if err := s.runLogger.UploadToS3Bucket(key); err != nil {
		s.logErrorf("Couldn't upload the run log: %v", err)
	}
}

func (s *Service) logInfof(format string, args ...interface{}) {
	if s.runLogger != nil {
		s.runLogger.Infof(format, args...)
	}
}

func (s *Service) logWarnf(format string, args ...interface{}) {
	if s.runLogger != nil {
		s.runLogger.Warnf(format, args...)
	}
}

func (s *Service) logErrorf(format string, args ...interface{}) {
	if s.runLogger != nil {
		s.runLogger.Errorf(format, args...)
	}
}

// mapMatch maps the raw payload to the normalized match row.
func mapMatch(detail *opendota.MatchDetail, leagueId int) *models.Match {
	return &models.Match{
		MatchId:      detail.MatchId,
		LeagueId:     leagueId,
		StartTime:    detail.StartTime,
		Duration:     detail.Duration,
		RadiantWin:   detail.RadiantWin,
		RadiantScore: detail.RadiantScore,
		DireScore:    detail.DireScore,
		GameMode:     detail.GameMode,
		IsParsed:     detail.IsParsed(),
	}
}

// mapParticipation maps one roster entry to its participation row.
func mapParticipation(matchId int64, playerId uint, side string, entry *opendota.MatchDetailPlayer) *models.MatchPlayer {
	return &models.MatchPlayer{
		MatchId:         matchId,
		PlayerId:        playerId,
		HeroId:          entry.HeroId,
		Team:            side,
		Kills:           entry.Kills,
		Deaths:          entry.Deaths,
		Assists:         entry.Assists,
		Gpm:             entry.GoldPerMin,
		Xpm:             entry.XpPerMin,
		NetWorth:        entry.NetWorth,
		LastHits:        entry.LastHits,
		Denies:          entry.Denies,
		Items:           marshalItems(entry),
		ItemBackpack0:   entry.Backpack0,
		ItemBackpack1:   entry.Backpack1,
		ItemBackpack2:   entry.Backpack2,
		ItemNeutral:     entry.ItemNeutral,
		AbilityUpgrades: marshalAbilityUpgrades(entry),
		Lane:            entry.Lane,
		HeroDamage:      entry.HeroDamage,
		TowerDamage:     entry.TowerDamage,
		HeroHealing:     entry.HeroHealing,
	}
}

// marshalItems collects the filled inventory slots as a JSON list.
// An empty inventory is an empty list, never null.
func marshalItems(entry *opendota.MatchDetailPlayer) datatypes.JSON {
	items := []int{}
	for _, item := range []int{entry.Item0, entry.Item1, entry.Item2, entry.Item3, entry.Item4, entry.Item5} {
		if item != 0 {
			items = append(items, item)
		}
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return nil
	}

	return datatypes.JSON(encoded)
}

func marshalAbilityUpgrades(entry *opendota.MatchDetailPlayer) datatypes.JSON {
	if entry.AbilityUpgrades == nil {
		return nil
	}

	encoded, err := json.Marshal(entry.AbilityUpgrades)
	if err != nil {
		return nil
	}

	return datatypes.JSON(encoded)
}

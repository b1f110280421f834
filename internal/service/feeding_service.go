package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aubrey-sherman/baby-bootcamp-be/config"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/dto"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/model"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/repository"
	pkgerrors "github.com/aubrey-sherman/baby-bootcamp-be/pkg/errors"
)

// ── Feeding module business errors ──

var (
	ErrBlockNotFound  = pkgerrors.NotFound("feeding block not found")
	ErrEntryNotFound  = pkgerrors.NotFound("feeding entry not found")
	ErrNegativeVolume = pkgerrors.BadRequest("volume must not be negative")
)

// FeedingService is the feeding-schedule engine. It materializes
// calendar-aligned entries lazily, keeps block numbering dense under
// creates and deletes, and recomputes elimination glide paths whenever
// an upstream volume or time changes.
type FeedingService interface {
	CreateBlockWithEntries(ctx context.Context, username string, isEliminating bool, zone string) (*dto.BlockWithEntriesResponse, error)
	ListBlocks(ctx context.Context, username string) ([]dto.BlockResponse, error)
	EntriesForWeek(ctx context.Context, blockID, username string, weekStart time.Time, zone string) ([]dto.EntryResponse, error)
	ExtendEntriesForward(ctx context.Context, blockID, username string, fromDate time.Time, zone string) ([]dto.EntryResponse, error)
	UpdateAllEntryTimes(ctx context.Context, blockID, username string, newLocalTime time.Time, zone string) (*dto.BlockWithEntriesResponse, error)
	StartElimination(ctx context.Context, blockID, username string, startDate time.Time, baselineVolume float64, weekAnchor time.Time, zone string) (*dto.BlockWithEntriesResponse, error)
	UpdateEntryVolume(ctx context.Context, entryID, username string, volume float64, weekAnchor time.Time, zone string) (*dto.BlockWithEntriesResponse, error)
	DeleteBlock(ctx context.Context, blockID, username string) error
	DeleteEntry(ctx context.Context, entryID, username string) error
}

type feedingService struct {
	cfg    config.ScheduleConfig
	repo   *repository.Repository
	tz     TimezoneConverter
	rules  EliminationRules
	logger *zap.Logger
	now    func() time.Time
}

// NewFeedingService creates a FeedingService instance.
func NewFeedingService(cfg config.ScheduleConfig, repo *repository.Repository, logger *zap.Logger) FeedingService {
	return &feedingService{
		cfg:    cfg,
		repo:   repo,
		rules:  EliminationRules{GroupDays: cfg.GroupDays, Decrement: cfg.DecrementOunces},
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── CreateBlockWithEntries ──────────────────────

// CreateBlockWithEntries inserts a block at the user's next number and
// materializes one entry per local calendar day from the start of the
// current local week through the initial horizon, each defaulting to the
// creation moment's local time-of-day. Runs in one transaction so a
// concurrent create for the same user conflicts on (username, number)
// instead of duplicating it.
func (s *feedingService) CreateBlockWithEntries(ctx context.Context, username string, isEliminating bool, zone string) (*dto.BlockWithEntriesResponse, error) {
	loc, err := s.tz.LoadZone(zone)
	if err != nil {
		return nil, err
	}

	now := s.now()
	weekStart, weekEnd := s.tz.WeekRange(now, loc)

	var block *model.FeedingBlock
	var entries []model.FeedingEntry
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		maxNumber, err := tx.Block.MaxNumber(ctx, username)
		if err != nil {
			return err
		}

		block = &model.FeedingBlock{
			ID:            uuid.New().String(),
			Username:      username,
			Number:        maxNumber + 1,
			IsEliminating: isEliminating,
		}
		if err := tx.Block.Create(ctx, block); err != nil {
			return s.storeErr(err, "feeding block")
		}

		horizon := now.In(loc).AddDate(0, s.cfg.InitialHorizonMonths, 0)
		days := s.tz.DaysBetween(weekStart, horizon, loc)
		entries = make([]model.FeedingEntry, 0, days+1)
		for i := 0; i <= days; i++ {
			feedingTime := s.tz.CombineDayAndClock(s.tz.AddDays(weekStart, i, loc), now, loc)
			entries = append(entries, model.FeedingEntry{
				ID:          uuid.New().String(),
				BlockID:     block.ID,
				FeedingTime: feedingTime,
				FeedingDay:  s.tz.CivilDay(feedingTime, loc),
			})
		}
		return s.storeErr(tx.Entry.BatchCreate(ctx, entries), "feeding entries")
	})
	if err != nil {
		s.logger.Error("creating feeding block failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	// Display filter: only the current local week travels back.
	week := make([]model.FeedingEntry, 0, 7)
	for i := range entries {
		t := entries[i].FeedingTime
		if !t.Before(weekStart) && t.Before(weekEnd) {
			week = append(week, entries[i])
		}
	}

	return s.toBlockWithEntries(block, week), nil
}

// ────────────────────── ListBlocks ──────────────────────

func (s *feedingService) ListBlocks(ctx context.Context, username string) ([]dto.BlockResponse, error) {
	blocks, err := s.repo.Block.ListByUsername(ctx, username)
	if err != nil {
		s.logger.Error("listing feeding blocks failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	result := make([]dto.BlockResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, s.toBlockResponse(&blocks[i]))
	}
	return result, nil
}

// ────────────────────── EntriesForWeek ──────────────────────

// EntriesForWeek returns the 7 entries of the local week containing
// weekStart, creating any missing days. A fully-populated week returns
// unmodified, so calendar navigation is idempotent; days a user already
// has an entry for are never touched.
func (s *feedingService) EntriesForWeek(ctx context.Context, blockID, username string, weekStart time.Time, zone string) ([]dto.EntryResponse, error) {
	loc, err := s.tz.LoadZone(zone)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBlock(ctx, s.repo, blockID, username); err != nil {
		return nil, err
	}

	start, end := s.tz.WeekRange(weekStart, loc)

	var week []model.FeedingEntry
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Entry.ListInRange(ctx, blockID, start, end)
		if err != nil {
			return err
		}
		if len(existing) == 7 {
			week = existing
			return nil
		}

		clock, err := s.timeOfDayPattern(ctx, tx, blockID, start, loc)
		if err != nil {
			return err
		}

		var missing []model.FeedingEntry
		for i := 0; i < 7; i++ {
			day := s.tz.AddDays(start, i, loc)
			if hasEntryOnDay(s.tz, existing, day, loc) {
				continue
			}
			feedingTime := s.tz.CombineDayAndClock(day, clock, loc)
			missing = append(missing, model.FeedingEntry{
				ID:          uuid.New().String(),
				BlockID:     blockID,
				FeedingTime: feedingTime,
				FeedingDay:  s.tz.CivilDay(feedingTime, loc),
			})
		}
		if err := s.storeErr(tx.Entry.BatchCreate(ctx, missing), "feeding entries"); err != nil {
			return err
		}

		week, err = tx.Entry.ListInRange(ctx, blockID, start, end)
		return err
	})
	if err != nil {
		s.logger.Error("materializing week failed", zap.String("block_id", blockID), zap.Error(err))
		return nil, err
	}

	return s.toEntryResponses(week), nil
}

// ────────────────────── ExtendEntriesForward ──────────────────────

// ExtendEntriesForward materializes entries for the extension horizon
// beyond fromDate. Days that already hold an entry are skipped by local
// calendar day, not by instant, so time-of-day drift between older and
// newer entries cannot produce duplicate days.
func (s *feedingService) ExtendEntriesForward(ctx context.Context, blockID, username string, fromDate time.Time, zone string) ([]dto.EntryResponse, error) {
	loc, err := s.tz.LoadZone(zone)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBlock(ctx, s.repo, blockID, username); err != nil {
		return nil, err
	}

	start := s.tz.DayStart(fromDate, loc)
	end := s.tz.DayStart(fromDate.In(loc).AddDate(0, s.cfg.ExtensionHorizonMonths, 0), loc)

	var result []model.FeedingEntry
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Entry.ListInRange(ctx, blockID, start, end)
		if err != nil {
			return err
		}

		clock, err := s.timeOfDayPattern(ctx, tx, blockID, start, loc)
		if err != nil {
			return err
		}

		days := s.tz.DaysBetween(start, end, loc)
		var missing []model.FeedingEntry
		for i := 0; i < days; i++ {
			day := s.tz.AddDays(start, i, loc)
			if hasEntryOnDay(s.tz, existing, day, loc) {
				continue
			}
			feedingTime := s.tz.CombineDayAndClock(day, clock, loc)
			missing = append(missing, model.FeedingEntry{
				ID:          uuid.New().String(),
				BlockID:     blockID,
				FeedingTime: feedingTime,
				FeedingDay:  s.tz.CivilDay(feedingTime, loc),
			})
		}
		if err := s.storeErr(tx.Entry.BatchCreate(ctx, missing), "feeding entries"); err != nil {
			return err
		}

		result, err = tx.Entry.ListInRange(ctx, blockID, start, end)
		return err
	})
	if err != nil {
		s.logger.Error("extending entries failed", zap.String("block_id", blockID), zap.Error(err))
		return nil, err
	}

	return s.toEntryResponses(result), nil
}

// ────────────────────── UpdateAllEntryTimes ──────────────────────

// UpdateAllEntryTimes rewrites the time-of-day of every entry on or
// after newLocalTime's local day, preserving each entry's calendar day.
// On an eliminating block the shifted instants may cross day boundaries
// relative to the elimination start, so volumes are recomputed.
func (s *feedingService) UpdateAllEntryTimes(ctx context.Context, blockID, username string, newLocalTime time.Time, zone string) (*dto.BlockWithEntriesResponse, error) {
	loc, err := s.tz.LoadZone(zone)
	if err != nil {
		return nil, err
	}

	var block *model.FeedingBlock
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		block, err = s.ownedBlock(ctx, tx, blockID, username)
		if err != nil {
			return err
		}

		entries, err := tx.Entry.ListFrom(ctx, blockID, s.tz.DayStart(newLocalTime, loc))
		if err != nil {
			return err
		}

		blockChanged := false
		for i := range entries {
			entry := &entries[i]
			newTime := s.tz.CombineDayAndClock(entry.FeedingTime, newLocalTime, loc)
			if block.IsEliminating {
				volume, rebased := s.recomputeVolumeForTimeChange(block, entry, newTime, loc)
				entry.VolumeInOunces = volume
				blockChanged = blockChanged || rebased
			}
			entry.FeedingTime = newTime
			if err := tx.Entry.Update(ctx, entry); err != nil {
				return s.storeErr(err, "feeding entry")
			}
		}

		if blockChanged {
			return s.storeErr(tx.Block.Update(ctx, block), "feeding block")
		}
		return nil
	})
	if err != nil {
		s.logger.Error("updating entry times failed", zap.String("block_id", blockID), zap.Error(err))
		return nil, err
	}

	return s.blockWithWeek(ctx, block, s.now(), loc)
}

// ────────────────────── StartElimination ──────────────────────

// StartElimination records the phase start and baseline on the block.
// Existing entry volumes are left alone: reads compute against the
// glide path lazily and the next volume write cascades.
func (s *feedingService) StartElimination(ctx context.Context, blockID, username string, startDate time.Time, baselineVolume float64, weekAnchor time.Time, zone string) (*dto.BlockWithEntriesResponse, error) {
	loc, err := s.tz.LoadZone(zone)
	if err != nil {
		return nil, err
	}
	if baselineVolume < 0 {
		return nil, ErrNegativeVolume
	}

	block, err := s.ownedBlock(ctx, s.repo, blockID, username)
	if err != nil {
		return nil, err
	}

	start := startDate.UTC()
	block.IsEliminating = true
	block.EliminationStartDate = &start
	block.BaselineVolume = &baselineVolume
	block.CurrentGroup = 0
	if err := s.repo.Block.Update(ctx, block); err != nil {
		s.logger.Error("starting elimination failed", zap.String("block_id", blockID), zap.Error(err))
		return nil, s.storeErr(err, "feeding block")
	}

	return s.blockWithWeek(ctx, block, weekAnchor, loc)
}

// ────────────────────── UpdateEntryVolume ──────────────────────

// UpdateEntryVolume records a volume and propagates its consequences
// forward, all inside one transaction.
//
// Non-eliminating blocks carry the value flat: it is copied onto every
// entry at or after the edited one, so a manual volume applies until
// changed again.
//
// Eliminating blocks follow the glide path. The first volume ever
// recorded anchors the phase (start = entry time, baseline = volume,
// group 0). Later recordings resolve against the expected volume for
// their group: lower values rebase the baseline, higher values are
// clamped down. Every subsequent entry is then rewritten from the
// (possibly rebased) baseline; entries before the edited one are never
// touched.
func (s *feedingService) UpdateEntryVolume(ctx context.Context, entryID, username string, volume float64, weekAnchor time.Time, zone string) (*dto.BlockWithEntriesResponse, error) {
	loc, err := s.tz.LoadZone(zone)
	if err != nil {
		return nil, err
	}
	if volume < 0 {
		return nil, ErrNegativeVolume
	}

	var block *model.FeedingBlock
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := tx.Entry.GetByID(ctx, entryID)
		if err != nil {
			return s.storeErr(err, "feeding entry")
		}
		block, err = s.ownedBlock(ctx, tx, entry.BlockID, username)
		if err != nil {
			return err
		}

		if !block.IsEliminating {
			return s.carryForward(ctx, tx, block.ID, entry, volume)
		}
		return s.recordEliminationVolume(ctx, tx, block, entry, volume, loc)
	})
	if err != nil {
		s.logger.Error("updating entry volume failed", zap.String("entry_id", entryID), zap.Error(err))
		return nil, err
	}

	return s.blockWithWeek(ctx, block, weekAnchor, loc)
}

// carryForward sets the same volume on the entry and everything after it.
func (s *feedingService) carryForward(ctx context.Context, tx *repository.Repository, blockID string, entry *model.FeedingEntry, volume float64) error {
	onward, err := tx.Entry.ListFrom(ctx, blockID, entry.FeedingTime)
	if err != nil {
		return err
	}
	for i := range onward {
		v := volume
		onward[i].VolumeInOunces = &v
		if err := tx.Entry.Update(ctx, &onward[i]); err != nil {
			return s.storeErr(err, "feeding entry")
		}
	}
	return nil
}

// recordEliminationVolume anchors the phase on the first recording,
// otherwise resolves the value against the glide path, then cascades
// the (possibly rebased) baseline forward.
func (s *feedingService) recordEliminationVolume(ctx context.Context, tx *repository.Repository, block *model.FeedingBlock, entry *model.FeedingEntry, volume float64, loc *time.Location) error {
	blockChanged := false

	switch {
	case block.EliminationStartDate == nil || block.BaselineVolume == nil:
		// First recorded volume anchors the phase.
		start := entry.FeedingTime.UTC()
		baseline := volume
		block.EliminationStartDate = &start
		block.BaselineVolume = &baseline
		block.CurrentGroup = 0
		blockChanged = true
		v := volume
		entry.VolumeInOunces = &v

	default:
		days := s.tz.DaysBetween(*block.EliminationStartDate, entry.FeedingTime, loc)
		if days < 0 {
			// Entry predates the elimination start: store verbatim, no
			// glide-path involvement, mirroring the no-backward rule of
			// time recomputation.
			v := volume
			entry.VolumeInOunces = &v
		} else {
			group := s.rules.GroupNumber(days)
			stored, rebase := s.rules.Resolve(*block.BaselineVolume, block.CurrentGroup, group, volume)
			if rebase {
				baseline := stored
				block.BaselineVolume = &baseline
				block.CurrentGroup = group
				blockChanged = true
			}
			v := stored
			entry.VolumeInOunces = &v
		}
	}

	if err := tx.Entry.Update(ctx, entry); err != nil {
		return s.storeErr(err, "feeding entry")
	}
	if blockChanged {
		if err := tx.Block.Update(ctx, block); err != nil {
			return s.storeErr(err, "feeding block")
		}
	}

	return s.cascadeGlidePath(ctx, tx, block, entry, loc)
}

// cascadeGlidePath overwrites every entry after the edited one with the
// expected volume for its group, keeping the future consistent with the
// latest rebase point. Past entries stay untouched.
func (s *feedingService) cascadeGlidePath(ctx context.Context, tx *repository.Repository, block *model.FeedingBlock, after *model.FeedingEntry, loc *time.Location) error {
	if block.EliminationStartDate == nil || block.BaselineVolume == nil {
		return nil
	}

	onward, err := tx.Entry.ListFrom(ctx, block.ID, after.FeedingTime)
	if err != nil {
		return err
	}
	for i := range onward {
		e := &onward[i]
		if e.ID == after.ID {
			continue
		}
		days := s.tz.DaysBetween(*block.EliminationStartDate, e.FeedingTime, loc)
		if days < 0 {
			continue
		}
		expected := s.rules.ExpectedVolume(*block.BaselineVolume, block.CurrentGroup, s.rules.GroupNumber(days))
		e.VolumeInOunces = &expected
		if err := tx.Entry.Update(ctx, e); err != nil {
			return s.storeErr(err, "feeding entry")
		}
	}
	return nil
}

// ────────────────────── recomputeVolumeForTimeChange ──────────────────────

// recomputeVolumeForTimeChange returns the volume an entry should carry
// once its instant moves to newTime. Without an elimination anchor, or
// when newTime precedes the start, the existing volume survives — the
// glide path is never extrapolated backward. A stored volume below the
// expected one rebases the block as a side effect, mirroring the
// recording rule; the returned flag reports that mutation.
func (s *feedingService) recomputeVolumeForTimeChange(block *model.FeedingBlock, entry *model.FeedingEntry, newTime time.Time, loc *time.Location) (*float64, bool) {
	if block.EliminationStartDate == nil || block.BaselineVolume == nil {
		return entry.VolumeInOunces, false
	}

	days := s.tz.DaysBetween(*block.EliminationStartDate, newTime, loc)
	if days < 0 {
		return entry.VolumeInOunces, false
	}

	group := s.rules.GroupNumber(days)
	if entry.VolumeInOunces != nil {
		stored, rebase := s.rules.Resolve(*block.BaselineVolume, block.CurrentGroup, group, *entry.VolumeInOunces)
		if rebase {
			baseline := stored
			block.BaselineVolume = &baseline
			block.CurrentGroup = group
		}
		v := stored
		return &v, rebase
	}

	expected := s.rules.ExpectedVolume(*block.BaselineVolume, block.CurrentGroup, group)
	return &expected, false
}

// ────────────────────── DeleteBlock ──────────────────────

// DeleteBlock removes the block with its entries and closes the
// numbering gap, atomically so a concurrent create cannot observe a
// stale max number without conflicting.
func (s *feedingService) DeleteBlock(ctx context.Context, blockID, username string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		block, err := s.ownedBlock(ctx, tx, blockID, username)
		if err != nil {
			return err
		}
		if err := tx.Entry.DeleteByBlock(ctx, blockID); err != nil {
			return err
		}
		if err := tx.Block.Delete(ctx, blockID); err != nil {
			return err
		}
		return tx.Block.DecrementNumbersAbove(ctx, username, block.Number)
	})
	if err != nil {
		s.logger.Error("deleting feeding block failed", zap.String("block_id", blockID), zap.Error(err))
	}
	return err
}

// ────────────────────── DeleteEntry ──────────────────────

func (s *feedingService) DeleteEntry(ctx context.Context, entryID, username string) error {
	entry, err := s.repo.Entry.GetByID(ctx, entryID)
	if err != nil {
		return s.storeErr(err, "feeding entry")
	}
	if _, err := s.ownedBlock(ctx, s.repo, entry.BlockID, username); err != nil {
		return err
	}
	if err := s.repo.Entry.Delete(ctx, entryID); err != nil {
		return s.storeErr(err, "feeding entry")
	}
	return nil
}

// ── Internal helpers ──

// ownedBlock loads a block scoped to its owner; absence and foreign
// ownership are indistinguishable to the caller.
func (s *feedingService) ownedBlock(ctx context.Context, r *repository.Repository, blockID, username string) (*model.FeedingBlock, error) {
	block, err := r.Block.GetOwned(ctx, blockID, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	return block, nil
}

// timeOfDayPattern picks the clock used for newly materialized days:
// the local time-of-day of the most recent entry before the range, or
// local noon when the block has no earlier entry.
func (s *feedingService) timeOfDayPattern(ctx context.Context, r *repository.Repository, blockID string, before time.Time, loc *time.Location) (time.Time, error) {
	prev, err := r.Entry.MostRecentBefore(ctx, blockID, before)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.tz.LocalNoon(before, loc), nil
		}
		return time.Time{}, err
	}
	return prev.FeedingTime, nil
}

func hasEntryOnDay(tz TimezoneConverter, entries []model.FeedingEntry, day time.Time, loc *time.Location) bool {
	for i := range entries {
		if tz.SameLocalDay(entries[i].FeedingTime, day, loc) {
			return true
		}
	}
	return false
}

// storeErr translates persistence failures into kinded errors; anything
// unrecognized propagates unchanged.
func (s *feedingService) storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.NotFound(what + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkgerrors.Wrap(pkgerrors.KindConflict, what+" already exists", err)
	default:
		return err
	}
}

// blockWithWeek attaches the entries of the local week containing
// anchor to a block response.
func (s *feedingService) blockWithWeek(ctx context.Context, block *model.FeedingBlock, anchor time.Time, loc *time.Location) (*dto.BlockWithEntriesResponse, error) {
	start, end := s.tz.WeekRange(anchor, loc)
	entries, err := s.repo.Entry.ListInRange(ctx, block.ID, start, end)
	if err != nil {
		return nil, err
	}
	return s.toBlockWithEntries(block, entries), nil
}

func (s *feedingService) toBlockResponse(block *model.FeedingBlock) dto.BlockResponse {
	return dto.BlockResponse{
		ID:                   block.ID,
		Username:             block.Username,
		Number:               block.Number,
		IsEliminating:        block.IsEliminating,
		EliminationStartDate: block.EliminationStartDate,
		BaselineVolume:       block.BaselineVolume,
		CurrentGroup:         block.CurrentGroup,
	}
}

func (s *feedingService) toEntryResponses(entries []model.FeedingEntry) []dto.EntryResponse {
	result := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		result = append(result, dto.EntryResponse{
			ID:             e.ID,
			BlockID:        e.BlockID,
			FeedingTime:    e.FeedingTime,
			VolumeInOunces: e.VolumeInOunces,
			Completed:      e.Completed,
		})
	}
	return result
}

func (s *feedingService) toBlockWithEntries(block *model.FeedingBlock, entries []model.FeedingEntry) *dto.BlockWithEntriesResponse {
	return &dto.BlockWithEntriesResponse{
		Block:   s.toBlockResponse(block),
		Entries: s.toEntryResponses(entries),
	}
}

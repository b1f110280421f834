package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aubrey-sherman/baby-bootcamp-be/internal/model"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/repository"
)

const feedingEventDuration = 30 * time.Minute

// ExportService renders a block's feeding log for download: an XLSX
// workbook for record keeping, or an iCalendar feed so upcoming feeds
// can be subscribed to from a calendar app.
type ExportService interface {
	BlockXLSX(ctx context.Context, blockID, username, zone string) ([]byte, string, error)
	BlockICS(ctx context.Context, blockID, username, zone string) (string, string, error)
}

type exportService struct {
	repo   *repository.Repository
	tz     TimezoneConverter
	logger *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── BlockXLSX ──────────────────────

func (s *exportService) BlockXLSX(ctx context.Context, blockID, username, zone string) ([]byte, string, error) {
	block, entries, loc, err := s.load(ctx, blockID, username, zone)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Feeding Log"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "D", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Block %d — Feeding Log", block.Number))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Date", "Time", "Ounces", "Completed"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i := range entries {
		e := &entries[i]
		local := e.FeedingTime.In(loc)
		row := i + 3
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), local.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), local.Format("15:04"))
		if e.VolumeInOunces != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), *e.VolumeInOunces)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Completed)
	}

	var buf *bytes.Buffer
	buf, err = f.WriteToBuffer()
	if err != nil {
		s.logger.Error("writing xlsx failed", zap.String("block_id", blockID), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("feeding-log-block-%d.xlsx", block.Number)
	return buf.Bytes(), filename, nil
}

// ────────────────────── BlockICS ──────────────────────

func (s *exportService) BlockICS(ctx context.Context, blockID, username, zone string) (string, string, error) {
	block, entries, _, err := s.load(ctx, blockID, username, zone)
	if err != nil {
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//baby-bootcamp//feeding-schedule//EN")

	for i := range entries {
		e := &entries[i]
		event := cal.AddEvent(fmt.Sprintf("%s@baby-bootcamp", e.ID))
		event.SetStartAt(e.FeedingTime.UTC())
		event.SetEndAt(e.FeedingTime.UTC().Add(feedingEventDuration))
		summary := fmt.Sprintf("Feeding (block %d)", block.Number)
		if e.VolumeInOunces != nil {
			summary = fmt.Sprintf("Feeding %.1f oz (block %d)", *e.VolumeInOunces, block.Number)
		}
		event.SetSummary(summary)
	}

	filename := fmt.Sprintf("feeding-schedule-block-%d.ics", block.Number)
	return cal.Serialize(), filename, nil
}

// ── Internal helpers ──

func (s *exportService) load(ctx context.Context, blockID, username, zone string) (*model.FeedingBlock, []model.FeedingEntry, *time.Location, error) {
	loc, err := s.tz.LoadZone(zone)
	if err != nil {
		return nil, nil, nil, err
	}

	block, err := s.repo.Block.GetOwned(ctx, blockID, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrBlockNotFound
		}
		return nil, nil, nil, err
	}

	entries, err := s.repo.Entry.ListByBlock(ctx, blockID)
	if err != nil {
		return nil, nil, nil, err
	}

	return block, entries, loc, nil
}

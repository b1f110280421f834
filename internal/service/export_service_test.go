package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/aubrey-sherman/baby-bootcamp-be/internal/model"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/repository"
)

func setupTestExportService(t *testing.T) (ExportService, *mockBlockRepo, *mockEntryRepo) {
	t.Helper()

	blockRepo := newMockBlockRepo()
	entryRepo := newMockEntryRepo()
	repo := &repository.Repository{
		User:  newMockUserRepo(),
		Block: blockRepo,
		Entry: entryRepo,
	}
	return NewExportService(repo, zap.NewNop()), blockRepo, entryRepo
}

func seedExportBlock(t *testing.T, blockRepo *mockBlockRepo, entryRepo *mockEntryRepo) string {
	t.Helper()

	loc, _ := time.LoadLocation(testZone)
	block := &model.FeedingBlock{ID: "blk-1", Username: "ada", Number: 2}
	if err := blockRepo.Create(context.Background(), block); err != nil {
		t.Fatalf("seeding block: %v", err)
	}

	var tz TimezoneConverter
	volume := 4.0
	for i := 0; i < 3; i++ {
		ft := time.Date(2026, 3, 2+i, 9, 30, 0, 0, loc).UTC()
		err := entryRepo.BatchCreate(context.Background(), []model.FeedingEntry{{
			ID:             "ent-" + string(rune('a'+i)),
			BlockID:        block.ID,
			FeedingTime:    ft,
			FeedingDay:     tz.CivilDay(ft, loc),
			VolumeInOunces: &volume,
			Completed:      i == 0,
		}})
		if err != nil {
			t.Fatalf("seeding entry %d: %v", i, err)
		}
	}
	return block.ID
}

func TestExportService_BlockXLSX(t *testing.T) {
	svc, blockRepo, entryRepo := setupTestExportService(t)
	blockID := seedExportBlock(t, blockRepo, entryRepo)

	data, filename, err := svc.BlockXLSX(context.Background(), blockID, "ada", testZone)
	if err != nil {
		t.Fatalf("xlsx export should succeed: %v", err)
	}
	if filename != "feeding-log-block-2.xlsx" {
		t.Errorf("unexpected filename %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output should be a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Feeding Log")
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	// Title row, header row, 3 entry rows.
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[1][0] != "Date" || rows[1][2] != "Ounces" {
		t.Errorf("unexpected header row: %v", rows[1])
	}
	if rows[2][0] != "2026-03-02" || rows[2][1] != "09:30" {
		t.Errorf("unexpected first entry row: %v", rows[2])
	}
}

func TestExportService_BlockICS(t *testing.T) {
	svc, blockRepo, entryRepo := setupTestExportService(t)
	blockID := seedExportBlock(t, blockRepo, entryRepo)

	body, filename, err := svc.BlockICS(context.Background(), blockID, "ada", testZone)
	if err != nil {
		t.Fatalf("ics export should succeed: %v", err)
	}
	if filename != "feeding-schedule-block-2.ics" {
		t.Errorf("unexpected filename %s", filename)
	}

	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "END:VCALENDAR") {
		t.Error("output is not a calendar")
	}
	if got := strings.Count(body, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("expected 3 events, got %d", got)
	}
	if !strings.Contains(body, "Feeding 4.0 oz (block 2)") {
		t.Error("event summary missing volume")
	}
}

func TestExportService_ForeignBlock(t *testing.T) {
	svc, blockRepo, entryRepo := setupTestExportService(t)
	blockID := seedExportBlock(t, blockRepo, entryRepo)

	_, _, err := svc.BlockXLSX(context.Background(), blockID, "mallory", testZone)
	if !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("expected ErrBlockNotFound, got %v", err)
	}
}

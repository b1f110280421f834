package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aubrey-sherman/baby-bootcamp-be/internal/dto"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/service"
	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/response"
)

// FeedingHandler serves the feeding block and entry endpoints.
type FeedingHandler struct {
	feedingSvc service.FeedingService
}

// NewFeedingHandler creates a FeedingHandler.
func NewFeedingHandler(feedingSvc service.FeedingService) *FeedingHandler {
	return &FeedingHandler{feedingSvc: feedingSvc}
}

// weekAnchor resolves the optional ?week= query parameter. It defaults
// to the current moment so a bare request shows the current week.
func weekAnchor(c *gin.Context) (time.Time, bool) {
	raw := c.Query("week")
	if raw == "" {
		return time.Now(), true
	}
	return parseClientDate(c, raw)
}

// CreateBlock creates a feeding block and materializes its initial
// entries.
// POST /api/v1/blocks
func (h *FeedingHandler) CreateBlock(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.feedingSvc.CreateBlockWithEntries(c.Request.Context(), username, req.IsEliminating, GetTimezone(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}

// ListBlocks returns the caller's blocks ordered by number.
// GET /api/v1/blocks
func (h *FeedingHandler) ListBlocks(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	result, err := h.feedingSvc.ListBlocks(c.Request.Context(), username)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// GetWeekEntries returns (filling in as needed) the entries for the
// week containing the anchor moment.
// GET /api/v1/blocks/:blockID/entries?week=...
func (h *FeedingHandler) GetWeekEntries(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	anchor, ok := weekAnchor(c)
	if !ok {
		return
	}

	result, err := h.feedingSvc.EntriesForWeek(c.Request.Context(), c.Param("blockID"), username, anchor, GetTimezone(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// ExtendEntries materializes entries forward from a date.
// POST /api/v1/blocks/:blockID/entries
func (h *FeedingHandler) ExtendEntries(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.ExtendEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	fromDate, ok := parseClientDate(c, req.FromDate)
	if !ok {
		return
	}

	result, err := h.feedingSvc.ExtendEntriesForward(c.Request.Context(), c.Param("blockID"), username, fromDate, GetTimezone(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateEntryTimes shifts the time of day of every entry from the given
// moment's day onward.
// PATCH /api/v1/blocks/:blockID/times
func (h *FeedingHandler) UpdateEntryTimes(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	newTime, err := time.Parse(time.RFC3339, req.Time)
	if err != nil {
		response.BadRequest(c, 10001, "invalid time")
		return
	}

	result, err := h.feedingSvc.UpdateAllEntryTimes(c.Request.Context(), c.Param("blockID"), username, newTime, GetTimezone(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// StartElimination begins the elimination phase of a block.
// PUT /api/v1/blocks/:blockID/elimination
func (h *FeedingHandler) StartElimination(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.StartEliminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	startDate, ok := parseClientDate(c, req.StartDate)
	if !ok {
		return
	}

	anchor, ok := weekAnchor(c)
	if !ok {
		return
	}

	result, err := h.feedingSvc.StartElimination(c.Request.Context(), c.Param("blockID"), username, startDate, *req.BaselineVolume, anchor, GetTimezone(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateEntryVolume records a volume on an entry, applying the
// elimination glide path when the block is eliminating.
// PATCH /api/v1/entries/:entryID/volume
func (h *FeedingHandler) UpdateEntryVolume(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	anchor, ok := weekAnchor(c)
	if !ok {
		return
	}

	result, err := h.feedingSvc.UpdateEntryVolume(c.Request.Context(), c.Param("entryID"), username, *req.VolumeInOunces, anchor, GetTimezone(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteBlock removes a block, its entries, and renumbers the blocks
// above it.
// DELETE /api/v1/blocks/:blockID
func (h *FeedingHandler) DeleteBlock(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	if err := h.feedingSvc.DeleteBlock(c.Request.Context(), c.Param("blockID"), username); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteEntry removes a single entry.
// DELETE /api/v1/entries/:entryID
func (h *FeedingHandler) DeleteEntry(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	if err := h.feedingSvc.DeleteEntry(c.Request.Context(), c.Param("entryID"), username); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

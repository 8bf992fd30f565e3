package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/ai"
	"github.com/netslayer67/mws-backend/internal/api/dto"
	"github.com/netslayer67/mws-backend/internal/api/middleware"
	"github.com/netslayer67/mws-backend/internal/domain/checkin"
	"github.com/netslayer67/mws-backend/internal/domain/emotion"
)

const maxImageSize = 10 << 20 // 10 MiB upload cap

type CheckinHandler struct {
	checkinService checkin.Service
	detector       *ai.Client
	logger         *zap.Logger
}

func NewCheckinHandler(
	checkinService checkin.Service,
	detector *ai.Client,
	logger *zap.Logger,
) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
		detector:       detector,
		logger:         logger,
	}
}

// Submit stores today's check-in for the authenticated user. A second
// submission on the same day replaces the first.
func (h *CheckinHandler) Submit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.SubmitCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := checkin.SubmitInput{
		UserID:        userID,
		WeatherType:   req.WeatherType,
		SelectedMoods: req.SelectedMoods,
		PresenceLevel: req.PresenceLevel,
		CapacityLevel: req.CapacityLevel,
		Note:          req.Note,
		AIAnalysis:    req.AIAnalysis,
		AIGenerated:   req.AIGenerated,
	}
	if req.CheckinDate != "" {
		parsed, err := time.Parse("2006-01-02", req.CheckinDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "checkin_date must be YYYY-MM-DD"})
			return
		}
		input.CheckinDate = parsed
	}

	record, err := h.checkinService.Submit(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, checkin.ErrInvalidWeather) || errors.Is(err, checkin.ErrInvalidLevel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to submit check-in", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit check-in"})
		return
	}

	middleware.CountCheckinSubmitted()
	c.JSON(http.StatusCreated, gin.H{"data": toCheckinResponse(record)})
}

// AnalyzeEmotion accepts a captured frame as multipart form-data under
// the "image" field, runs detection and returns the interpreted
// analysis. Detection failure aborts the request; there is no synthetic
// fallback reading.
func (h *CheckinHandler) AnalyzeEmotion(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	sample, err := h.detector.DetectEmotion(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		middleware.CountEmotionAnalysis("error")
		h.logger.Error("Emotion detection failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "emotion detection failed"})
		return
	}

	result := emotion.Interpret(*sample, nil)
	middleware.CountEmotionAnalysis("ok")

	c.JSON(http.StatusOK, gin.H{"data": dto.EmotionAnalysisResponse{
		Analysis:  result,
		Timestamp: time.Now().UTC(),
	}})
}

// History returns the authenticated user's check-ins for a period.
func (h *CheckinHandler) History(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	period := c.DefaultQuery("period", "week")
	records, err := h.checkinService.PersonalHistory(c.Request.Context(), userID, period, time.Now().UTC())
	if err != nil {
		h.logger.Error("Failed to load check-in history", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	responses := make([]dto.CheckinResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toCheckinResponse(&records[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

func toCheckinResponse(record *checkin.Checkin) dto.CheckinResponse {
	return dto.CheckinResponse{
		ID:            record.ID,
		UserID:        record.UserID,
		CheckinDate:   record.CheckinDate.Format("2006-01-02"),
		WeatherType:   record.WeatherType,
		SelectedMoods: record.SelectedMoods,
		PresenceLevel: record.PresenceLevel,
		CapacityLevel: record.CapacityLevel,
		Note:          record.Note,
		AIAnalysis:    record.AIAnalysis,
		AIGenerated:   record.AIGenerated,
		CreatedAt:     record.CreatedAt,
	}
}

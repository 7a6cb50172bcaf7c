package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/models/response_models"
	"nudgeup/internal/services"
	"nudgeup/pkg/utils"
)

type HabitsController struct {
	habitService      services.HabitServiceInterface
	completionService services.CompletionServiceInterface
}

func NewHabitsController(
	habitService services.HabitServiceInterface,
	completionService services.CompletionServiceInterface,
) *HabitsController {
	return &HabitsController{
		habitService:      habitService,
		completionService: completionService,
	}
}

func (hc *HabitsController) CreateHabitHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	var req services.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	habit, err := hc.habitService.CreateHabit(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toHabitResponse(habit), "Habit created")
}

func (hc *HabitsController) ListHabitsHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	habits, err := hc.habitService.ListHabits(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]response_models.HabitResponse, 0, len(habits))
	for i := range habits {
		out = append(out, toHabitResponse(&habits[i]))
	}
	utils.RespondSuccess(c, out, "Fetched habits")
}

func (hc *HabitsController) DeleteHabitHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := hc.habitService.DeleteHabit(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Habit deleted")
}

func (hc *HabitsController) ToggleCompletionHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Date string `json:"date"`
	}
	// Empty body means today.
	_ = c.ShouldBindJSON(&req)

	var date time.Time
	if req.Date != "" {
		parsed, ok := utils.ParseDayKey(req.Date, time.Local)
		if !ok {
			utils.RespondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	completed, err := hc.completionService.ToggleCompletion(c.Request.Context(), userID, c.Param("id"), date)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"completed": completed}, "Completion toggled")
}

func (hc *HabitsController) StreakHandler(c *gin.Context) {
	userID := c.GetString("user_id")
	habitID := c.Param("id")
	ctx := c.Request.Context()

	habit, err := hc.habitService.GetHabit(ctx, userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	daily, err := hc.completionService.DailyStreak(ctx, userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	weeklyCount, err := hc.completionService.WeeklyCompletionCount(ctx, userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.StreakResponse{
		HabitID:     habitID,
		DailyStreak: daily,
		WeeklyCount: weeklyCount,
	}
	if habit.Frequency == db_models.FrequencyWeekly {
		weekStreak, err := hc.completionService.WeeklyStreak(ctx, userID, habitID, habit.TimesPerWeek)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		resp.WeekStreak = weekStreak
	}
	utils.RespondSuccess(c, resp, "Fetched streaks")
}

func (hc *HabitsController) ShareHabitHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		GroupIDs []string `json:"groupIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	habit, err := hc.habitService.ShareHabit(c.Request.Context(), userID, c.Param("id"), req.GroupIDs)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toHabitResponse(habit), "Habit shared")
}

func (hc *HabitsController) DayBucketHandler(c *gin.Context) {
	userID := c.GetString("user_id")

	date, ok := utils.ParseDayKey(c.Param("date"), time.Local)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	bucket, err := hc.completionService.CompletionBucket(c.Request.Context(), userID, date)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.DaySummary{
		Date:   utils.DayKey(date),
		Bucket: bucket,
	}, "Fetched day summary")
}

func toHabitResponse(h *db_models.Habit) response_models.HabitResponse {
	return response_models.HabitResponse{
		ID:           h.ID,
		Name:         h.Name,
		Icon:         h.Icon,
		Frequency:    string(h.Frequency),
		TimesPerWeek: h.TimesPerWeek,
		GroupIDs:     h.GroupIDs,
		CreatedAt:    h.CreatedAt,
		Completed:    h.Completed,
		Streak:       h.Streak,
	}
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/Kariqs/maxtech-api/models"
	"gorm.io/gorm"
)

const (
	dayStart = "00:00:00"
	dayEnd   = "23:59:59"
)

// BuildSaleWindow combines YYYY-MM-DD dates with optional HH:MM[:SS] times
// into a UTC window. Missing times default to the start and end of the day.
func BuildSaleWindow(startDate, endDate, startTime, endTime string) (time.Time, time.Time, error) {
	start, err := parseDateTime(startDate, startTime, dayStart)
	if err != nil {
		return time.Time{}, time.Time{}, wrapError(ErrValidation, "Invalid start date", err)
	}
	end, err := parseDateTime(endDate, endTime, dayEnd)
	if err != nil {
		return time.Time{}, time.Time{}, wrapError(ErrValidation, "Invalid end date", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, newError(ErrValidation, "End date must be after start date")
	}
	return start, end, nil
}

func parseDateTime(date, clock, fallback string) (time.Time, error) {
	if clock == "" {
		clock = fallback
	}
	if len(clock) == len("15:04") {
		clock += ":00"
	}
	return time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, time.UTC)
}

// ActiveSale returns the most recent active sale whose window contains now.
func ActiveSale(ctx context.Context, db *gorm.DB, now time.Time) (*models.Sale, error) {
	now = now.UTC()
	var sale models.Sale
	err := db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("start_date desc").
		First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "No active sale")
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

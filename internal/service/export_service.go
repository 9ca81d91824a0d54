package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"bptrack/internal/repository"
)

// ExportService renders a user's readings as downloadable payloads.
type ExportService interface {
	CSV(ctx context.Context, userID uint) ([]byte, error)
	JSON(ctx context.Context, userID uint) ([]byte, error)
	Summary(ctx context.Context, userID uint) ([]byte, error)
}

type exportService struct {
	users    repository.UserRepository
	readings repository.ReadingRepository
}

// NewExportService creates a new export service.
func NewExportService(users repository.UserRepository, readings repository.ReadingRepository) ExportService {
	return &exportService{users: users, readings: readings}
}

// CSV renders all readings, newest first.
func (s *exportService) CSV(ctx context.Context, userID uint) ([]byte, error) {
	readings, err := s.readings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Systolic", "Diastolic", "Reading Date", "Notes", "Created At"}); err != nil {
		return nil, err
	}
	for _, r := range readings {
		note := ""
		if r.Note != nil {
			note = *r.Note
		}
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			strconv.Itoa(r.Systolic),
			strconv.Itoa(r.Diastolic),
			r.ReadingTime.Format(time.RFC3339),
			note,
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders all readings as an indented JSON array.
func (s *exportService) JSON(ctx context.Context, userID uint) ([]byte, error) {
	readings, err := s.readings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(readings, "", "  ")
}

// Summary renders a plain-text report of the user's totals and averages.
func (s *exportService) Summary(ctx context.Context, userID uint) ([]byte, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.readings.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	lastReading := "None"
	if stats.LastReadingTime != nil {
		lastReading = stats.LastReadingTime.Format(time.RFC1123)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Blood Pressure Readings Summary\n")
	fmt.Fprintf(&buf, "===============================\n\n")
	fmt.Fprintf(&buf, "Patient: %s\n", user.Name)
	fmt.Fprintf(&buf, "Email: %s\n", user.Email)
	fmt.Fprintf(&buf, "Report Generated: %s\n\n", time.Now().Format(time.RFC1123))
	fmt.Fprintf(&buf, "Statistics:\n")
	fmt.Fprintf(&buf, "-----------\n")
	fmt.Fprintf(&buf, "Total Readings: %d\n", stats.TotalReadings)
	fmt.Fprintf(&buf, "Average Systolic: %.0f mmHg\n", stats.AvgSystolic)
	fmt.Fprintf(&buf, "Average Diastolic: %.0f mmHg\n", stats.AvgDiastolic)
	fmt.Fprintf(&buf, "Last Reading: %s\n\n", lastReading)
	fmt.Fprintf(&buf, "This report was generated by the Blood Pressure Tracker application.\n")
	return buf.Bytes(), nil
}

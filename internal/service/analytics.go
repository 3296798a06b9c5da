package service

import (
	"fmt"
	"math"
	"sort"
	"time"
	"volunteer-hub/internal/models"
	"volunteer-hub/internal/repository"

	"github.com/sirupsen/logrus"
)

const DefaultLeaderboardLimit = 20

// Award tier boundaries in hours, inclusive.
const (
	TierAHours = 20
	TierBHours = 15
	TierCHours = 1
)

type LeaderboardItem struct {
	VolunteerID  uint    `json:"volunteer_id"`
	FullName     string  `json:"full_name"`
	TotalMinutes int     `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
}

type AwardItem struct {
	VolunteerID uint    `json:"volunteer_id"`
	FullName    string  `json:"full_name"`
	Tier        string  `json:"tier"`
	TotalHours  float64 `json:"total_hours"`
}

type ShiftCoverageItem struct {
	ShiftID            uint   `json:"shift_id"`
	ShiftTitle         string `json:"shift_title"`
	RequiredVolunteers int    `json:"required_volunteers"`
	AttendedVolunteers int    `json:"attended_volunteers"`
}

type EventCoverage struct {
	EventID       uint                `json:"event_id"`
	TotalRequired int                 `json:"total_required"`
	TotalAttended int                 `json:"total_attended"`
	Shifts        []ShiftCoverageItem `json:"shifts"`
}

type Reliability struct {
	VolunteerID    uint    `json:"volunteer_id"`
	AttendanceRate float64 `json:"attendance_rate"`
	AttendedCount  int     `json:"attended_count"`
	AbsentCount    int     `json:"absent_count"`
	LateCount      int     `json:"late_count"`
	TotalRecords   int     `json:"total_records"`
}

type HoursBreakdownItem struct {
	ShiftID       uint   `json:"shift_id"`
	EventTitle    string `json:"event_title"`
	MinutesWorked int    `json:"minutes_worked"`
}

type VolunteerHours struct {
	VolunteerID  uint                 `json:"volunteer_id"`
	FromDate     *time.Time           `json:"from_date"`
	ToDate       *time.Time           `json:"to_date"`
	TotalMinutes int                  `json:"total_minutes"`
	TotalHours   float64              `json:"total_hours"`
	Breakdown    []HoursBreakdownItem `json:"breakdown"`
}

// AnalyticsService derives read-side aggregates from stored attendance.
// Nothing is materialized; every call recomputes from the store.
type AnalyticsService struct {
	attendanceRepo repository.AttendanceRepository
	shiftRepo      repository.ShiftRepository
	eventRepo      repository.EventRepository
	volunteerRepo  repository.VolunteerRepository
	logger         *logrus.Logger
}

func NewAnalyticsService(
	attendanceRepo repository.AttendanceRepository,
	shiftRepo repository.ShiftRepository,
	eventRepo repository.EventRepository,
	volunteerRepo repository.VolunteerRepository,
) *AnalyticsService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AnalyticsService{
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
		eventRepo:      eventRepo,
		volunteerRepo:  volunteerRepo,
		logger:         logger,
	}
}

// rangeFilter widens calendar dates to an inclusive window over the parent
// shift's start_time: from 00:00:00 through 23:59:59.999999.
func rangeFilter(volunteerID *uint, fromDate, toDate *time.Time) repository.AttendanceFilter {
	filter := repository.AttendanceFilter{VolunteerID: volunteerID}
	if fromDate != nil {
		from := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, fromDate.Location())
		filter.From = &from
	}
	if toDate != nil {
		to := time.Date(toDate.Year(), toDate.Month(), toDate.Day(), 23, 59, 59, 999999000, toDate.Location())
		filter.To = &to
	}
	return filter
}

func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

// Leaderboard sums minutes worked per volunteer within the optional range,
// ordered descending. Ties keep first-seen order; limit <= 0 uses the
// default of 20.
func (s *AnalyticsService) Leaderboard(fromDate, toDate *time.Time, limit int) ([]LeaderboardItem, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := s.attendanceRepo.ListDetailed(rangeFilter(nil, fromDate, toDate))
	if err != nil {
		return nil, err
	}

	totals := map[uint]*LeaderboardItem{}
	var order []uint
	for _, row := range rows {
		item, seen := totals[row.VolunteerID]
		if !seen {
			item = &LeaderboardItem{
				VolunteerID: row.VolunteerID,
				FullName:    row.Volunteer.FullName,
			}
			totals[row.VolunteerID] = item
			order = append(order, row.VolunteerID)
		}
		item.TotalMinutes += row.MinutesWorked
	}

	board := make([]LeaderboardItem, 0, len(order))
	for _, id := range order {
		item := totals[id]
		item.TotalHours = roundHours(item.TotalMinutes)
		board = append(board, *item)
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].TotalMinutes > board[j].TotalMinutes
	})

	if len(board) > limit {
		board = board[:limit]
	}

	s.logger.WithField("entries", len(board)).Debug("Leaderboard computed")

	return board, nil
}

// Awards classifies the unlimited leaderboard into tiers by total hours.
// Volunteers under one hour are excluded entirely.
func (s *AnalyticsService) Awards(fromDate, toDate *time.Time) ([]AwardItem, error) {
	board, err := s.Leaderboard(fromDate, toDate, math.MaxInt32)
	if err != nil {
		return nil, err
	}

	awards := make([]AwardItem, 0, len(board))
	for _, item := range board {
		var tier string
		switch {
		case item.TotalHours >= TierAHours:
			tier = "Tier A"
		case item.TotalHours >= TierBHours:
			tier = "Tier B"
		case item.TotalHours >= TierCHours:
			tier = "Tier C"
		default:
			continue
		}
		awards = append(awards, AwardItem{
			VolunteerID: item.VolunteerID,
			FullName:    item.FullName,
			Tier:        tier,
			TotalHours:  item.TotalHours,
		})
	}

	return awards, nil
}

// EventCoverage compares required versus actually checked-in headcount per
// shift of one event.
func (s *AnalyticsService) EventCoverage(eventID uint) (*EventCoverage, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event not found", ErrNotFound)
	}

	shifts, err := s.shiftRepo.GetByEventID(eventID)
	if err != nil {
		return nil, err
	}

	coverage := &EventCoverage{
		EventID: eventID,
		Shifts:  make([]ShiftCoverageItem, 0, len(shifts)),
	}
	for _, shift := range shifts {
		attended, err := s.attendanceRepo.CountCheckedInByShift(shift.ID)
		if err != nil {
			return nil, err
		}
		coverage.TotalRequired += shift.RequiredVolunteers
		coverage.TotalAttended += attended
		coverage.Shifts = append(coverage.Shifts, ShiftCoverageItem{
			ShiftID:            shift.ID,
			ShiftTitle:         shift.Title,
			RequiredVolunteers: shift.RequiredVolunteers,
			AttendedVolunteers: attended,
		})
	}

	return coverage, nil
}

// VolunteerReliability counts one volunteer's attendance by status within
// the optional range. Present and late both count toward the rate.
func (s *AnalyticsService) VolunteerReliability(volunteerID uint, fromDate, toDate *time.Time) (*Reliability, error) {
	volunteer, err := s.volunteerRepo.GetByID(volunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, fmt.Errorf("%w: volunteer not found", ErrNotFound)
	}

	rows, err := s.attendanceRepo.ListDetailed(rangeFilter(&volunteerID, fromDate, toDate))
	if err != nil {
		return nil, err
	}

	reliability := &Reliability{VolunteerID: volunteerID, TotalRecords: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case models.StatusPresent:
			reliability.AttendedCount++
		case models.StatusAbsent:
			reliability.AbsentCount++
		case models.StatusLate:
			reliability.LateCount++
		}
	}

	if reliability.TotalRecords > 0 {
		rate := float64(reliability.AttendedCount+reliability.LateCount) / float64(reliability.TotalRecords)
		reliability.AttendanceRate = math.Round(rate*100) / 100
	}

	return reliability, nil
}

// VolunteerHours breaks one volunteer's minutes down per shift within the
// optional range.
func (s *AnalyticsService) VolunteerHours(volunteerID uint, fromDate, toDate *time.Time) (*VolunteerHours, error) {
	volunteer, err := s.volunteerRepo.GetByID(volunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, fmt.Errorf("%w: volunteer not found", ErrNotFound)
	}

	rows, err := s.attendanceRepo.ListDetailed(rangeFilter(&volunteerID, fromDate, toDate))
	if err != nil {
		return nil, err
	}

	hours := &VolunteerHours{
		VolunteerID: volunteerID,
		FromDate:    fromDate,
		ToDate:      toDate,
		Breakdown:   make([]HoursBreakdownItem, 0, len(rows)),
	}
	for _, row := range rows {
		hours.TotalMinutes += row.MinutesWorked
		hours.Breakdown = append(hours.Breakdown, HoursBreakdownItem{
			ShiftID:       row.ShiftID,
			EventTitle:    row.Shift.Event.Title,
			MinutesWorked: row.MinutesWorked,
		})
	}
	hours.TotalHours = roundHours(hours.TotalMinutes)

	return hours, nil
}

package api

import (
	"context"

	"github.com/Wass76/robotic-card-dashboard/internal/client"
)

// Response keys for the per-user attendance payload. The first is what the
// backend actually sends, trailing space included; the second covers the
// day it gets fixed.
const (
	entryRecordsKey        = "Entry records For this user "
	entryRecordsKeyTrimmed = "Entry records For this user"
)

// AttendanceService reads entry and exit events.
type AttendanceService struct {
	client *client.Client
}

// List returns all attendance records.
func (s *AttendanceService) List(ctx context.Context) ([]AttendanceRecord, error) {
	payload, err := s.client.Get(ctx, EndpointAttendance, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords("api.attendance.list", payload)
}

// ByUser returns the attendance records of one member. The records sit
// under an oddly named object key rather than in the payload root.
func (s *AttendanceService) ByUser(ctx context.Context, userID int) ([]AttendanceRecord, error) {
	payload, err := s.client.Get(ctx, attendanceByUser(userID), nil)
	if err != nil {
		return nil, err
	}
	if record := asRecord(payload); record != nil {
		if items := asSlice(record[entryRecordsKey]); items != nil {
			return decodeRecords("api.attendance.byUser", items)
		}
		if items := asSlice(record[entryRecordsKeyTrimmed]); items != nil {
			return decodeRecords("api.attendance.byUser", items)
		}
	}
	return decodeRecords("api.attendance.byUser", payload)
}

// Monthly returns the current month's attendance total.
func (s *AttendanceService) Monthly(ctx context.Context) (int, error) {
	payload, err := s.client.Get(ctx, EndpointMonthlyAttendance, nil)
	if err != nil {
		return 0, err
	}
	var result struct {
		Total int `json:"total"`
	}
	if err := rebind("api.attendance.monthly", payload, &result); err != nil {
		return 0, err
	}
	return result.Total, nil
}

func decodeRecords(op string, payload any) ([]AttendanceRecord, error) {
	items := asSlice(payload)
	if items == nil {
		return []AttendanceRecord{}, nil
	}
	records := make([]AttendanceRecord, 0, len(items))
	if err := rebind(op, items, &records); err != nil {
		return nil, err
	}
	return records, nil
}

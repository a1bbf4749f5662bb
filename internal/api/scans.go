package api

import (
	"context"

	"github.com/Wass76/robotic-card-dashboard/internal/client"
)

// ScanService covers the card reader surface: recording a scan and
// listing card codes the backend did not recognize.
type ScanService struct {
	client *client.Client
}

// RecordScan posts a card scan. The request has no body; the card code
// travels in the path. A known card yields the attendance record the
// backend created for it.
func (s *ScanService) RecordScan(ctx context.Context, cardCode string) (*AttendanceRecord, error) {
	payload, err := s.client.Post(ctx, transactionForCard(cardCode), nil, nil)
	if err != nil {
		return nil, err
	}
	record := &AttendanceRecord{}
	if err := rebind("api.scans.record", payload, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UnknownCards lists card codes that were scanned but matched no member.
// The backend puts the list under a key confusingly named "code".
func (s *ScanService) UnknownCards(ctx context.Context) ([]string, error) {
	payload, err := s.client.Get(ctx, EndpointUnknownCards, nil)
	if err != nil {
		return nil, err
	}
	if record := asRecord(payload); record != nil {
		payload = record["code"]
	}
	items := asSlice(payload)
	codes := make([]string, 0, len(items))
	for _, item := range items {
		if code, ok := item.(string); ok {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
)

func TestSubmitRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitRequest
		wantErr bool
	}{
		{"valid mpesa", SubmitRequest{LeaseID: "l1", TransactionCode: "QX1", Method: MethodMpesa}, false},
		{"valid bank", SubmitRequest{LeaseID: "l1", TransactionCode: "QX1", Method: MethodBank}, false},
		{"missing lease", SubmitRequest{TransactionCode: "QX1", Method: MethodMpesa}, true},
		{"missing code", SubmitRequest{LeaseID: "l1", Method: MethodMpesa}, true},
		{"bad method", SubmitRequest{LeaseID: "l1", TransactionCode: "QX1", Method: "cash"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected err: %v", err)
			}
		})
	}
}

func TestPeriodStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC), time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := PeriodStart(tt.in); !got.Equal(tt.want) {
			t.Errorf("PeriodStart(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

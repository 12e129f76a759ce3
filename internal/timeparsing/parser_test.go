package timeparsing

import (
	"testing"
	"time"
)

func TestParseCompactDuration(t *testing.T) {
	// Fixed reference time for deterministic tests
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "+6h adds 6 hours",
			input: "+6h",
			want:  time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name:  "+1d adds 1 day",
			input: "+1d",
			want:  time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "+2w adds 2 weeks",
			input: "+2w",
			want:  time.Date(2025, 6, 29, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "-1d subtracts 1 day",
			input: "-1d",
			want:  time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "3m without sign adds 3 months",
			input: "3m",
			want:  time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "1y without sign adds 1 year",
			input: "1y",
			want:  time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:    "bare number rejected",
			input:   "7",
			wantErr: true,
		},
		{
			name:    "unknown unit rejected",
			input:   "+3q",
			wantErr: true,
		},
		{
			name:    "empty string rejected",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompactDuration(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCompactDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseCompactDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTargetDate(t *testing.T) {
	now := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{
			name:      "register native MM/DD/YY",
			input:     "11/20/25",
			wantYear:  2025,
			wantMonth: time.November,
			wantDay:   20,
		},
		{
			name:      "four digit year",
			input:     "11/20/2025",
			wantYear:  2025,
			wantMonth: time.November,
			wantDay:   20,
		},
		{
			name:      "ISO date",
			input:     "2025-12-01",
			wantYear:  2025,
			wantMonth: time.December,
			wantDay:   1,
		},
		{
			name:      "compact duration",
			input:     "+2w",
			wantYear:  2025,
			wantMonth: time.November,
			wantDay:   24,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "free text",
			input:   "stabilize CX flows by EOQ maybe",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTargetDate(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTargetDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseTargetDate(%q) = %v, want %d-%d-%d", tt.input, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestParseNaturalLanguage(t *testing.T) {
	// Fixed reference time: Wednesday, January 15, 2025
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	got, err := ParseNaturalLanguage("tomorrow", now)
	if err != nil {
		t.Fatalf("ParseNaturalLanguage(tomorrow) error = %v", err)
	}
	if got.Day() != 16 || got.Month() != time.January {
		t.Errorf("ParseNaturalLanguage(tomorrow) = %v, want Jan 16", got)
	}

	if _, err := ParseNaturalLanguage("definitely not a date", now); err == nil {
		t.Error("ParseNaturalLanguage accepted free text")
	}
}

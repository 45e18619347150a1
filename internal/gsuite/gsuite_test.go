package gsuite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestAppendBooking(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	client, err := NewSheetsClient(context.Background(), "sheet-1",
		option.WithEndpoint(srv.URL), option.WithoutAuthentication())
	require.NoError(t, err)

	err = client.AppendBooking(context.Background(), BookingRow{
		ID:            "bk_1",
		CustomerName:  "Riley James",
		Email:         "riley@example.com",
		Package:       "full-day",
		RequestedDate: "2026-09-12",
		RequestedSlot: "09:00",
	})
	require.NoError(t, err)

	assert.True(t, strings.Contains(gotPath, "sheet-1"), "path %q should target the spreadsheet", gotPath)
	values, ok := gotBody["values"].([]any)
	require.True(t, ok)
	require.Len(t, values, 1)
	row, ok := values[0].([]any)
	require.True(t, ok)
	assert.Equal(t, "bk_1", row[0])
	assert.Equal(t, "Riley James", row[1])
}

func TestBusyWindows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"calendars": map[string]any{
				"coach@colemanmx.com": map[string]any{
					"busy": []any{
						map[string]any{"start": "2026-09-12T09:00:00Z", "end": "2026-09-12T11:00:00Z"},
						map[string]any{"start": "2026-09-12T13:00:00Z", "end": "2026-09-12T15:00:00Z"},
					},
				},
			},
		})
	}))
	defer srv.Close()

	client, err := NewCalendarClient(context.Background(), "coach@colemanmx.com",
		option.WithEndpoint(srv.URL), option.WithoutAuthentication())
	require.NoError(t, err)

	day := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	windows, err := client.BusyWindows(context.Background(), day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, 9, windows[0].Start.Hour())
}

func TestOverlaps(t *testing.T) {
	day := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	windows := []BusyWindow{
		{Start: day.Add(9 * time.Hour), End: day.Add(11 * time.Hour)},
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", day.Add(9 * time.Hour), day.Add(10 * time.Hour), true},
		{"straddles end", day.Add(10 * time.Hour), day.Add(12 * time.Hour), true},
		{"adjacent after", day.Add(11 * time.Hour), day.Add(13 * time.Hour), false},
		{"adjacent before", day.Add(7 * time.Hour), day.Add(9 * time.Hour), false},
		{"disjoint", day.Add(15 * time.Hour), day.Add(17 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(windows, tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

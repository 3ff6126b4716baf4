package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}
}

func TestTime_JSONRoundTrip(t *testing.T) {
	orig := Time(time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC))

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `"2025-06-15T08:30:00Z"` {
		t.Errorf("Marshal = %s, want RFC 3339", data)
	}

	var back Time
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Time().Equal(orig.Time()) {
		t.Errorf("round trip = %v, want %v", back, orig)
	}
}

func TestTime_ZeroMarshalsEmpty(t *testing.T) {
	var zero Time
	data, err := json.Marshal(zero)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `""` {
		t.Errorf("Marshal zero = %s, want empty string", data)
	}
}

func TestTime_ScanDatetimeString(t *testing.T) {
	var tt Time
	if err := tt.Scan("2024-03-01 10:20:30"); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	want := time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)
	if !tt.Time().Equal(want) {
		t.Errorf("Scan = %v, want %v", tt.Time(), want)
	}
}

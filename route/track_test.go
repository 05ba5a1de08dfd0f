package route

import (
	"testing"

	"gridnav/geodesy"
)

func TestTrackMinimumSpacing(t *testing.T) {
	tr := NewTrack(10)

	start := geodesy.Coordinate{Lat: 28.6139, Lng: 77.2090}
	if !tr.Add(start) {
		t.Fatal("first point should always record")
	}

	// ~1 m east: too close, dropped.
	if tr.Add(geodesy.Coordinate{Lat: 28.6139, Lng: 77.20901}) {
		t.Error("point inside spacing threshold was recorded")
	}

	// ~100 m east: recorded.
	if !tr.Add(geodesy.Coordinate{Lat: 28.6139, Lng: 77.2100}) {
		t.Error("point beyond spacing threshold was dropped")
	}

	if n := len(tr.Points()); n != 2 {
		t.Errorf("track has %d points, want 2", n)
	}
}

func TestTrackRejectsInvalid(t *testing.T) {
	tr := NewTrack(10)
	if tr.Add(geodesy.Coordinate{Lat: 95, Lng: 0}) {
		t.Error("invalid coordinate was recorded")
	}
	if len(tr.Points()) != 0 {
		t.Error("track not empty")
	}
}

func TestTrackReset(t *testing.T) {
	tr := NewTrack(10)
	tr.Add(geodesy.Coordinate{Lat: 28.6, Lng: 77.2})
	tr.Reset()
	if len(tr.Points()) != 0 {
		t.Error("reset left points behind")
	}
}

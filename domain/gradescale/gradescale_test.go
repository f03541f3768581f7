package gradescale

import "testing"

func TestByID(t *testing.T) {
	if s, ok := ByID("5"); !ok || s.ID != FiveID {
		t.Errorf("ByID(5) = %v, %v", s.ID, ok)
	}
	if s, ok := ByID("4"); !ok || s.ID != FourID {
		t.Errorf("ByID(4) = %v, %v", s.ID, ok)
	}
	if _, ok := ByID("3"); ok {
		t.Error("expected unknown scale id to report ok=false")
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		scale  Scale
		letter string
		want   float64
		ok     bool
	}{
		{Five, "A", 5.00, true},
		{Five, "B+", 4.50, true},
		{Five, "C", 3.00, true},
		{Five, "F", 1.00, true},
		{Five, "E", 0, false},
		{Four, "A", 4.00, true},
		{Four, "F", 0.00, true},
	}
	for _, tt := range tests {
		got, ok := tt.scale.Points(tt.letter)
		if ok != tt.ok || got != tt.want {
			t.Errorf("scale %s Points(%q) = %v, %v; want %v, %v",
				tt.scale.ID, tt.letter, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	top := Five.Bands[0]

	if b := Five.Classify(5.0); b.Code != "A+" {
		t.Errorf("Classify(5.0) = %s, want A+", b.Code)
	}
	if b := Five.Classify(4.75); b.Code != "A+" {
		t.Errorf("Classify(4.75) = %s, want A+", b.Code)
	}
	if b := Five.Classify(4.74); b.Code != "A" {
		t.Errorf("Classify(4.74) = %s, want A", b.Code)
	}
	if b := Five.Classify(4.33); b.Classification != "جيد جداً مرتفع" {
		t.Errorf("Classify(4.33) = %q, want جيد جداً مرتفع", b.Classification)
	}

	// Values past the axis edges clamp rather than fall through.
	if b := Five.Classify(5.2); b != top {
		t.Errorf("Classify above max = %v, want top band", b)
	}
	if b := Five.Classify(-0.5); b.Code != "F" {
		t.Errorf("Classify below min = %s, want F", b.Code)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Every value on a fine grid must land in some band, including the
	// two-decimal gaps between Max and the next Min.
	for i := 0; i <= 500; i++ {
		v := float64(i) / 100
		b := Five.Classify(v)
		if b.Code == "" {
			t.Fatalf("Classify(%v) returned empty band", v)
		}
	}
}

func TestBandsOrderedAndNonOverlapping(t *testing.T) {
	for _, s := range []Scale{Five, Four} {
		for i := 0; i < len(s.Bands)-1; i++ {
			hi, lo := s.Bands[i], s.Bands[i+1]
			if hi.Min <= lo.Max {
				t.Errorf("scale %s: band %s overlaps band %s", s.ID, hi.Code, lo.Code)
			}
		}
		if s.Bands[0].Max != s.Max {
			t.Errorf("scale %s: top band max %v != scale max %v", s.ID, s.Bands[0].Max, s.Max)
		}
	}
}

func TestGradeForMark(t *testing.T) {
	if g, ok := Five.GradeForMark(92); !ok || g.Letter != "A" {
		t.Errorf("GradeForMark(92) = %v, %v", g.Letter, ok)
	}
	if g, ok := Five.GradeForMark(59); !ok || g.Letter != "F" {
		t.Errorf("GradeForMark(59) = %v, %v", g.Letter, ok)
	}
	if _, ok := Five.GradeForMark(101); ok {
		t.Error("expected mark above 100 to report ok=false")
	}
}

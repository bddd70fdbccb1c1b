package master

import (
	"testing"
	"time"
)

func TestGravityForBoundaries(t *testing.T) {
	cases := []struct {
		speedLevel int
		want       float64
	}{
		{0, 4.0 / 256.0},
		{29, 4.0 / 256.0},
		{30, 6.0 / 256.0},
		{299, 1.0},
		{300, 2.0},
		{500, 20.0},
		{1000, 20.0},
	}
	for _, c := range cases {
		if got := gravityFor(c.speedLevel); got != c.want {
			t.Errorf("gravityFor(%d) = %v, want %v", c.speedLevel, got, c.want)
		}
	}
}

func TestAreForAndLineAreForDiverge(t *testing.T) {
	if got := areFor(650); got != 27 {
		t.Errorf("areFor(650) = %d, want 27", got)
	}
	if got := lineAreFor(650); got != 18 {
		t.Errorf("lineAreFor(650) = %d, want 18 (line_are buckets shift 100 earlier)", got)
	}
}

func TestDasForAndLockDelayForBoundaries(t *testing.T) {
	if got := dasFor(499); got != 15 {
		t.Errorf("dasFor(499) = %d, want 15", got)
	}
	if got := dasFor(500); got != 9 {
		t.Errorf("dasFor(500) = %d, want 9", got)
	}
	if got := lockDelayFor(900); got != 17 {
		t.Errorf("lockDelayFor(900) = %d, want 17", got)
	}
}

func TestCoolBorderAdjustsDownFromPreviousSection(t *testing.T) {
	prev := 10 * time.Second
	got := coolBorder(1, &prev)
	want := prev + 2*time.Second
	if got != want {
		t.Errorf("coolBorder(1, 10s) = %v, want %v (flat border is higher, so adjusted wins)", got, want)
	}

	flat := coolBorder(1, nil)
	if flat != 52*time.Second {
		t.Errorf("coolBorder(1, nil) = %v, want flat 52s", flat)
	}
}

func TestRegretBorderTable(t *testing.T) {
	if got := regretBorder(0); got != 90*time.Second {
		t.Errorf("regretBorder(0) = %v, want 90s", got)
	}
	if got := regretBorder(9); got != 50*time.Second {
		t.Errorf("regretBorder(9) = %v, want 50s", got)
	}
}

func TestGradePointBonusForKnownRows(t *testing.T) {
	if got := gradePointBonusFor(0, 4); got != 50 {
		t.Errorf("gradePointBonusFor(0,4) = %d, want 50", got)
	}
	if got := gradePointBonusFor(31, 1); got != 2 {
		t.Errorf("gradePointBonusFor(31,1) = %d, want 2", got)
	}
}

func TestGradeLabelClampsOutOfRange(t *testing.T) {
	if got := gradeLabel(-5); got != "9" {
		t.Errorf("gradeLabel(-5) = %q, want %q", got, "9")
	}
	if got := gradeLabel(1000); got != "GM" {
		t.Errorf("gradeLabel(1000) = %q, want %q", got, "GM")
	}
	if got := gradeLabel(0); got != "9" {
		t.Errorf("gradeLabel(0) = %q, want %q", got, "9")
	}
}

func TestGradeToRankMonotonic(t *testing.T) {
	for i := 1; i < len(gradeToRank); i++ {
		if gradeToRank[i] < gradeToRank[i-1] {
			t.Errorf("gradeToRank not monotonic at %d: %d then %d", i, gradeToRank[i-1], gradeToRank[i])
		}
	}
}

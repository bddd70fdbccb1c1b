package master

import "time"

// gravityFor returns the gravity (cells/frame) for a given speed_level,
// piecewise by range. Copied bit-for-bit from the reference tuning.
func gravityFor(speedLevel int) float64 {
	switch {
	case speedLevel <= 29:
		return 4.0 / 256.0
	case speedLevel <= 34:
		return 6.0 / 256.0
	case speedLevel <= 39:
		return 8.0 / 256.0
	case speedLevel <= 49:
		return 10.0 / 256.0
	case speedLevel <= 59:
		return 12.0 / 256.0
	case speedLevel <= 69:
		return 16.0 / 256.0
	case speedLevel <= 79:
		return 32.0 / 256.0
	case speedLevel <= 89:
		return 48.0 / 256.0
	case speedLevel <= 99:
		return 64.0 / 256.0
	case speedLevel <= 119:
		return 80.0 / 256.0
	case speedLevel <= 139:
		return 96.0 / 256.0
	case speedLevel <= 159:
		return 112.0 / 256.0
	case speedLevel <= 169:
		return 128.0 / 256.0
	case speedLevel <= 199:
		return 144.0 / 256.0
	case speedLevel <= 219:
		return 4.0 / 256.0
	case speedLevel <= 229:
		return 32.0 / 256.0
	case speedLevel <= 232:
		return 64.0 / 256.0
	case speedLevel <= 235:
		return 96.0 / 256.0
	case speedLevel <= 238:
		return 128.0 / 256.0
	case speedLevel <= 242:
		return 160.0 / 256.0
	case speedLevel <= 246:
		return 192.0 / 256.0
	case speedLevel <= 250:
		return 224.0 / 256.0
	case speedLevel <= 299:
		return 1.0
	case speedLevel <= 329:
		return 2.0
	case speedLevel <= 359:
		return 3.0
	case speedLevel <= 399:
		return 4.0
	case speedLevel <= 419:
		return 5.0
	case speedLevel <= 449:
		return 4.0
	case speedLevel <= 499:
		return 3.0
	default:
		return 20.0
	}
}

func areFor(speedLevel int) int {
	switch {
	case speedLevel <= 699:
		return 27
	case speedLevel <= 799:
		return 18
	case speedLevel <= 999:
		return 14
	case speedLevel <= 1099:
		return 8
	case speedLevel <= 1199:
		return 7
	default:
		return 6
	}
}

func lineAreFor(speedLevel int) int {
	switch {
	case speedLevel <= 599:
		return 27
	case speedLevel <= 699:
		return 18
	case speedLevel <= 799:
		return 14
	case speedLevel <= 1099:
		return 8
	case speedLevel <= 1199:
		return 7
	default:
		return 6
	}
}

func dasFor(speedLevel int) int {
	switch {
	case speedLevel <= 499:
		return 15
	case speedLevel <= 899:
		return 9
	default:
		return 6
	}
}

func lineClearDelayFor(speedLevel int) int {
	switch {
	case speedLevel <= 499:
		return 40
	case speedLevel <= 599:
		return 25
	case speedLevel <= 699:
		return 16
	case speedLevel <= 799:
		return 12
	case speedLevel <= 1099:
		return 6
	case speedLevel <= 1199:
		return 5
	default:
		return 4
	}
}

func lockDelayFor(speedLevel int) int {
	switch {
	case speedLevel <= 899:
		return 30
	case speedLevel <= 1099:
		return 17
	default:
		return 15
	}
}

// coolBorder returns the time-to-beat for a section's cool bonus, for
// rank 0..8. Adjusted downward when the previous section's cool-line
// time plus 2s undercuts the flat value.
func coolBorder(rank int, prevCoolLineSectionTime *time.Duration) time.Duration {
	set := [9]time.Duration{
		52 * time.Second,
		52 * time.Second,
		49 * time.Second,
		45 * time.Second,
		45 * time.Second,
		42 * time.Second,
		42 * time.Second,
		38 * time.Second,
		38 * time.Second,
	}[rank]
	if rank > 0 && prevCoolLineSectionTime != nil {
		if adjusted := *prevCoolLineSectionTime + 2*time.Second; adjusted < set {
			return adjusted
		}
	}
	return set
}

// regretBorder returns the section-time ceiling for rank 0..9 beyond
// which a regret penalty is raised.
func regretBorder(rank int) time.Duration {
	return [10]time.Duration{
		90 * time.Second,
		75 * time.Second,
		75 * time.Second,
		68 * time.Second,
		60 * time.Second,
		60 * time.Second,
		50 * time.Second,
		50 * time.Second,
		50 * time.Second,
		50 * time.Second,
	}[rank]
}

// gradePointBonus is the 32x4 grade-point award table, indexed by
// [grade][clearedLines-1]. Copied bit-for-bit; reimplementers must not
// alter these values.
var gradePointBonus = [32][4]int{
	{10, 20, 40, 50},
	{10, 20, 30, 40},
	{10, 20, 30, 40},
	{10, 15, 30, 40},
	{10, 15, 20, 40},
	{5, 15, 20, 30},
	{5, 10, 20, 30},
	{5, 10, 15, 30},
	{5, 10, 15, 30},
	{5, 10, 15, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
	{2, 12, 13, 30},
}

func gradePointBonusFor(grade, clearedLines int) int {
	return gradePointBonus[grade][clearedLines-1]
}

// rollPoints and mrollPoints are the per-line-clear roll-point awards
// during a Normal and Invisible credit roll, respectively, indexed by
// [clearedLines-1].
var rollPoints = [4]int{4, 8, 12, 26}
var mrollPoints = [4]int{10, 20, 30, 100}

// gradeToRank maps a grade (0..31) to the base rank index used by the
// aggregate-grade formula.
var gradeToRank = [32]int{
	0, 1, 2, 3, 4, 5, 5, 6, 6, 7, 7, 7, 8, 8, 8, 9,
	9, 9, 10, 11, 12, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17,
}

// gradeLabels is the display label for each aggregate-grade index,
// clamped to this table's bounds by the caller.
var gradeLabels = []string{
	"9", "8", "7", "6", "5", "4", "3", "2", "1",
	"S1", "S2", "S3", "S4", "S5", "S6", "S7", "S8", "S9",
	"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9",
	"M", "MK", "MV", "MO", "MM", "GM",
}

// gradeLabel clamps index into gradeLabels' bounds before indexing, per
// the rule that aggregate grade is display-only and never panics.
func gradeLabel(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(gradeLabels) {
		index = len(gradeLabels) - 1
	}
	return gradeLabels[index]
}

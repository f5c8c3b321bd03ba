// internal/analyzer/sound.go
package analyzer

// SoundReport is the per-minute onset histogram and its busiest minutes.
type SoundReport struct {
	ByMinute []int // len == run minutes
	Top      []int // minute indices, candidate order
	Dropped  int   // onsets past the end of the run
}

// TopCount is how many busiest minutes a run of runMinutes reports.
func TopCount(runMinutes int) int {
	return runMinutes/6 + 1
}

// AnalyzeSound buckets onset seconds by minute over runMinutes buckets and
// picks the busiest minutes with TopMinutes.
func AnalyzeSound(onsets []int, runMinutes int) SoundReport {
	if runMinutes < 0 {
		runMinutes = 0
	}
	r := SoundReport{ByMinute: make([]int, runMinutes)}

	for _, sec := range onsets {
		m := sec / 60
		if sec < 0 || m >= runMinutes {
			r.Dropped++
			continue
		}
		r.ByMinute[m]++
	}

	r.Top = TopMinutes(r.ByMinute, TopCount(runMinutes))
	return r
}

// TopMinutes selects k candidate minutes. Candidates start as 0..k-1; each
// later minute replaces the first candidate with a strictly lower count,
// then scanning stops for that minute. This is a single-replacement pass,
// not a true top-k: the report has always been ranked this way.
func TopMinutes(byMinute []int, k int) []int {
	if k > len(byMinute) {
		k = len(byMinute)
	}
	if k <= 0 {
		return nil
	}

	top := make([]int, k)
	for i := range top {
		top[i] = i
	}

	for i := k; i < len(byMinute); i++ {
		for j := range top {
			if byMinute[i] > byMinute[top[j]] {
				top[j] = i
				break
			}
		}
	}
	return top
}

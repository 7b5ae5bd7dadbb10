package domain

import "sort"

// AgeStage is a coarse age bucket code: "b", "y", "a" or "s".
type AgeStage string

const (
	AgeBaby   AgeStage = "b"
	AgeYoung  AgeStage = "y"
	AgeAdult  AgeStage = "a"
	AgeSenior AgeStage = "s"
)

// MonthRange is an inclusive range of ages in months.
type MonthRange struct {
	Min int
	Max int
}

// Contains reports whether months lies inside r.
func (r MonthRange) Contains(months int) bool {
	return months >= r.Min && months <= r.Max
}

// AgeStages is the single age policy of the service. It governs preference
// matching and Dog.AgeStage. Ages above the senior maximum belong to no stage.
var AgeStages = map[AgeStage]MonthRange{
	AgeBaby:   {Min: 0, Max: 6},
	AgeYoung:  {Min: 7, Max: 12},
	AgeAdult:  {Min: 13, Max: 84},
	AgeSenior: {Min: 85, Max: 360},
}

// ageStageOrder lists stages youngest first.
var ageStageOrder = []AgeStage{AgeBaby, AgeYoung, AgeAdult, AgeSenior}

// StageForAge returns the stage containing months, or "" if none does.
func StageForAge(months int) AgeStage {
	for _, st := range ageStageOrder {
		if AgeStages[st].Contains(months) {
			return st
		}
	}
	return ""
}

// AgeMonthRange expands stage codes into the sorted set of ages (in months)
// they cover. Unknown codes are ignored and duplicates collapse.
func AgeMonthRange(stages []AgeStage) []int {
	seen := make(map[int]struct{})
	for _, st := range stages {
		r, ok := AgeStages[st]
		if !ok {
			continue
		}
		for m := r.Min; m <= r.Max; m++ {
			seen[m] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

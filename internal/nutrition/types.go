// Package nutrition implements the metabolic calculations behind the daily
// calorie target: age from date of birth, Basal Metabolic Rate (revised
// Harris-Benedict) and Total Daily Energy Expenditure with per-goal
// adjustments.
package nutrition

// Gender selects the BMR coefficient set. Anything other than male uses the
// female coefficients.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel scales BMR into TDEE.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityVery      ActivityLevel = "very"
)

// Goal is one dietary objective. A profile holds a non-empty set of them and
// each goal contributes an independent calorie delta to the target.
//
// GoalGain and GoalBuildMuscle are deliberately distinct members with
// different deltas (+300 vs +500); callers that treat them as one concept
// must pick one.
type Goal string

const (
	GoalLose        Goal = "lose"
	GoalMaintain    Goal = "maintain"
	GoalGain        Goal = "gain"
	GoalBuildMuscle Goal = "build_muscle"
)

// GoalSet is an ordered set of goals. Order is insertion order; membership is
// by value. The zero value is an empty set.
type GoalSet []Goal

// Contains reports whether g is a member of s.
func (s GoalSet) Contains(g Goal) bool {
	for _, x := range s {
		if x == g {
			return true
		}
	}
	return false
}

// Add returns s with g appended, or s unchanged if g is already a member.
func (s GoalSet) Add(g Goal) GoalSet {
	if s.Contains(g) {
		return s
	}
	out := make(GoalSet, 0, len(s)+1)
	out = append(out, s...)
	return append(out, g)
}

// Remove returns s without g. Removing a goal that is not a member is a no-op.
func (s GoalSet) Remove(g Goal) GoalSet {
	out := make(GoalSet, 0, len(s))
	for _, x := range s {
		if x != g {
			out = append(out, x)
		}
	}
	return out
}

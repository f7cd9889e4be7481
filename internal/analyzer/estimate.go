package analyzer

// Reading rates in words per minute by grade band. Younger students read
// slower, so the same chapter yields a longer lesson.
const (
	rateLowerPrimary = 100 // grades 1-3
	rateUpperPrimary = 150 // grades 4-6
	rateSecondary    = 200 // grades 7+

	minDurationMinutes = 15
	maxDurationMinutes = 60
	minActivityMinutes = 10
)

// EstimateDuration maps a chapter's word count and grade level to a
// lesson length in minutes, clamped to [15, 60]. Activity time is added
// on top of reading time.
func EstimateDuration(wordCount, gradeLevel int) int {
	rate := rateSecondary
	switch {
	case gradeLevel <= 3:
		rate = rateLowerPrimary
	case gradeLevel <= 6:
		rate = rateUpperPrimary
	}

	readingTime := wordCount / rate
	activityTime := readingTime / 2
	if activityTime < minActivityMinutes {
		activityTime = minActivityMinutes
	}

	total := readingTime + activityTime
	if total < minDurationMinutes {
		return minDurationMinutes
	}
	if total > maxDurationMinutes {
		return maxDurationMinutes
	}
	return total
}

// DetermineDifficulty maps a grade level to the lesson's difficulty tier.
// Non-decreasing in gradeLevel.
func DetermineDifficulty(gradeLevel int) LessonLevel {
	switch {
	case gradeLevel <= 3:
		return LevelBeginner
	case gradeLevel <= 6:
		return LevelIntermediate
	default:
		return LevelAdvanced
	}
}

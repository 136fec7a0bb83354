package report

import "time"

// Пороговая таблица баллов IQ теста
var gradeThresholds = []int{150, 140, 130, 120, 110, 100, 90, 70}

// Grade возвращает категорию балла от 1 (лучшая) до 9
func Grade(score int) int {
	for i, threshold := range gradeThresholds {
		if score > threshold {
			return i + 1
		}
	}
	return len(gradeThresholds) + 1
}

// Age возвращает полное количество лет на момент now
func Age(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

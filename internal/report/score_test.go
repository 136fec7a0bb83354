package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		score int
		grade int
	}{
		{250, 1},
		{151, 1},
		{150, 2},
		{141, 2},
		{140, 3},
		{130, 4},
		{120, 5},
		{110, 6},
		{100, 7},
		{91, 7},
		{90, 8},
		{71, 8},
		{70, 9},
		{50, 9},
		{0, 9},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.grade, Grade(tc.score), "балл %d", tc.score)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate time.Time
		age       int
	}{
		{"день рождения уже прошел", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 24},
		{"день рождения сегодня", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), 24},
		{"день рождения впереди", time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC), 23},
		{"дата в будущем", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.age, Age(tc.birthDate, now))
		})
	}
}

package progress_service

import (
	"math"
	"sort"
	"time"

	"ai-school/internal/models"

	"github.com/google/uuid"
)

var weekdayLabels = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// Aggregate сводит уроки с прогрессом пользователя в статистику.
// Дни активности считаются по UTC датам completed_at
func Aggregate(rows []models.LessonProgressRow, now time.Time) *models.ProgressStats {
	stats := &models.ProgressStats{
		Courses: []models.CourseProgress{},
	}

	byCourse := make(map[uuid.UUID]int)
	perDay := make(map[time.Time]int)

	for _, row := range rows {
		idx, ok := byCourse[row.CourseID]
		if !ok {
			idx = len(stats.Courses)
			byCourse[row.CourseID] = idx
			stats.Courses = append(stats.Courses, models.CourseProgress{
				CourseID: row.CourseID,
				Title:    row.CourseTitle,
			})
		}
		course := &stats.Courses[idx]

		stats.TotalLessons++
		stats.TotalMinutes += row.Duration
		course.Lessons++

		if row.IsCompleted {
			stats.CompletedLessons++
			stats.CompletedMinutes += row.Duration
			course.Completed++
			if row.CompletedAt != nil {
				perDay[dayOf(*row.CompletedAt)]++
			}
		}
	}

	stats.Percentage = percent(stats.CompletedLessons, stats.TotalLessons)
	for i := range stats.Courses {
		stats.Courses[i].Percentage = percent(stats.Courses[i].Completed, stats.Courses[i].Lessons)
	}

	days := make([]time.Time, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	stats.CurrentStreak, stats.LongestStreak = streaks(days, dayOf(now))
	stats.Weekly = week(perDay, dayOf(now))
	stats.Achievements = achievements(stats)

	return stats
}

// percent - round(part/total*100), 0 при пустом total
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// streaks принимает отсортированные дни с активностью.
// Текущая серия жива, если последний день активности сегодня или вчера
func streaks(days []time.Time, today time.Time) (current, longest int) {
	run := 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	if len(days) == 0 {
		return 0, 0
	}
	last := days[len(days)-1]
	if !last.Equal(today) && !last.Equal(today.AddDate(0, 0, -1)) {
		return 0, longest
	}
	return run, longest
}

// week - активность по дням текущей недели, начиная с понедельника
func week(perDay map[time.Time]int, today time.Time) []models.DayActivity {
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)

	out := make([]models.DayActivity, 0, 7)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		n := perDay[d]
		out = append(out, models.DayActivity{
			Day:       weekdayLabels[i],
			Date:      d.Format("2006-01-02"),
			Lessons:   n,
			Completed: n > 0,
		})
	}
	return out
}

func achievements(s *models.ProgressStats) []models.Achievement {
	courseDone := false
	for _, c := range s.Courses {
		if c.Lessons > 0 && c.Completed == c.Lessons {
			courseDone = true
			break
		}
	}

	return []models.Achievement{
		{
			ID:          "first_lesson",
			Title:       "Первый шаг",
			Description: "Завершите первый урок",
			Icon:        "🎯",
			Earned:      s.CompletedLessons > 0,
		},
		{
			ID:          "week_streak",
			Title:       "Неделя без перерыва",
			Description: "Занимайтесь 7 дней подряд",
			Icon:        "🔥",
			Earned:      s.LongestStreak >= 7,
		},
		{
			ID:          "course_completed",
			Title:       "Курс пройден",
			Description: "Завершите все уроки одного курса",
			Icon:        "🏆",
			Earned:      courseDone,
		},
		{
			ID:          "half_way",
			Title:       "Половина пути",
			Description: "Пройдите половину всех уроков",
			Icon:        "🚀",
			Earned:      s.TotalLessons > 0 && s.CompletedLessons*2 >= s.TotalLessons,
		},
	}
}

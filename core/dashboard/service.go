// Package dashboard derives read-only summary statistics from the five
// collections. All derivations are pure functions of the loaded data.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mnogodumalon/kurs96/core/catalog"
)

// upcomingLimit caps the "next courses" list.
const upcomingLimit = 4

type (
	// Catalog is the slice of catalog.Service the dashboard reads from.
	Catalog interface {
		QueryLecturers(ctx context.Context, search string) ([]catalog.Lecturer, error)
		QueryParticipants(ctx context.Context, search string) ([]catalog.Participant, error)
		QueryRooms(ctx context.Context, search string) ([]catalog.Room, error)
		QueryCourses(ctx context.Context, search string) ([]catalog.Course, error)
		QueryEnrollments(ctx context.Context, search string) ([]catalog.Enrollment, error)
	}

	Service struct {
		catalog Catalog
	}

	Summary struct {
		LecturerCount    int `json:"lecturer_count"`
		ParticipantCount int `json:"participant_count"`
		RoomCount        int `json:"room_count"`
		CourseCount      int `json:"course_count"`
		EnrollmentCount  int `json:"enrollment_count"`
		PaidEnrollments  int `json:"paid_enrollments"`

		Revenue float64 `json:"revenue"`

		ActiveCourses       []CourseDigest   `json:"active_courses"`
		UpcomingCourses     []UpcomingCourse `json:"upcoming_courses"`
		EnrollmentsPerMonth []MonthCount     `json:"enrollments_per_month"`
	}

	CourseDigest struct {
		ID        string      `json:"record_id"`
		Title     string      `json:"title"`
		StartDate string      `json:"start_date"`
		EndDate   null.String `json:"end_date"`
	}

	UpcomingCourse struct {
		CourseDigest
		Enrolled        int          `json:"enrolled"`
		MaxParticipants null.Int     `json:"max_participants"`
		Price           null.Float64 `json:"price"`
	}

	MonthCount struct {
		Month string `json:"month"`
		Count int    `json:"count"`
	}
)

func NewService(c Catalog) *Service {
	return &Service{catalog: c}
}

// Summary loads all five collections and derives the overview for `now`.
// A failing load fails the whole summary; there is no partial view.
func (svc *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	lecturers, err := svc.catalog.QueryLecturers(ctx, "")
	if err != nil {
		return Summary{}, errors.Wrap(err, "loading lecturers")
	}
	participants, err := svc.catalog.QueryParticipants(ctx, "")
	if err != nil {
		return Summary{}, errors.Wrap(err, "loading participants")
	}
	rooms, err := svc.catalog.QueryRooms(ctx, "")
	if err != nil {
		return Summary{}, errors.Wrap(err, "loading rooms")
	}
	courses, err := svc.catalog.QueryCourses(ctx, "")
	if err != nil {
		return Summary{}, errors.Wrap(err, "loading courses")
	}
	enrollments, err := svc.catalog.QueryEnrollments(ctx, "")
	if err != nil {
		return Summary{}, errors.Wrap(err, "loading enrollments")
	}

	today := truncateToDay(now)
	sum := Summary{
		LecturerCount:       len(lecturers),
		ParticipantCount:    len(participants),
		RoomCount:           len(rooms),
		CourseCount:         len(courses),
		EnrollmentCount:     len(enrollments),
		PaidEnrollments:     countPaid(enrollments),
		Revenue:             Revenue(courses, enrollments),
		ActiveCourses:       activeCourses(courses, today),
		UpcomingCourses:     upcomingCourses(courses, enrollments, today),
		EnrollmentsPerMonth: monthHistogram(enrollments),
	}
	return sum, nil
}

// IsActive reports whether the current date falls within [start, end], both
// inclusive. A course missing either date is never active.
func IsActive(crs catalog.Course, today time.Time) bool {
	start, ok := catalog.ParseDate(crs.StartDate)
	if !ok {
		return false
	}
	end, ok := catalog.ParseDate(crs.EndDate.String)
	if !ok {
		return false
	}
	return !start.After(today) && !end.Before(today)
}

// IsUpcoming reports whether the course starts strictly after the current date.
func IsUpcoming(crs catalog.Course, today time.Time) bool {
	start, ok := catalog.ParseDate(crs.StartDate)
	return ok && start.After(today)
}

// Revenue sums price x enrollment count over all courses.
func Revenue(courses []catalog.Course, enrollments []catalog.Enrollment) float64 {
	perCourse := enrollmentsPerCourse(enrollments)
	var total float64
	for _, crs := range courses {
		total += crs.Price.Float64 * float64(perCourse[crs.ID])
	}
	return total
}

func activeCourses(courses []catalog.Course, today time.Time) []CourseDigest {
	active := make([]CourseDigest, 0)
	for _, crs := range courses {
		if IsActive(crs, today) {
			active = append(active, digest(crs))
		}
	}
	return active
}

func upcomingCourses(courses []catalog.Course, enrollments []catalog.Enrollment, today time.Time) []UpcomingCourse {
	perCourse := enrollmentsPerCourse(enrollments)
	upcoming := make([]UpcomingCourse, 0)
	for _, crs := range courses {
		if !IsUpcoming(crs, today) {
			continue
		}
		upcoming = append(upcoming, UpcomingCourse{
			CourseDigest:    digest(crs),
			Enrolled:        perCourse[crs.ID],
			MaxParticipants: crs.MaxParticipants,
			Price:           crs.Price,
		})
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].StartDate < upcoming[j].StartDate })
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	return upcoming
}

// monthHistogram counts enrollments per calendar month of their enrollment
// date. Months without enrollments are absent, not zero.
func monthHistogram(enrollments []catalog.Enrollment) []MonthCount {
	counts := make(map[time.Month]int)
	for _, enr := range enrollments {
		if date, ok := catalog.ParseDate(enr.Date); ok {
			counts[date.Month()]++
		}
	}
	histogram := make([]MonthCount, 0, len(counts))
	for m := time.January; m <= time.December; m++ {
		if n, ok := counts[m]; ok {
			histogram = append(histogram, MonthCount{Month: monthLabels[m-1], Count: n})
		}
	}
	return histogram
}

// German short month names, matching the labels the hosted apps were set up with.
var monthLabels = [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"}

func enrollmentsPerCourse(enrollments []catalog.Enrollment) map[string]int {
	perCourse := make(map[string]int, len(enrollments))
	for _, enr := range enrollments {
		if enr.CourseID.Valid {
			perCourse[enr.CourseID.String]++
		}
	}
	return perCourse
}

func countPaid(enrollments []catalog.Enrollment) int {
	var n int
	for _, enr := range enrollments {
		if enr.Paid {
			n++
		}
	}
	return n
}

func digest(crs catalog.Course) CourseDigest {
	return CourseDigest{
		ID:        crs.ID,
		Title:     crs.Title,
		StartDate: crs.StartDate,
		EndDate:   crs.EndDate,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

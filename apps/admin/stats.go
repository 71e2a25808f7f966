package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

func (cli *commandLine) stats() error {
	summary, err := cli.dashboardSvc.Summary(context.Background(), time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "building summary")
	}

	fmt.Fprintf(cli.out, "Lecturers:    %d\n", summary.LecturerCount)
	fmt.Fprintf(cli.out, "Participants: %d\n", summary.ParticipantCount)
	fmt.Fprintf(cli.out, "Rooms:        %d\n", summary.RoomCount)
	fmt.Fprintf(cli.out, "Courses:      %d (%d active)\n", summary.CourseCount, len(summary.ActiveCourses))
	fmt.Fprintf(cli.out, "Enrollments:  %d (%d paid)\n", summary.EnrollmentCount, summary.PaidEnrollments)
	fmt.Fprintf(cli.out, "Revenue:      %.2f EUR\n", summary.Revenue)

	if len(summary.UpcomingCourses) > 0 {
		fmt.Fprintln(cli.out, "Upcoming courses:")
		for _, crs := range summary.UpcomingCourses {
			fmt.Fprintf(cli.out, "  %s  %s (%d enrolled)\n", crs.StartDate, crs.Title, crs.Enrolled)
		}
	}
	if len(summary.EnrollmentsPerMonth) > 0 {
		fmt.Fprintln(cli.out, "Enrollments per month:")
		for _, mc := range summary.EnrollmentsPerMonth {
			fmt.Fprintf(cli.out, "  %s: %d\n", mc.Month, mc.Count)
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/mnogodumalon/kurs96/core/catalog"
)

var sampleCourses = []catalog.NewCourse{
	{Title: "Go für Einsteiger", Description: "Grundlagen der Programmierung mit Go"},
	{Title: "Datenanalyse mit Python", Description: "Pandas, NumPy und Visualisierung"},
	{Title: "Webentwicklung Basics", Description: "HTML, CSS und JavaScript"},
	{Title: "Projektmanagement kompakt", Description: "Agile Methoden im Überblick"},
	{Title: "Rhetorik und Präsentation", Description: "Sicher auftreten und überzeugen"},
	{Title: "Excel Aufbaukurs", Description: "Pivot-Tabellen und Makros"},
}

// seed creates a small consistent data set: lecturers and rooms first, then
// courses referencing them, then participants and enrollments referencing the
// courses.
func (cli *commandLine) seed(courseCount int) error {
	ctx := context.Background()

	lecturers := []catalog.NewLecturer{
		{Name: "Dr. Anna Weber", Email: "anna.weber@example.com", Specialty: "Informatik"},
		{Name: "Prof. Jonas Keller", Email: "jonas.keller@example.com", Specialty: "Mathematik"},
	}
	lecturerIDs := make([]string, 0, len(lecturers))
	for _, nl := range lecturers {
		lecturer, err := cli.catalogSvc.CreateLecturer(ctx, nl)
		if err != nil {
			return errors.Wrap(err, "seeding lecturers")
		}
		lecturerIDs = append(lecturerIDs, lecturer.ID)
	}

	capacity := 24
	rooms := []catalog.NewRoom{
		{Name: "Raum 101", Building: "Hauptgebäude", Capacity: &capacity},
		{Name: "Raum 202", Building: "Nebengebäude"},
	}
	roomIDs := make([]string, 0, len(rooms))
	for _, nr := range rooms {
		room, err := cli.catalogSvc.CreateRoom(ctx, nr)
		if err != nil {
			return errors.Wrap(err, "seeding rooms")
		}
		roomIDs = append(roomIDs, room.ID)
	}

	if courseCount > len(sampleCourses) {
		courseCount = len(sampleCourses)
	}
	today := time.Now().UTC()
	courseIDs := make([]string, 0, courseCount)
	for i := 0; i < courseCount; i++ {
		nc := sampleCourses[i]
		price := float64(90 + 30*i)
		maxParticipants := 12 + 2*i
		nc.StartDate = today.AddDate(0, 0, 7*(i+1)).Format("2006-01-02")
		nc.EndDate = today.AddDate(0, 0, 7*(i+1)+28).Format("2006-01-02")
		nc.Price = &price
		nc.MaxParticipants = &maxParticipants
		nc.LecturerID = lecturerIDs[i%len(lecturerIDs)]
		nc.RoomID = roomIDs[i%len(roomIDs)]
		course, err := cli.catalogSvc.CreateCourse(ctx, nc)
		if err != nil {
			return errors.Wrap(err, "seeding courses")
		}
		courseIDs = append(courseIDs, course.ID)
	}

	participants := []catalog.NewParticipant{
		{Name: "Lena Hoffmann", Email: "lena.hoffmann@example.com", Birthdate: "1993-04-12"},
		{Name: "Mehmet Yilmaz", Email: "mehmet.yilmaz@example.com"},
		{Name: "Sofia Richter", Email: "sofia.richter@example.com", Birthdate: "1988-11-02"},
	}
	participantIDs := make([]string, 0, len(participants))
	for _, np := range participants {
		participant, err := cli.catalogSvc.CreateParticipant(ctx, np)
		if err != nil {
			return errors.Wrap(err, "seeding participants")
		}
		participantIDs = append(participantIDs, participant.ID)
	}

	var enrollmentCount int
	for i, participantID := range participantIDs {
		ne := catalog.NewEnrollment{
			ParticipantID: participantID,
			CourseID:      courseIDs[i%len(courseIDs)],
			Date:          today.Format("2006-01-02"),
			Paid:          i%2 == 0,
		}
		if _, err := cli.catalogSvc.CreateEnrollment(ctx, ne); err != nil {
			return errors.Wrap(err, "seeding enrollments")
		}
		enrollmentCount++
	}

	fmt.Fprintf(cli.out, "seeded %d lecturers, %d rooms, %d courses, %d participants, %d enrollments\n",
		len(lecturerIDs), len(roomIDs), len(courseIDs), len(participantIDs), enrollmentCount)
	return nil
}

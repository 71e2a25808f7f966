package catalog

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/mnogodumalon/kurs96/core/record"
)

// Service exposes typed CRUD over the five collections. It keeps no state
// between calls: every query re-fetches its working set from the backend, and
// queries over collections with reference fields load the full referenced
// collections up front to resolve display labels.
type Service struct {
	store    record.Store
	refs     record.RefMaker
	apps     AppIDs
	validate *validator.Validate
}

func NewService(store record.Store, refs record.RefMaker, apps AppIDs, validate *validator.Validate) *Service {
	return &Service{
		store:    store,
		refs:     refs,
		apps:     apps,
		validate: validate,
	}
}

// Lecturers

func (svc *Service) QueryLecturers(ctx context.Context, search string) ([]Lecturer, error) {
	recs, err := svc.store.List(ctx, svc.apps.Lecturers)
	if err != nil {
		return nil, errors.Wrap(err, "listing lecturers")
	}
	lecturers := make([]Lecturer, 0, len(recs))
	for _, rec := range recs {
		if !rec.Matches(search) {
			continue
		}
		lecturers = append(lecturers, lecturerFromRecord(rec))
	}
	return lecturers, nil
}

func (svc *Service) CreateLecturer(ctx context.Context, nl NewLecturer) (Lecturer, error) {
	nl.Clean()
	if err := svc.validate.Struct(nl); err != nil {
		return Lecturer{}, err
	}
	rec, err := svc.store.Create(ctx, svc.apps.Lecturers, nl.fields())
	if err != nil {
		return Lecturer{}, errors.Wrap(err, "creating lecturer")
	}
	return lecturerFromRecord(rec), nil
}

func (svc *Service) UpdateLecturer(ctx context.Context, id string, nl NewLecturer) error {
	nl.Clean()
	if err := svc.validate.Struct(nl); err != nil {
		return err
	}
	return errors.Wrap(svc.store.Update(ctx, svc.apps.Lecturers, id, nl.fields()), "updating lecturer")
}

func (svc *Service) DeleteLecturer(ctx context.Context, id string) error {
	return errors.Wrap(svc.store.Delete(ctx, svc.apps.Lecturers, id), "deleting lecturer")
}

// Participants

func (svc *Service) QueryParticipants(ctx context.Context, search string) ([]Participant, error) {
	recs, err := svc.store.List(ctx, svc.apps.Participants)
	if err != nil {
		return nil, errors.Wrap(err, "listing participants")
	}
	participants := make([]Participant, 0, len(recs))
	for _, rec := range recs {
		if !rec.Matches(search) {
			continue
		}
		participants = append(participants, participantFromRecord(rec))
	}
	return participants, nil
}

func (svc *Service) CreateParticipant(ctx context.Context, np NewParticipant) (Participant, error) {
	np.Clean()
	if err := svc.validate.Struct(np); err != nil {
		return Participant{}, err
	}
	rec, err := svc.store.Create(ctx, svc.apps.Participants, np.fields())
	if err != nil {
		return Participant{}, errors.Wrap(err, "creating participant")
	}
	return participantFromRecord(rec), nil
}

func (svc *Service) UpdateParticipant(ctx context.Context, id string, np NewParticipant) error {
	np.Clean()
	if err := svc.validate.Struct(np); err != nil {
		return err
	}
	return errors.Wrap(svc.store.Update(ctx, svc.apps.Participants, id, np.fields()), "updating participant")
}

func (svc *Service) DeleteParticipant(ctx context.Context, id string) error {
	return errors.Wrap(svc.store.Delete(ctx, svc.apps.Participants, id), "deleting participant")
}

// Rooms

func (svc *Service) QueryRooms(ctx context.Context, search string) ([]Room, error) {
	recs, err := svc.store.List(ctx, svc.apps.Rooms)
	if err != nil {
		return nil, errors.Wrap(err, "listing rooms")
	}
	rooms := make([]Room, 0, len(recs))
	for _, rec := range recs {
		if !rec.Matches(search) {
			continue
		}
		rooms = append(rooms, roomFromRecord(rec))
	}
	return rooms, nil
}

func (svc *Service) CreateRoom(ctx context.Context, nr NewRoom) (Room, error) {
	nr.Clean()
	if err := svc.validate.Struct(nr); err != nil {
		return Room{}, err
	}
	rec, err := svc.store.Create(ctx, svc.apps.Rooms, nr.fields())
	if err != nil {
		return Room{}, errors.Wrap(err, "creating room")
	}
	return roomFromRecord(rec), nil
}

func (svc *Service) UpdateRoom(ctx context.Context, id string, nr NewRoom) error {
	nr.Clean()
	if err := svc.validate.Struct(nr); err != nil {
		return err
	}
	return errors.Wrap(svc.store.Update(ctx, svc.apps.Rooms, id, nr.fields()), "updating room")
}

func (svc *Service) DeleteRoom(ctx context.Context, id string) error {
	return errors.Wrap(svc.store.Delete(ctx, svc.apps.Rooms, id), "deleting room")
}

// Courses

func (svc *Service) QueryCourses(ctx context.Context, search string) ([]Course, error) {
	recs, err := svc.store.List(ctx, svc.apps.Courses)
	if err != nil {
		return nil, errors.Wrap(err, "listing courses")
	}
	lecturerNames, err := svc.labels(ctx, svc.apps.Lecturers, fldName)
	if err != nil {
		return nil, errors.Wrap(err, "listing lecturers for labels")
	}
	roomNames, err := svc.labels(ctx, svc.apps.Rooms, fldRoomName)
	if err != nil {
		return nil, errors.Wrap(err, "listing rooms for labels")
	}
	courses := make([]Course, 0, len(recs))
	for _, rec := range recs {
		if !rec.Matches(search) {
			continue
		}
		courses = append(courses, courseFromRecord(rec, lecturerNames, roomNames))
	}
	return courses, nil
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	nc.Clean()
	if err := svc.validate.Struct(nc); err != nil {
		return Course{}, err
	}
	rec, err := svc.store.Create(ctx, svc.apps.Courses, nc.fields(svc.refs, svc.apps))
	if err != nil {
		return Course{}, errors.Wrap(err, "creating course")
	}
	return courseFromRecord(rec, nil, nil), nil
}

func (svc *Service) UpdateCourse(ctx context.Context, id string, nc NewCourse) error {
	nc.Clean()
	if err := svc.validate.Struct(nc); err != nil {
		return err
	}
	return errors.Wrap(svc.store.Update(ctx, svc.apps.Courses, id, nc.fields(svc.refs, svc.apps)), "updating course")
}

func (svc *Service) DeleteCourse(ctx context.Context, id string) error {
	return errors.Wrap(svc.store.Delete(ctx, svc.apps.Courses, id), "deleting course")
}

// Enrollments

func (svc *Service) QueryEnrollments(ctx context.Context, search string) ([]Enrollment, error) {
	recs, err := svc.store.List(ctx, svc.apps.Enrollments)
	if err != nil {
		return nil, errors.Wrap(err, "listing enrollments")
	}
	participantNames, err := svc.labels(ctx, svc.apps.Participants, fldName)
	if err != nil {
		return nil, errors.Wrap(err, "listing participants for labels")
	}
	courseTitles, err := svc.labels(ctx, svc.apps.Courses, fldTitle)
	if err != nil {
		return nil, errors.Wrap(err, "listing courses for labels")
	}
	enrollments := make([]Enrollment, 0, len(recs))
	for _, rec := range recs {
		if !rec.Matches(search) {
			continue
		}
		enrollments = append(enrollments, enrollmentFromRecord(rec, participantNames, courseTitles))
	}
	return enrollments, nil
}

func (svc *Service) CreateEnrollment(ctx context.Context, ne NewEnrollment) (Enrollment, error) {
	ne.Clean()
	if err := svc.validate.Struct(ne); err != nil {
		return Enrollment{}, err
	}
	rec, err := svc.store.Create(ctx, svc.apps.Enrollments, ne.fields(svc.refs, svc.apps))
	if err != nil {
		return Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	return enrollmentFromRecord(rec, nil, nil), nil
}

func (svc *Service) UpdateEnrollment(ctx context.Context, id string, ne NewEnrollment) error {
	ne.Clean()
	if err := svc.validate.Struct(ne); err != nil {
		return err
	}
	return errors.Wrap(svc.store.Update(ctx, svc.apps.Enrollments, id, ne.fields(svc.refs, svc.apps)), "updating enrollment")
}

func (svc *Service) DeleteEnrollment(ctx context.Context, id string) error {
	return errors.Wrap(svc.store.Delete(ctx, svc.apps.Enrollments, id), "deleting enrollment")
}

// labels loads one collection and indexes a display field by record id.
func (svc *Service) labels(ctx context.Context, appID, fieldKey string) (map[string]string, error) {
	recs, err := svc.store.List(ctx, appID)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(recs))
	for _, rec := range recs {
		labels[rec.ID] = str(rec.Fields, fieldKey)
	}
	return labels, nil
}

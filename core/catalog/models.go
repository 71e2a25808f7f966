// Package catalog implements the five course-management collections
// (lecturers, participants, rooms, courses, enrollments) on top of the
// backend's generic record representation.
package catalog

import (
	"github.com/volatiletech/null/v8"

	"github.com/mnogodumalon/kurs96/core"
	"github.com/mnogodumalon/kurs96/core/record"
)

// Backend field keys of the hosted apps. The apps were set up in German;
// our API speaks English and maps here.
const (
	fldName      = "name"
	fldEmail     = "email"
	fldPhone     = "telefon"
	fldSpecialty = "fachgebiet"
	fldBirthdate = "geburtsdatum"

	fldRoomName = "raumname"
	fldBuilding = "gebaeude"
	fldCapacity = "kapazitaet"

	fldTitle           = "titel"
	fldDescription     = "beschreibung"
	fldStartDate       = "startdatum"
	fldEndDate         = "enddatum"
	fldMaxParticipants = "max_teilnehmer"
	fldPrice           = "preis"
	fldLecturer        = "dozent"
	fldRoom            = "raum"

	fldParticipant    = "teilnehmer"
	fldCourse         = "kurs"
	fldEnrollmentDate = "anmeldedatum"
	fldPaid           = "bezahlt"
)

// AppIDs holds the backend app id backing each collection.
type AppIDs struct {
	Lecturers    string
	Participants string
	Rooms        string
	Courses      string
	Enrollments  string
}

type (
	Lecturer struct {
		ID        string      `json:"record_id"`
		Name      string      `json:"name"`
		Email     null.String `json:"email"`
		Phone     null.String `json:"phone"`
		Specialty null.String `json:"specialty"`
	}

	Participant struct {
		ID        string      `json:"record_id"`
		Name      string      `json:"name"`
		Email     null.String `json:"email"`
		Phone     null.String `json:"phone"`
		Birthdate null.String `json:"birthdate"` // ISO-8601 date
	}

	Room struct {
		ID       string      `json:"record_id"`
		Name     string      `json:"name"`
		Building null.String `json:"building"`
		Capacity null.Int    `json:"capacity"`
	}

	// Course carries its reference fields both as decoded bare record ids and
	// as display labels resolved from the referenced collections. Unresolved
	// references leave both empty.
	Course struct {
		ID              string       `json:"record_id"`
		Title           string       `json:"title"`
		Description     null.String  `json:"description"`
		StartDate       string       `json:"start_date"` // ISO-8601 date
		EndDate         null.String  `json:"end_date"`
		MaxParticipants null.Int     `json:"max_participants"`
		Price           null.Float64 `json:"price"`
		LecturerID      null.String  `json:"lecturer_id"`
		LecturerName    null.String  `json:"lecturer_name"`
		RoomID          null.String  `json:"room_id"`
		RoomName        null.String  `json:"room_name"`
	}

	Enrollment struct {
		ID              string      `json:"record_id"`
		ParticipantID   null.String `json:"participant_id"`
		ParticipantName null.String `json:"participant_name"`
		CourseID        null.String `json:"course_id"`
		CourseTitle     null.String `json:"course_title"`
		Date            string      `json:"enrollment_date"` // ISO-8601 date
		Paid            bool        `json:"paid"`
	}
)

// Input payloads. Update reuses the create shape: the backend replaces the
// full field set on update.

type (
	NewLecturer struct {
		Name      string `json:"name" validate:"required"`
		Email     string `json:"email" validate:"omitempty,email"`
		Phone     string `json:"phone"`
		Specialty string `json:"specialty"`
	}

	NewParticipant struct {
		Name      string `json:"name" validate:"required"`
		Email     string `json:"email" validate:"omitempty,email"`
		Phone     string `json:"phone"`
		Birthdate string `json:"birthdate" validate:"omitempty,isodate"`
	}

	NewRoom struct {
		Name     string `json:"name" validate:"required"`
		Building string `json:"building"`
		Capacity *int   `json:"capacity" validate:"omitempty,gte=0"`
	}

	NewCourse struct {
		Title           string   `json:"title" validate:"required"`
		Description     string   `json:"description"`
		StartDate       string   `json:"start_date" validate:"required,isodate"`
		EndDate         string   `json:"end_date" validate:"omitempty,isodate"`
		MaxParticipants *int     `json:"max_participants" validate:"omitempty,gte=0"`
		Price           *float64 `json:"price" validate:"omitempty,gte=0"`
		LecturerID      string   `json:"lecturer_id"`
		RoomID          string   `json:"room_id"`
	}

	NewEnrollment struct {
		ParticipantID string `json:"participant_id" validate:"required"`
		CourseID      string `json:"course_id" validate:"required"`
		Date          string `json:"enrollment_date" validate:"required,isodate"`
		Paid          bool   `json:"paid"`
	}
)

func (nl *NewLecturer) Clean() {
	nl.Name = core.CleanString(nl.Name)
	nl.Email = core.CleanString(nl.Email, true /* lower */)
	nl.Phone = core.CleanString(nl.Phone)
	nl.Specialty = core.CleanString(nl.Specialty)
}

func (np *NewParticipant) Clean() {
	np.Name = core.CleanString(np.Name)
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.Phone = core.CleanString(np.Phone)
	np.Birthdate = core.CleanString(np.Birthdate)
}

func (nr *NewRoom) Clean() {
	nr.Name = core.CleanString(nr.Name)
	nr.Building = core.CleanString(nr.Building)
}

func (nc *NewCourse) Clean() {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.StartDate = core.CleanString(nc.StartDate)
	nc.EndDate = core.CleanString(nc.EndDate)
	nc.LecturerID = core.CleanString(nc.LecturerID)
	nc.RoomID = core.CleanString(nc.RoomID)
}

func (ne *NewEnrollment) Clean() {
	ne.ParticipantID = core.CleanString(ne.ParticipantID)
	ne.CourseID = core.CleanString(ne.CourseID)
	ne.Date = core.CleanString(ne.Date)
}

// record <-> model mapping

func lecturerFromRecord(rec record.Record) Lecturer {
	return Lecturer{
		ID:        rec.ID,
		Name:      str(rec.Fields, fldName),
		Email:     nullStr(rec.Fields, fldEmail),
		Phone:     nullStr(rec.Fields, fldPhone),
		Specialty: nullStr(rec.Fields, fldSpecialty),
	}
}

func (nl NewLecturer) fields() map[string]interface{} {
	flds := map[string]interface{}{fldName: nl.Name}
	setStr(flds, fldEmail, nl.Email)
	setStr(flds, fldPhone, nl.Phone)
	setStr(flds, fldSpecialty, nl.Specialty)
	return flds
}

func participantFromRecord(rec record.Record) Participant {
	return Participant{
		ID:        rec.ID,
		Name:      str(rec.Fields, fldName),
		Email:     nullStr(rec.Fields, fldEmail),
		Phone:     nullStr(rec.Fields, fldPhone),
		Birthdate: nullStr(rec.Fields, fldBirthdate),
	}
}

func (np NewParticipant) fields() map[string]interface{} {
	flds := map[string]interface{}{fldName: np.Name}
	setStr(flds, fldEmail, np.Email)
	setStr(flds, fldPhone, np.Phone)
	setStr(flds, fldBirthdate, np.Birthdate)
	return flds
}

func roomFromRecord(rec record.Record) Room {
	return Room{
		ID:       rec.ID,
		Name:     str(rec.Fields, fldRoomName),
		Building: nullStr(rec.Fields, fldBuilding),
		Capacity: nullInt(rec.Fields, fldCapacity),
	}
}

func (nr NewRoom) fields() map[string]interface{} {
	flds := map[string]interface{}{fldRoomName: nr.Name}
	setStr(flds, fldBuilding, nr.Building)
	if nr.Capacity != nil {
		flds[fldCapacity] = *nr.Capacity
	}
	return flds
}

func courseFromRecord(rec record.Record, lecturerNames, roomNames map[string]string) Course {
	crs := Course{
		ID:              rec.ID,
		Title:           str(rec.Fields, fldTitle),
		Description:     nullStr(rec.Fields, fldDescription),
		StartDate:       str(rec.Fields, fldStartDate),
		EndDate:         nullStr(rec.Fields, fldEndDate),
		MaxParticipants: nullInt(rec.Fields, fldMaxParticipants),
		Price:           nullFloat(rec.Fields, fldPrice),
	}
	crs.LecturerID, crs.LecturerName = resolveRef(rec.Fields, fldLecturer, lecturerNames)
	crs.RoomID, crs.RoomName = resolveRef(rec.Fields, fldRoom, roomNames)
	return crs
}

func (nc NewCourse) fields(refs record.RefMaker, apps AppIDs) map[string]interface{} {
	flds := map[string]interface{}{
		fldTitle:     nc.Title,
		fldStartDate: nc.StartDate,
	}
	setStr(flds, fldDescription, nc.Description)
	setStr(flds, fldEndDate, nc.EndDate)
	if nc.MaxParticipants != nil {
		flds[fldMaxParticipants] = *nc.MaxParticipants
	}
	if nc.Price != nil {
		flds[fldPrice] = *nc.Price
	}
	if nc.LecturerID != "" {
		flds[fldLecturer] = refs.Ref(apps.Lecturers, nc.LecturerID)
	}
	if nc.RoomID != "" {
		flds[fldRoom] = refs.Ref(apps.Rooms, nc.RoomID)
	}
	return flds
}

func enrollmentFromRecord(rec record.Record, participantNames, courseTitles map[string]string) Enrollment {
	enr := Enrollment{
		ID:   rec.ID,
		Date: str(rec.Fields, fldEnrollmentDate),
		Paid: boolVal(rec.Fields, fldPaid),
	}
	enr.ParticipantID, enr.ParticipantName = resolveRef(rec.Fields, fldParticipant, participantNames)
	enr.CourseID, enr.CourseTitle = resolveRef(rec.Fields, fldCourse, courseTitles)
	return enr
}

func (ne NewEnrollment) fields(refs record.RefMaker, apps AppIDs) map[string]interface{} {
	return map[string]interface{}{
		fldParticipant:    refs.Ref(apps.Participants, ne.ParticipantID),
		fldCourse:         refs.Ref(apps.Courses, ne.CourseID),
		fldEnrollmentDate: ne.Date,
		fldPaid:           ne.Paid,
	}
}

// resolveRef decodes a reference field into its bare record id and looks up
// its display label. Malformed or dangling references come back empty; they
// never fail the mapping.
func resolveRef(fields map[string]interface{}, key string, labels map[string]string) (id, label null.String) {
	recID := record.ExtractRecordID(str(fields, key))
	if recID == "" {
		return null.String{}, null.String{}
	}
	id = null.StringFrom(recID)
	if name, ok := labels[recID]; ok && name != "" {
		label = null.StringFrom(name)
	}
	return id, label
}

// field value coercion; the backend hands JSON-decoded values

func str(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func nullStr(fields map[string]interface{}, key string) null.String {
	if v, ok := fields[key].(string); ok && v != "" {
		return null.StringFrom(v)
	}
	return null.String{}
}

func nullInt(fields map[string]interface{}, key string) null.Int {
	switch v := fields[key].(type) {
	case float64:
		return null.IntFrom(int(v))
	case int:
		return null.IntFrom(v)
	}
	return null.Int{}
}

func nullFloat(fields map[string]interface{}, key string) null.Float64 {
	switch v := fields[key].(type) {
	case float64:
		return null.Float64From(v)
	case int:
		return null.Float64From(float64(v))
	}
	return null.Float64{}
}

func boolVal(fields map[string]interface{}, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

func setStr(fields map[string]interface{}, key, val string) {
	if val != "" {
		fields[key] = val
	}
}

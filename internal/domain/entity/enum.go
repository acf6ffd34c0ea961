package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEnumValue is returned when a string does not name a member of the target enum.
var ErrInvalidEnumValue = errors.New("invalid enum value")

// parseEnum matches raw against values ignoring case and surrounding whitespace.
func parseEnum[T ~string](kind, raw string, values []T) (T, error) {
	trimmed := strings.TrimSpace(raw)
	for _, v := range values {
		if strings.EqualFold(string(v), trimmed) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %q is not a valid %s", ErrInvalidEnumValue, raw, kind)
}

// EnumStrings converts a list of enum members to their string form.
func EnumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleDoctor Role = "DOCTOR"
)

var RoleValues = []Role{RoleAdmin, RoleDoctor}

func ParseRole(s string) (Role, error) { return parseEnum("role", s, RoleValues) }

type UserStatus string

const (
	UserStatusActive          UserStatus = "ACTIVE"
	UserStatusInactive        UserStatus = "INACTIVE"
	UserStatusSuspended       UserStatus = "SUSPENDED"
	UserStatusPendingApproval UserStatus = "PENDING_APPROVAL"
)

var UserStatusValues = []UserStatus{UserStatusActive, UserStatusInactive, UserStatusSuspended, UserStatusPendingApproval}

func ParseUserStatus(s string) (UserStatus, error) {
	return parseEnum("user status", s, UserStatusValues)
}

type DepartmentStatus string

const (
	DepartmentStatusActive           DepartmentStatus = "ACTIVE"
	DepartmentStatusInactive         DepartmentStatus = "INACTIVE"
	DepartmentStatusUnderMaintenance DepartmentStatus = "UNDER_MAINTENANCE"
)

var DepartmentStatusValues = []DepartmentStatus{DepartmentStatusActive, DepartmentStatusInactive, DepartmentStatusUnderMaintenance}

func ParseDepartmentStatus(s string) (DepartmentStatus, error) {
	return parseEnum("department status", s, DepartmentStatusValues)
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

var GenderValues = []Gender{GenderMale, GenderFemale, GenderOther}

func ParseGender(s string) (Gender, error) { return parseEnum("gender", s, GenderValues) }

type BloodGroup string

const (
	BloodGroupAPositive  BloodGroup = "A_POSITIVE"
	BloodGroupANegative  BloodGroup = "A_NEGATIVE"
	BloodGroupBPositive  BloodGroup = "B_POSITIVE"
	BloodGroupBNegative  BloodGroup = "B_NEGATIVE"
	BloodGroupABPositive BloodGroup = "AB_POSITIVE"
	BloodGroupABNegative BloodGroup = "AB_NEGATIVE"
	BloodGroupOPositive  BloodGroup = "O_POSITIVE"
	BloodGroupONegative  BloodGroup = "O_NEGATIVE"
)

var BloodGroupValues = []BloodGroup{
	BloodGroupAPositive, BloodGroupANegative,
	BloodGroupBPositive, BloodGroupBNegative,
	BloodGroupABPositive, BloodGroupABNegative,
	BloodGroupOPositive, BloodGroupONegative,
}

var bloodGroupDisplay = map[BloodGroup]string{
	BloodGroupAPositive:  "A+",
	BloodGroupANegative:  "A-",
	BloodGroupBPositive:  "B+",
	BloodGroupBNegative:  "B-",
	BloodGroupABPositive: "AB+",
	BloodGroupABNegative: "AB-",
	BloodGroupOPositive:  "O+",
	BloodGroupONegative:  "O-",
}

// DisplayName returns the conventional short notation, e.g. "AB+".
func (b BloodGroup) DisplayName() string {
	return bloodGroupDisplay[b]
}

// ParseBloodGroup accepts either the constant name or the short notation.
func ParseBloodGroup(s string) (BloodGroup, error) {
	trimmed := strings.TrimSpace(s)
	for bg, display := range bloodGroupDisplay {
		if display == strings.ToUpper(trimmed) {
			return bg, nil
		}
	}
	return parseEnum("blood group", s, BloodGroupValues)
}

type MaritalStatus string

const (
	MaritalStatusSingle    MaritalStatus = "SINGLE"
	MaritalStatusMarried   MaritalStatus = "MARRIED"
	MaritalStatusDivorced  MaritalStatus = "DIVORCED"
	MaritalStatusWidowed   MaritalStatus = "WIDOWED"
	MaritalStatusSeparated MaritalStatus = "SEPARATED"
)

var MaritalStatusValues = []MaritalStatus{
	MaritalStatusSingle, MaritalStatusMarried, MaritalStatusDivorced, MaritalStatusWidowed, MaritalStatusSeparated,
}

func ParseMaritalStatus(s string) (MaritalStatus, error) {
	return parseEnum("marital status", s, MaritalStatusValues)
}

type PatientStatus string

const (
	PatientStatusActive      PatientStatus = "ACTIVE"
	PatientStatusInactive    PatientStatus = "INACTIVE"
	PatientStatusDischarged  PatientStatus = "DISCHARGED"
	PatientStatusDeceased    PatientStatus = "DECEASED"
	PatientStatusTransferred PatientStatus = "TRANSFERRED"
)

var PatientStatusValues = []PatientStatus{
	PatientStatusActive, PatientStatusInactive, PatientStatusDischarged, PatientStatusDeceased, PatientStatusTransferred,
}

func ParsePatientStatus(s string) (PatientStatus, error) {
	return parseEnum("patient status", s, PatientStatusValues)
}

type RoomType string

const (
	RoomTypeGeneralWard      RoomType = "GENERAL_WARD"
	RoomTypePrivateRoom      RoomType = "PRIVATE_ROOM"
	RoomTypeICU              RoomType = "ICU"
	RoomTypeEmergency        RoomType = "EMERGENCY"
	RoomTypeOperatingRoom    RoomType = "OPERATING_ROOM"
	RoomTypeConsultationRoom RoomType = "CONSULTATION_ROOM"
	RoomTypeLaboratory       RoomType = "LABORATORY"
	RoomTypeRadiology        RoomType = "RADIOLOGY"
	RoomTypeMaternity        RoomType = "MATERNITY"
	RoomTypePediatric        RoomType = "PEDIATRIC"
)

var RoomTypeValues = []RoomType{
	RoomTypeGeneralWard, RoomTypePrivateRoom, RoomTypeICU, RoomTypeEmergency, RoomTypeOperatingRoom,
	RoomTypeConsultationRoom, RoomTypeLaboratory, RoomTypeRadiology, RoomTypeMaternity, RoomTypePediatric,
}

func ParseRoomType(s string) (RoomType, error) { return parseEnum("room type", s, RoomTypeValues) }

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
	RoomStatusCleaning    RoomStatus = "CLEANING"
	RoomStatusOutOfOrder  RoomStatus = "OUT_OF_ORDER"
	RoomStatusReserved    RoomStatus = "RESERVED"
)

var RoomStatusValues = []RoomStatus{
	RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusCleaning, RoomStatusOutOfOrder, RoomStatusReserved,
}

func ParseRoomStatus(s string) (RoomStatus, error) {
	return parseEnum("room status", s, RoomStatusValues)
}

type AppointmentType string

const (
	AppointmentTypeConsultation    AppointmentType = "CONSULTATION"
	AppointmentTypeFollowUp        AppointmentType = "FOLLOW_UP"
	AppointmentTypeEmergency       AppointmentType = "EMERGENCY"
	AppointmentTypeRoutineCheckup  AppointmentType = "ROUTINE_CHECKUP"
	AppointmentTypeSpecialistVisit AppointmentType = "SPECIALIST_VISIT"
)

var AppointmentTypeValues = []AppointmentType{
	AppointmentTypeConsultation, AppointmentTypeFollowUp, AppointmentTypeEmergency,
	AppointmentTypeRoutineCheckup, AppointmentTypeSpecialistVisit,
}

func ParseAppointmentType(s string) (AppointmentType, error) {
	return parseEnum("appointment type", s, AppointmentTypeValues)
}

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "SCHEDULED"
	AppointmentStatusInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted  AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled  AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow     AppointmentStatus = "NO_SHOW"
)

var AppointmentStatusValues = []AppointmentStatus{
	AppointmentStatusScheduled, AppointmentStatusInProgress, AppointmentStatusCompleted,
	AppointmentStatusCancelled, AppointmentStatusNoShow,
}

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	return parseEnum("appointment status", s, AppointmentStatusValues)
}

type RecordType string

const (
	RecordTypeConsultation    RecordType = "CONSULTATION"
	RecordTypeFollowUp        RecordType = "FOLLOW_UP"
	RecordTypeEmergency       RecordType = "EMERGENCY"
	RecordTypeRoutineCheckup  RecordType = "ROUTINE_CHECKUP"
	RecordTypeSpecialistVisit RecordType = "SPECIALIST_VISIT"
	RecordTypeSurgery         RecordType = "SURGERY"
	RecordTypeLabResults      RecordType = "LAB_RESULTS"
)

var RecordTypeValues = []RecordType{
	RecordTypeConsultation, RecordTypeFollowUp, RecordTypeEmergency, RecordTypeRoutineCheckup,
	RecordTypeSpecialistVisit, RecordTypeSurgery, RecordTypeLabResults,
}

func ParseRecordType(s string) (RecordType, error) {
	return parseEnum("record type", s, RecordTypeValues)
}

type PrescriptionStatus string

const (
	PrescriptionStatusActive    PrescriptionStatus = "ACTIVE"
	PrescriptionStatusCompleted PrescriptionStatus = "COMPLETED"
	PrescriptionStatusCancelled PrescriptionStatus = "CANCELLED"
	PrescriptionStatusExpired   PrescriptionStatus = "EXPIRED"
)

var PrescriptionStatusValues = []PrescriptionStatus{
	PrescriptionStatusActive, PrescriptionStatusCompleted, PrescriptionStatusCancelled, PrescriptionStatusExpired,
}

func ParsePrescriptionStatus(s string) (PrescriptionStatus, error) {
	return parseEnum("prescription status", s, PrescriptionStatusValues)
}

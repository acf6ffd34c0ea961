package memory

import domainRepo "hospital-management-system/internal/domain/repository"

var (
	_ domainRepo.UserRepository          = (*UserRepository)(nil)
	_ domainRepo.DepartmentRepository    = (*DepartmentRepository)(nil)
	_ domainRepo.PatientRepository       = (*PatientRepository)(nil)
	_ domainRepo.RoomRepository          = (*RoomRepository)(nil)
	_ domainRepo.AppointmentRepository   = (*AppointmentRepository)(nil)
	_ domainRepo.MedicalRecordRepository = (*MedicalRecordRepository)(nil)
	_ domainRepo.PrescriptionRepository  = (*PrescriptionRepository)(nil)
	_ domainRepo.AuditLogRepository      = (*AuditLogRepository)(nil)
)

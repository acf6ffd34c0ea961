package dto

// Response DTOs

// StatisticsResponse holds one entry per member of the grouped enum.
type StatisticsResponse struct {
	EntityType string           `json:"entity_type"`
	Field      string           `json:"field"`
	Counts     map[string]int64 `json:"counts"`
}

type PatientStatisticsResponse struct {
	TotalPatients      int64 `json:"total_patients"`
	ActivePatients     int64 `json:"active_patients"`
	InactivePatients   int64 `json:"inactive_patients"`
	DischargedPatients int64 `json:"discharged_patients"`
	MalePatients       int64 `json:"male_patients"`
	FemalePatients     int64 `json:"female_patients"`
	NewToday           int64 `json:"new_today"`
	NewThisWeek        int64 `json:"new_this_week"`
	NewThisMonth       int64 `json:"new_this_month"`
}

type DoctorDashboardResponse struct {
	MyPatients             int64 `json:"my_patients"`
	TodayAppointments      int64 `json:"today_appointments"`
	CompletedConsultations int64 `json:"completed_consultations"`
	MedicalRecords         int64 `json:"medical_records"`
	ActivePrescriptions    int64 `json:"active_prescriptions"`
}

type AdminDashboardResponse struct {
	TotalUsers       int64 `json:"total_users"`
	TotalDoctors     int64 `json:"total_doctors"`
	TotalAdmins      int64 `json:"total_admins"`
	TotalPatients    int64 `json:"total_patients"`
	TotalDepartments int64 `json:"total_departments"`
	TotalRooms       int64 `json:"total_rooms"`
}

type DatabaseStatisticsResponse struct {
	Tables       map[string]int64 `json:"tables"`
	TotalRecords int64            `json:"total_records"`
}

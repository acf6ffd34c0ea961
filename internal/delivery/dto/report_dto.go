package dto

// Response DTOs

type ReportResponse struct {
	Name string      `json:"name"`
	Data interface{} `json:"data"`
}

type SystemOverviewReport struct {
	TotalUsers            int64            `json:"total_users"`
	TotalDoctors          int64            `json:"total_doctors"`
	TotalAdmins           int64            `json:"total_admins"`
	TotalDepartments      int64            `json:"total_departments"`
	ActiveDepartments     int64            `json:"active_departments"`
	TotalRooms            int64            `json:"total_rooms"`
	RoomStatus            map[string]int64 `json:"room_status"`
	TotalPatients         int64            `json:"total_patients"`
	ScheduledAppointments int64            `json:"scheduled_appointments"`
	TodayAppointments     int64            `json:"today_appointments"`
	TotalMedicalRecords   int64            `json:"total_medical_records"`
	ActivePrescriptions   int64            `json:"active_prescriptions"`
}

type DepartmentReportRow struct {
	Name             string `json:"name"`
	Status           string `json:"status"`
	DoctorCount      int64  `json:"doctor_count"`
	RoomCount        int64  `json:"room_count"`
	HeadOfDepartment string `json:"head_of_department"`
}

type DepartmentReport struct {
	Departments      []DepartmentReportRow `json:"departments"`
	TotalDepartments int64                 `json:"total_departments"`
}

type RoomUtilizationReport struct {
	StatusDistribution map[string]int64 `json:"status_distribution"`
	TypeDistribution   map[string]int64 `json:"type_distribution"`
	OccupancyRate      float64          `json:"occupancy_rate"`
	TotalRooms         int64            `json:"total_rooms"`
	OccupiedRooms      int64            `json:"occupied_rooms"`
	AvailableRooms     int64            `json:"available_rooms"`
}

type UserActivityReport struct {
	StatusDistribution map[string]int64 `json:"status_distribution"`
	RoleDistribution   map[string]int64 `json:"role_distribution"`
	NewUsersLast30Days int64            `json:"new_users_last_30_days"`
	TotalUsers         int64            `json:"total_users"`
}

type AppointmentReport struct {
	TodayAppointments  int64            `json:"today_appointments"`
	WeekAppointments   int64            `json:"week_appointments"`
	MonthAppointments  int64            `json:"month_appointments"`
	StatusDistribution map[string]int64 `json:"status_distribution"`
}

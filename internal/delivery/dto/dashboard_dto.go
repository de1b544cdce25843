package dto

type PatientDashboardResponse struct {
	User                 *UserResponse           `json:"user"`
	UpcomingAppointments []AppointmentResponse   `json:"upcoming_appointments"`
	RecentRecords        []MedicalRecordResponse `json:"recent_records"`
	ActivePrescriptions  []PrescriptionResponse  `json:"active_prescriptions"`
}

type DoctorDashboardResponse struct {
	Doctor               *DoctorResponse       `json:"doctor"`
	TodayAppointments    []AppointmentResponse `json:"today_appointments"`
	UpcomingAppointments []AppointmentResponse `json:"upcoming_appointments"`
	PendingCount         int64                 `json:"pending_count"`
	UnansweredQuestions  int64                 `json:"unanswered_questions"`
}

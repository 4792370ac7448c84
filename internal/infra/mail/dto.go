package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type LeadNotificationData struct {
	PracticeName string
	LeadName     string
	LeadEmail    string
	LeadPhone    string
	LeadGoal     string
	ActionURL    string
}

type BookingConfirmationData struct {
	LeadName     string
	PracticeName string
}

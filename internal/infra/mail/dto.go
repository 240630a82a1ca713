package mail

type AssignmentEmailData struct {
	BrokerName string
	LeadCount  int
	LeadNames  []string
	Mode       string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

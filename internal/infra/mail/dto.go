package mail

type LeadWelcomeData struct {
	Name     string
	SiteName string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SiteName string
}

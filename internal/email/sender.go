package email

// Sender es la interfaz para enviar emails.
type Sender interface {
	// Send envía un email con contenido HTML y texto plano.
	// El destinatario recibe ambas versiones como multipart/alternative.
	Send(to, subject, htmlBody, textBody string) error
}

// NoopSender descarta los emails (SMTP no configurado).
type NoopSender struct{}

func (NoopSender) Send(string, string, string, string) error { return nil }

// SMTPConfig configuración del transporte SMTP.
type SMTPConfig struct {
	Host               string
	Port               int
	From               string
	Username           string
	Password           string
	TLSMode            string // "auto" | "starttls" | "ssl" | "none"
	InsecureSkipVerify bool
}

// NewSender retorna un SMTPSender o NoopSender si no hay host.
func NewSender(cfg SMTPConfig) Sender {
	if cfg.Host == "" {
		return NoopSender{}
	}
	return FromConfig(cfg)
}

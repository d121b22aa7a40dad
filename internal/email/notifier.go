package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	texttpl "text/template"
	"time"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

//go:embed templates/*
var templatesFS embed.FS

const (
	TemplateConsultaProgramada = "consulta_programada"
	TemplateConsultaCancelada  = "consulta_cancelada"
)

var subjects = map[string]string{
	TemplateConsultaProgramada: "Tu consulta fue programada",
	TemplateConsultaCancelada:  "Tu consulta fue cancelada",
}

// ConsultaVars variables de los templates de consultas.
type ConsultaVars struct {
	Paciente    string
	Fecha       string
	Hora        string
	DuracionMin int
	Motivo      string
}

type pair struct {
	html *template.Template
	text *texttpl.Template
}

// Notifier renderiza y envía las notificaciones de consultas.
type Notifier struct {
	sender    Sender
	loc       *time.Location
	templates map[string]pair
}

// NewNotifier parsea los templates embebidos. loc define la zona horaria en
// la que se muestran las fechas (nil = UTC).
func NewNotifier(sender Sender, loc *time.Location) (*Notifier, error) {
	if sender == nil {
		sender = NoopSender{}
	}
	if loc == nil {
		loc = time.UTC
	}
	n := &Notifier{sender: sender, loc: loc, templates: map[string]pair{}}
	for name := range subjects {
		h, err := template.ParseFS(templatesFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("email: parse %s.html: %w", name, err)
		}
		t, err := texttpl.ParseFS(templatesFS, "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("email: parse %s.txt: %w", name, err)
		}
		n.templates[name] = pair{html: h, text: t}
	}
	return n, nil
}

// Render retorna subject, html y texto del template.
func (n *Notifier) Render(name string, vars ConsultaVars) (subject, html, text string, err error) {
	p, ok := n.templates[name]
	if !ok {
		return "", "", "", fmt.Errorf("email: unknown template %q", name)
	}
	var hb, tb bytes.Buffer
	if err := p.html.Execute(&hb, vars); err != nil {
		return "", "", "", err
	}
	if err := p.text.Execute(&tb, vars); err != nil {
		return "", "", "", err
	}
	return subjects[name], hb.String(), tb.String(), nil
}

func (n *Notifier) varsFor(c *repository.Consulta) ConsultaVars {
	t := c.FechaHora.In(n.loc)
	return ConsultaVars{
		Paciente:    c.PacienteNombre,
		Fecha:       t.Format("02/01/2006"),
		Hora:        t.Format("15:04"),
		DuracionMin: c.DuracionMin,
		Motivo:      c.Motivo,
	}
}

// ConsultaProgramada notifica al paciente una consulta nueva.
func (n *Notifier) ConsultaProgramada(ctx context.Context, c *repository.Consulta) error {
	return n.send(ctx, TemplateConsultaProgramada, c)
}

// ConsultaCancelada notifica al paciente una cancelación.
func (n *Notifier) ConsultaCancelada(ctx context.Context, c *repository.Consulta) error {
	return n.send(ctx, TemplateConsultaCancelada, c)
}

func (n *Notifier) send(ctx context.Context, name string, c *repository.Consulta) error {
	log := logger.From(ctx).With(logger.Component("email.notifier"), logger.ConsultaID(c.ID))
	if c.PacienteEmail == "" {
		log.Debug("paciente sin email, notificación omitida", logger.String("template", name))
		return nil
	}
	subject, html, text, err := n.Render(name, n.varsFor(c))
	if err != nil {
		return err
	}
	return n.sender.Send(c.PacienteEmail, subject, html, text)
}

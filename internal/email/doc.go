// Package email envía las notificaciones de consultas a los pacientes.
//
// Sender es el transporte (SMTP vía go-mail o Noop si no hay SMTP
// configurado); Notifier renderiza los templates embebidos y delega el envío.
package email

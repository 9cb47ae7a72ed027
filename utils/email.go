package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"event_ticketing/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type TicketConfirmationData struct {
	Reference         string
	EventTitle        string
	Venue             string
	StartTime         string
	ConfirmationCodes []string
	TicketCount       int
	TotalAmount       int64
}

// SendTicketConfirmationEmail delivers the purchase confirmation with one QR
// per ticket. Fire-and-forget: failures are logged, never surfaced to the
// settlement path.
func SendTicketConfirmationEmail(to string, data TicketConfirmationData) {
	go func() {
		tmpl, err := template.ParseFiles("templates/ticket_confirmation.html")
		if err != nil {
			logrus.WithError(err).Error("load ticket confirmation template")
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			logrus.WithError(err).Error("render ticket confirmation template")
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", config.Config("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Your tickets for "+data.EventTitle+" #"+data.Reference)
		m.SetBody("text/html", body.String())

		for _, code := range data.ConfirmationCodes {
			qrBytes, err := GenerateQRCode(code, 256)
			if err != nil {
				logrus.WithError(err).WithField("code", code).Error("generate ticket QR")
				continue
			}
			filename := fmt.Sprintf("Ticket_%s.png", code)
			m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(qrBytes))
				return err
			}))
		}

		port, _ := strconv.Atoi(config.Config("SMTP_PORT"))
		if port == 0 {
			port = 587
		}
		d := gomail.NewDialer(config.Config("SMTP_HOST"), port,
			config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			logrus.WithError(err).WithField("to", to).Error("send ticket confirmation email")
		} else {
			logrus.WithField("to", to).Info("ticket confirmation email sent")
		}
	}()
}

package account

import "github.com/sirupsen/logrus"

// Mailer delivers verification codes to new accounts. Real dispatch is out of
// scope; the default implementation only logs the code.
type Mailer interface {
	SendVerificationCode(email, code string)
}

type LogMailer struct {
	Log *logrus.Logger
}

func (m LogMailer) SendVerificationCode(email, code string) {
	m.Log.WithFields(logrus.Fields{
		"correo": email,
		"codigo": code,
	}).Info("simulación de email de verificación")
}

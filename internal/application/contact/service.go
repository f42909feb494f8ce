package contact

import (
	"context"
	"fmt"

	"github.com/voyeglobal/auth-api/internal/domain"
	"github.com/voyeglobal/auth-api/internal/infrastructure/smtp"
)

// SendRequest is a contact-form submission relayed to the site admin.
type SendRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Reason  string `json:"reason" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type Service interface {
	Send(ctx context.Context, req SendRequest) error
}

type service struct {
	mailer     smtp.Mailer
	adminEmail string
	siteName   string
	siteURL    string
}

func NewService(mailer smtp.Mailer, adminEmail, siteName, siteURL string) Service {
	return &service{mailer: mailer, adminEmail: adminEmail, siteName: siteName, siteURL: siteURL}
}

func (s *service) Send(_ context.Context, req SendRequest) error {
	subject := fmt.Sprintf("Contact Form Submission: %s", req.Reason)
	body := fmt.Sprintf(
		"Message from: %s\r\n\r\nReason: %s\r\n\r\nMessage: %s\r\n\r\nWebsite Name: %s\r\nWebsite URL: %s",
		req.Email, req.Reason, req.Message, s.siteName, s.siteURL,
	)
	if err := s.mailer.SendEmail(s.adminEmail, subject, body); err != nil {
		return fmt.Errorf("relay contact email: %w", domain.ErrDispatch)
	}
	return nil
}

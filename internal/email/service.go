package email

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dukerupert/vitrina/internal/domain"
)

// Service composes storefront emails and hands them to a Sender.
type Service struct {
	sender      Sender
	fromAddress string
	fromName    string
	baseURL     string
	templates   *templates
}

// NewService creates an email service. baseURL is used to build links back
// to the storefront and may be empty.
func NewService(sender Sender, fromAddress, fromName, baseURL string) (*Service, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	return &Service{
		sender:      sender,
		fromAddress: fromAddress,
		fromName:    fromName,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		templates:   tmpl,
	}, nil
}

// SendOrderConfirmation mails the order summary to the order's contact email.
func (s *Service) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	if order.Email == "" {
		return nil
	}

	data := OrderConfirmation{Order: order}
	if s.baseURL != "" {
		data.OrderURL = s.baseURL + "/orders/" + strconv.FormatInt(order.ID, 10)
	}

	htmlBody, textBody, err := s.templates.render("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation: %w", err)
	}

	_, err = s.sender.Send(ctx, &Email{
		To:       []string{order.Email},
		From:     s.from(),
		Subject:  data.Subject(),
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	return nil
}

func (s *Service) from() string {
	if s.fromName == "" {
		return s.fromAddress
	}
	return fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
}

package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
	"portfolio/internal/email"
)

// APIKeyConfigKey is the config table key holding the Resend API key
const APIKeyConfigKey = "RESEND_API_KEY"

// ErrAPIKeyMissing is returned when neither the config table nor the
// environment provides an email API key.
var ErrAPIKeyMissing = errors.New("RESEND_API_KEY is missing")

var notificationTemplate = template.Must(template.New("notification").Parse(`
<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
`))

// RelayConfig holds the addressing for outgoing notifications
type RelayConfig struct {
	FallbackAPIKey string // used when the config table has no key
	Recipient      string
	From           string
}

// relay implements the ContactRelay interface
type relay struct {
	messageRepo  portfolioRepo.ContactMessageRepository
	categoryRepo portfolioRepo.ContactCategoryRepository
	siteConfig   portfolioRepo.SiteConfigRepository
	newSender    email.SenderFactory
	cfg          RelayConfig
	logger       *slog.Logger
}

// NewRelay creates the contact relay
func NewRelay(
	messageRepo portfolioRepo.ContactMessageRepository,
	categoryRepo portfolioRepo.ContactCategoryRepository,
	siteConfig portfolioRepo.SiteConfigRepository,
	newSender email.SenderFactory,
	cfg RelayConfig,
	logger *slog.Logger,
) portfolioSvc.ContactRelay {
	return &relay{
		messageRepo:  messageRepo,
		categoryRepo: categoryRepo,
		siteConfig:   siteConfig,
		newSender:    newSender,
		cfg:          cfg,
		logger:       logger,
	}
}

// Send validates the submission, stores it, then emails it.
func (r *relay) Send(ctx context.Context, req *portfolioSvc.ContactRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if req.Subject == "" {
		req.Subject = models.DefaultContactSubject
	}

	if err := validateContactRequest(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := r.messageRepo.Create(ctx, msg); err != nil {
		return "", err
	}

	apiKey, err := r.apiKey(ctx)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := notificationTemplate.Execute(&body, req); err != nil {
		return "", fmt.Errorf("render notification: %w", err)
	}

	outgoing := &email.Message{
		From:    r.cfg.From,
		To:      r.recipients(ctx, req.Subject),
		ReplyTo: req.Email,
		Subject: "Portfolio Contact: " + req.Subject,
		HTML:    body.String(),
	}

	id, err := r.newSender(apiKey).Send(ctx, outgoing)
	if err != nil {
		r.logger.Error("contact email failed",
			"message_id", msg.ID,
			"error", err,
		)
		return "", &domain.EmailSendError{Err: err}
	}

	r.logger.Info("contact email sent",
		"message_id", msg.ID,
		"email_id", id,
		"subject", req.Subject,
		"recipients", len(outgoing.To),
	)

	return id, nil
}

// apiKey reads the key from the config table, falling back to the environment
func (r *relay) apiKey(ctx context.Context) (string, error) {
	key, err := r.siteConfig.Get(ctx, APIKeyConfigKey)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	if key = strings.TrimSpace(key); key != "" {
		return key, nil
	}
	if r.cfg.FallbackAPIKey != "" {
		return r.cfg.FallbackAPIKey, nil
	}
	return "", ErrAPIKeyMissing
}

// recipients returns the fixed recipient plus the notification address of a
// category whose name matches subject.
func (r *relay) recipients(ctx context.Context, subject string) []string {
	to := []string{r.cfg.Recipient}

	category, err := r.categoryRepo.GetByName(ctx, subject)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("category lookup failed, using default recipient",
				"subject", subject,
				"error", err,
			)
		}
		return to
	}

	if category.NotificationEmail != "" && !strings.EqualFold(category.NotificationEmail, r.cfg.Recipient) {
		to = append(to, category.NotificationEmail)
	}
	return to
}

func validateContactRequest(req *portfolioSvc.ContactRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Subject, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&req.Message, validation.Required, validation.Length(1, config.MaxContactMessageLength)),
	)
}

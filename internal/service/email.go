package service

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nutrilog/backend/internal/models"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	adminEmail   string
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func NewEmailService() IEmailService {
	return &EmailService{
		smtpHost:     readSecret("smtp_host"),
		smtpPort:     readSecret("smtp_port"),
		smtpUsername: readSecret("smtp_username"),
		smtpPassword: readSecret("smtp_password"),
		fromEmail:    readSecret("email_from"),
		fromName:     readSecret("email_from_name"),
		adminEmail:   readSecret("admin_email"),
	}
}

func (s *EmailService) SendFeedbackNotification(feedback *models.Feedback, user *models.User) error {
	// Use admin email or fallback to fromEmail
	toEmail := s.adminEmail
	if toEmail == "" {
		toEmail = s.fromEmail
	}

	caser := cases.Title(language.English)
	subject := fmt.Sprintf("[NutriLog] New %s: %s", caser.String(feedback.Type), feedback.Title)

	body := s.buildFeedbackEmailBody(feedback, user)

	return s.SendEmail(toEmail, subject, body)
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.smtpHost == "" || s.smtpPort == "" {
		log.Printf("[Email] SMTP not configured, logging email\nTo: %s\nSubject: %s\nBody:\n%s", to, subject, body)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *EmailService) SendVerificationEmail(user *models.User, token string) error {
	subject := "Verify Your Email - NutriLog"
	body := s.buildVerificationEmailBody(user, token)
	return s.SendEmail(user.Email, subject, body)
}

func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	subject := "Welcome to NutriLog!"
	body := s.buildWelcomeEmailBody(user)
	return s.SendEmail(user.Email, subject, body)
}

func (s *EmailService) buildVerificationEmailBody(user *models.User, token string) string {
	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5173" // Development fallback
	}
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", baseURL, token)

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Verify Your Email - NutriLog</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #2E7D32; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">NutriLog</h1>
		<p style="margin: 10px 0 0 0; font-size: 16px;">Effortless Meal Tracking</p>
	</div>

	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #2E7D32; margin-top: 0;">Welcome, %s!</h2>
		<p>Thank you for signing up for NutriLog. To start logging your meals, please verify your email address.</p>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #2E7D32; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px; display: inline-block;">
				Verify Email Address
			</a>
		</div>

		<p style="color: #666; font-size: 14px;">If the button above doesn't work, copy and paste this link into your browser:</p>
		<p style="background-color: #eee; padding: 10px; border-radius: 5px; word-break: break-all; font-size: 12px;">%s</p>

		<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
			<p style="color: #666; font-size: 12px; margin: 0;">
				This verification link will expire in 48 hours. If you didn't sign up for NutriLog, you can safely ignore this email.
			</p>
		</div>
	</div>
</body>
</html>
	`, user.Name, verificationURL, verificationURL)
}

func (s *EmailService) buildWelcomeEmailBody(user *models.User) string {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173" // Development fallback
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Welcome to NutriLog!</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #2E7D32; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">Welcome to NutriLog!</h1>
	</div>

	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #2E7D32; margin-top: 0;">Hello %s!</h2>
		<p>Your email has been verified. You're ready to start tracking.</p>

		<h3 style="color: #2E7D32;">What can you do now?</h3>
		<ul style="padding-left: 20px;">
			<li style="margin-bottom: 10px;"><strong>Log meals in plain words:</strong> type what you ate and get instant nutrient estimates with confidence ranges</li>
			<li style="margin-bottom: 10px;"><strong>Set your profile:</strong> weight, height and age unlock daily calorie and protein targets</li>
			<li style="margin-bottom: 10px;"><strong>Review your days:</strong> daily totals, weekly trends and how you track against your targets</li>
		</ul>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #2E7D32; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px; display: inline-block;">
				Log Your First Meal
			</a>
		</div>

		<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
			<p style="color: #666; font-size: 12px; margin: 0;">
				The NutriLog Team
			</p>
		</div>
	</div>
</body>
</html>
	`, user.Name, frontendURL)
}

func (s *EmailService) buildFeedbackEmailBody(feedback *models.Feedback, user *models.User) string {
	caser := cases.Title(language.English)
	var userInfo string
	if user != nil {
		userInfo = fmt.Sprintf(`
			<p><strong>User Information:</strong></p>
			<ul>
				<li>Email: %s</li>
				<li>User ID: %s</li>
				<li>Created: %s</li>
			</ul>
		`, user.Email, user.ID, user.CreatedAt.Format("2006-01-02 15:04:05"))
	} else {
		userInfo = "<p><strong>User:</strong> Anonymous</p>"
	}

	var entryInfo string
	if feedback.EntryID != nil {
		entryInfo = fmt.Sprintf("<p><strong>Related Entry:</strong> %s</p>", feedback.EntryID)
	}

	var technicalInfo string
	if feedback.UserAgent != "" || feedback.URL != "" {
		technicalInfo = fmt.Sprintf(`
			<p><strong>Technical Information:</strong></p>
			<ul>
				%s
				%s
			</ul>
		`,
			func() string {
				if feedback.URL != "" {
					return fmt.Sprintf("<li>Page URL: %s</li>", feedback.URL)
				}
				return ""
			}(),
			func() string {
				if feedback.UserAgent != "" {
					return fmt.Sprintf("<li>User Agent: %s</li>", feedback.UserAgent)
				}
				return ""
			}(),
		)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>New Feedback - NutriLog</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h2>New %s Report</h2>

	<div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #2E7D32; margin: 20px 0;">
		<h3>%s</h3>
		<p><strong>Type:</strong> %s</p>
		<p><strong>Priority:</strong> %s</p>
		<p><strong>Status:</strong> %s</p>
		<p><strong>Submitted:</strong> %s</p>
	</div>

	<div style="margin: 20px 0;">
		<h4>Description:</h4>
		<div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px;">
			%s
		</div>
	</div>

	%s

	%s

	%s

	<div style="margin-top: 30px; padding: 15px; background-color: #e9ecef; border-radius: 5px;">
		<p><strong>Feedback ID:</strong> %s</p>
		<p style="font-size: 12px; color: #666;">
			This is an automated notification from the NutriLog feedback system.
		</p>
	</div>
</body>
</html>
	`,
		caser.String(feedback.Type),
		feedback.Title,
		caser.String(feedback.Type),
		caser.String(feedback.Priority),
		caser.String(feedback.Status),
		feedback.CreatedAt.Format("2006-01-02 15:04:05 MST"),
		strings.ReplaceAll(feedback.Description, "\n", "<br>"),
		userInfo,
		entryInfo,
		technicalInfo,
		feedback.ID,
	)
}

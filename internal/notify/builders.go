package notify

import (
	"fmt"
	"net/mail"
	"time"

	"nclex_keys/internal/model"
)

type welcomeData struct {
	FullName    string
	ProgramName string
	WhatsAppURL string
}

// WelcomeMessage greets a new student and repeats the payment instructions
func WelcomeMessage(user *model.User, programName, whatsAppURL string) *Message {
	return &Message{
		To:           []mail.Address{{Name: user.FullName, Address: user.Email}},
		Subject:      "Welcome to NCLEX Keys",
		TemplateName: "welcome",
		TemplateData: welcomeData{FullName: user.FullName, ProgramName: programName, WhatsAppURL: whatsAppURL},
	}
}

type digestData struct {
	Count   int
	Pending []digestLine
}

type digestLine struct {
	FullName    string
	Email       string
	Phone       string
	ProgramName string
	Waiting     string
}

// PendingDigestMessage lists enrollments still waiting for payment verification
func PendingDigestMessage(staffEmail string, pending []model.PendingEnrollmentSummary, now time.Time) *Message {
	lines := make([]digestLine, 0, len(pending))
	for _, p := range pending {
		line := digestLine{
			FullName:    p.FullName,
			Email:       p.Email,
			ProgramName: p.ProgramName,
			Waiting:     waitingFor(now.Sub(p.EnrolledAt)),
		}
		if p.PhoneNumber != nil {
			line.Phone = *p.PhoneNumber
		}
		lines = append(lines, line)
	}

	return &Message{
		To:           []mail.Address{{Address: staffEmail}},
		Subject:      fmt.Sprintf("%d enrollment(s) awaiting payment verification", len(pending)),
		TemplateName: "pending_digest",
		TemplateData: digestData{Count: len(pending), Pending: lines},
	}
}

func waitingFor(d time.Duration) string {
	days := int(d.Hours()) / 24
	if days >= 1 {
		return fmt.Sprintf("%dd %dh", days, int(d.Hours())%24)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

type verifiedData struct {
	FullName     string
	ProgramName  string
	CommunityURL string
}

// PaymentVerifiedMessage tells a student their content is unlocked
func PaymentVerifiedMessage(user *model.User, programName, communityURL string) *Message {
	return &Message{
		To:           []mail.Address{{Name: user.FullName, Address: user.Email}},
		Subject:      "Your payment has been verified",
		TemplateName: "payment_verified",
		TemplateData: verifiedData{FullName: user.FullName, ProgramName: programName, CommunityURL: communityURL},
	}
}

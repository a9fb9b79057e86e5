package utils

import (
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link that opens a chat with number and a pre-filled message.
// Non-digit characters are stripped from the number.
func WhatsAppLink(number, message string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	link := "https://wa.me/" + digits.String()
	if message == "" {
		return link
	}
	// wa.me expects %20 for spaces, QueryEscape produces '+'
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// PaymentMessage is the text a student sends along with the payment screenshot
func PaymentMessage(programName string) string {
	if programName == "" {
		return "Hi, I just registered for a program."
	}
	return "Hi, I just registered for " + programName + ". Here is my payment screenshot."
}

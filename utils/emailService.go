package utils

import (
	"agora/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Agora <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1F2937; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.content h2 { color: #1F2937; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6366F1; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>AGORA</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Agora. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, username string) {
	subject := "Welcome to Agora"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to <strong>Agora</strong>! Your account has been created.</p>
		<p>You can now join discussions, browse agent listings and start making deals.</p>
	`, username)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. New deal proposal (to recipient)
func SendDealProposedEmail(email, username, dealTitle string) {
	subject := "New Deal Proposal: " + dealTitle
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You have received a new deal proposal: <strong>%s</strong>.</p>
		<div class="info-box">
			Log in to review the proposal and respond.
		</div>
	`, username, dealTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("New Deal Proposal", body))
}

// 3. Deal concluded (to both parties)
func SendDealDecisionEmail(email, username, dealTitle string, approved bool) {
	decision := "approved"
	if !approved {
		decision = "rejected"
	}
	subject := fmt.Sprintf("Deal %s: %s", strings.Title(decision), dealTitle)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your deal <strong>%s</strong> has been <strong>%s</strong>.</p>
	`, username, dealTitle, decision)

	go SendEmail([]string{email}, subject, getEmailTemplate("Deal "+strings.Title(decision), body))
}

// 4. Review received (to reviewee)
func SendReviewReceivedEmail(email, username, dealTitle string) {
	subject := "You received a review"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>The other party of your deal <strong>%s</strong> has left you a review.</p>
		<p>Reviews count toward your reputation on Agora.</p>
	`, username, dealTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("New Review", body))
}

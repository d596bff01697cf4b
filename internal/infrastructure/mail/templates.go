package mail

import "fmt"

// Email templates for the platform notifications. Subjects and wording match
// what the admin front-end and its users already expect.

const (
	welcomeSubject      = "🎓 Welcome to MKA Platform"
	resetSubject        = "Password Reset Request"
	verificationSubject = "Code de vérification"
)

func welcomeBody(tempPassword, role string) (plain, html string) {
	plain = fmt.Sprintf(
		"Welcome to the LMS!\n\nYour account has been created successfully. Here are your login credentials:\n\nTemporary Password: %s\nRole: %s\n\nPlease log in and change your password as soon as possible for security reasons.\n\n– LMS Team",
		tempPassword, role,
	)
	html = fmt.Sprintf(`
		<h3>Welcome to the LMS!</h3>
		<p>Your account has been created successfully. Here are your login credentials:</p>
		<ul>
			<li><strong>Temporary Password:</strong> %s</li>
			<li><strong>Role:</strong> %s</li>
		</ul>
		<p>Please log in and change your password as soon as possible for security reasons.</p>
		<br/>
		<p>– LMS Team</p>`,
		tempPassword, role,
	)
	return plain, html
}

func resetBody(frontendURL, to, token string) (plain, html string) {
	resetLink := fmt.Sprintf("%s/ResetPasswordPage?token=%s&email=%s", frontendURL, token, to)
	plain = fmt.Sprintf(
		"You requested a password reset.\n\nYour code is %s\n\nReset your password here: %s",
		token, resetLink,
	)
	html = fmt.Sprintf(`
		<p>You requested a password reset. Click the link below to reset your password:</p>
		<p>Your code is %s</p>
		<p><a href="%s">Reset Password</a></p>`,
		token, resetLink,
	)
	return plain, html
}

func verificationBody(code string) (plain, html string) {
	plain = fmt.Sprintf("Code de vérification\n\nVoici votre code : %s\nCe code est valable pendant 5 minutes.", code)
	html = fmt.Sprintf(`
		<h3>Code de vérification</h3>
		<p>Voici votre code : <strong>%s</strong></p>
		<p>Ce code est valable pendant 5 minutes.</p>`,
		code,
	)
	return plain, html
}

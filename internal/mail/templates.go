package mail

import "fmt"

// WelcomeMessage builds the registration email carrying the activation link.
func WelcomeMessage(firstName, activationLink string) (subject, body string) {
	subject = "Welcome to Guest Book! Activate Your Account"
	body = fmt.Sprintf(`Hi %s,

Welcome to Guest Book - a place to share your thoughts and connect with others through posts and comments.

Please open the link below to activate your account and start engaging with the community:

%s

Thank you,
- The Guest Book Team
`, firstName, activationLink)
	return subject, body
}

// ForgotPasswordMessage builds the password reset email carrying the reset link.
func ForgotPasswordMessage(firstName, resetLink string) (subject, body string) {
	subject = "Reset Your Password - Guest Book"
	body = fmt.Sprintf(`Hi %s,

We received a request to reset the password for your Guest Book account.

Please open the link below to reset your password. The link expires in 1 hour:

%s

If you did not request a password reset, please ignore this email or contact support.

Thank you,
- The Guest Book Team
`, firstName, resetLink)
	return subject, body
}

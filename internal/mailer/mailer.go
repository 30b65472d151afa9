package mailer

import (
	"context"
	"fmt"
)

// Message is one outbound email. Both HTML and text bodies are always
// populated by the builders below.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Mailer dispatches platform email. Callers treat delivery as
// fire-and-forget: a send failure is logged, never propagated into the
// workflow that triggered it.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// NewSchoolAdminInvitation builds the invitation email. The link must embed
// the real persisted token.
func NewSchoolAdminInvitation(email, schoolName, invitationLink string) *Message {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>You're Invited to Join %[1]s as Administrator</h2>
			<p>Hello,</p>
			<p>You have been invited to become an administrator of <strong>%[1]s</strong> on EdHub.</p>
			<p>Click the button below to accept the invitation and set up your account:</p>
			<p>
				<a href="%[2]s" style="display: inline-block; padding: 12px 24px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; font-size: 16px;">
					Accept Invitation
				</a>
			</p>
			<p>This invitation expires in 7 days.</p>
			<p>If you didn't expect this invitation, you can ignore this email.</p>
			<p>Best regards,<br>The EdHub Team</p>
		</div>`, schoolName, invitationLink)

	return &Message{
		To:      email,
		Subject: fmt.Sprintf("Invitation to Join %s as Administrator", schoolName),
		HTML:    html,
		Text:    fmt.Sprintf("You have been invited to become an administrator of %s. Accept the invitation using this link: %s", schoolName, invitationLink),
	}
}

// NewWelcome builds the post-registration welcome email.
func NewWelcome(email, firstname, lastname string) *Message {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Welcome to EdHub, %[1]s!</h2>
			<p>Dear %[1]s %[2]s,</p>
			<p>Thank you for registering with EdHub. We're excited to have you join our learning community.</p>
			<p>You can now log in to your account and start exploring our courses.</p>
			<p>Best regards,<br>The EdHub Team</p>
		</div>`, firstname, lastname)

	return &Message{
		To:      email,
		ToName:  firstname + " " + lastname,
		Subject: "Welcome to EdHub",
		HTML:    html,
		Text:    fmt.Sprintf("Welcome to EdHub, %s! Thank you for registering.", firstname),
	}
}

// NewEnrollmentConfirmation builds the course enrollment confirmation.
func NewEnrollmentConfirmation(email, firstname, courseName string) *Message {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Enrollment Confirmed</h2>
			<p>Dear %[1]s,</p>
			<p>Congratulations! You have successfully enrolled in <strong>%[2]s</strong>.</p>
			<p>You can now access the course materials and start learning.</p>
			<p>Best regards,<br>The EdHub Team</p>
		</div>`, firstname, courseName)

	return &Message{
		To:      email,
		ToName:  firstname,
		Subject: fmt.Sprintf("Course Enrollment: %s", courseName),
		HTML:    html,
		Text:    fmt.Sprintf("You have enrolled in %s.", courseName),
	}
}

// NewSchoolApproval notifies a school-request applicant of approval.
func NewSchoolApproval(email, schoolName string) *Message {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>School Request Approved</h2>
			<p>Dear School Administrator,</p>
			<p>We are pleased to inform you that your school request for <strong>%s</strong> has been approved.</p>
			<p>You can now access your school dashboard and start setting up your courses and classes.</p>
			<p>If you have any questions, please contact our support team.</p>
			<p>Best regards,<br>The EdHub Team</p>
		</div>`, schoolName)

	return &Message{
		To:      email,
		Subject: fmt.Sprintf("School Approved: %s", schoolName),
		HTML:    html,
		Text:    fmt.Sprintf("Your school %s has been approved.", schoolName),
	}
}

// NewSchoolRejection notifies a school-request applicant of rejection.
func NewSchoolRejection(email, schoolName string) *Message {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>School Request Status Update</h2>
			<p>Dear School Administrator,</p>
			<p>We regret to inform you that your school request for <strong>%s</strong> has been rejected.</p>
			<p>Please contact our support team if you would like more information or wish to resubmit your request.</p>
			<p>Best regards,<br>The EdHub Team</p>
		</div>`, schoolName)

	return &Message{
		To:      email,
		Subject: fmt.Sprintf("School Request Update: %s", schoolName),
		HTML:    html,
		Text:    fmt.Sprintf("Your school request for %s has been reviewed.", schoolName),
	}
}

package notify

import (
	"fmt"
	"strings"
)

func EnrollmentReceived(name, email, course string) Message {
	return Message{
		ToName:  name,
		ToEmail: email,
		Subject: "We received your enrollment for " + course,
		Text: fmt.Sprintf("Hi %s,\n\nThanks for enrolling in %s. Our team is verifying your payment "+
			"and will confirm your access shortly.\n", firstName(name), course),
	}
}

func EnrollmentApproved(name, email, course string) Message {
	return Message{
		ToName:  name,
		ToEmail: email,
		Subject: "Your enrollment in " + course + " is confirmed",
		Text: fmt.Sprintf("Hi %s,\n\nYour payment has been verified and %s is now available "+
			"in your dashboard.\n", firstName(name), course),
	}
}

func EnrollmentRejected(name, email, course, reason string) Message {
	return Message{
		ToName:  name,
		ToEmail: email,
		Subject: "Action needed on your enrollment in " + course,
		Text: fmt.Sprintf("Hi %s,\n\nWe could not verify your payment for %s.\nReason: %s\n\n"+
			"Reply to this email or submit the enrollment again with a clear screenshot.\n",
			firstName(name), course, reason),
	}
}

// AgencyAlert notifies the agency inbox about a new lead.
func AgencyAlert(inbox, subject string, lines ...string) Message {
	return Message{
		ToName:  "Agency",
		ToEmail: inbox,
		Subject: subject,
		Text:    strings.Join(lines, "\n"),
	}
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return "there"
}

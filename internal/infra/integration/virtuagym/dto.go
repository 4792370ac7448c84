package virtuagym

import "strings"

// Member is one club member row from the membership API. created_on is
// unix seconds, the platform does not send RFC 3339.
type Member struct {
	MemberID  int64  `json:"member_id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	CreatedOn int64  `json:"created_on"`
}

func (m Member) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
}

// memberListResponse is the platform's envelope: an HTTP 200 can still
// carry a business error in the status object.
type memberListResponse struct {
	Status struct {
		StatusCode int    `json:"statuscode"`
		Message    string `json:"statusmessage"`
	} `json:"status"`
	Result []Member `json:"result"`
}

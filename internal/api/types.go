package api

// User is a club member record. The backend sends Phone with an uppercase
// key and that casing must survive round trips, so the tag keeps it.
type User struct {
	ID        int    `json:"id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"Phone,omitempty"`
	Role      string `json:"role,omitempty"`
	CardID    string `json:"card_id,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	LastSeen  string `json:"last_seen,omitempty"`
}

// Card links a physical access card to a member.
type Card struct {
	ID     int    `json:"id,omitempty"`
	CardID string `json:"card_id,omitempty"`
	UserID int    `json:"user_id,omitempty"`
	Status string `json:"status,omitempty"`
}

// AttendanceRecord is a single entry or exit event.
type AttendanceRecord struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name"`
	CardID   string `json:"card_id"`
	Time     string `json:"timestamp"`
	Type     string `json:"type"`
	Method   string `json:"method"`
}

// Profile is the authenticated account's own record.
type Profile struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what a successful login yields after the token has been
// pulled out of whichever envelope field the backend put it in. Envelope
// keeps the untouched response body for callers that need sibling fields.
type LoginResult struct {
	Token    string
	User     *Profile
	Envelope map[string]any
}

// Stats aggregates dashboard counters computed from the list endpoints.
type Stats struct {
	TotalUsers        int
	ActiveUsers       int
	TotalCards        int
	TodayAttendance   int
	MonthlyAttendance int
}

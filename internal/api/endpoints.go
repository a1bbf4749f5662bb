package api

import "fmt"

// Backend routes. The casing is uneven because the backend's is; every
// path must match it byte for byte.
const (
	EndpointLogin             = "/api/login"
	EndpointLogout            = "/api/logoutFromApp"
	EndpointLogoutFromClub    = "/api/logoutFromClub"
	EndpointProfile           = "/api/profile"
	EndpointUsers             = "/api/User"
	EndpointCards             = "/api/Card"
	EndpointAttendance        = "/api/attendance_records"
	EndpointMonthlyAttendance = "/api/monthlyAttendance"
	EndpointUnknownCards      = "/api/unknownCards"
)

func userByID(id int) string {
	return fmt.Sprintf("%s/%d", EndpointUsers, id)
}

func cardByID(id int) string {
	return fmt.Sprintf("%s/%d", EndpointCards, id)
}

// cardForUser shares the /api/Card/{n} shape with cardByID; the backend
// distinguishes them by method.
func cardForUser(userID int) string {
	return fmt.Sprintf("%s/%d", EndpointCards, userID)
}

func attendanceByUser(userID int) string {
	return fmt.Sprintf("/api/Attendance_Records_By_UserId/%d", userID)
}

func transactionForCard(cardCode string) string {
	return fmt.Sprintf("/api/Transaction/%s", cardCode)
}

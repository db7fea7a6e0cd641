package services

import "fmt"

// API routes, relative to the versioned base URL.
const (
	routeAuthLogin    = "/auth/login"
	routeAuthRegister = "/auth/register"
	routeAuthRefresh  = "/auth/refresh"
	routeAuthLogout   = "/auth/logout"

	routeUserMe = "/user/me"
	routeUsers  = "/user"

	routeEvents     = "/event"
	routeCategories = "/category"
	routeAttendance = "/attendance"
)

func routeUser(id string) string {
	return fmt.Sprintf("%s/%s", routeUsers, id)
}

func routeEvent(id string) string {
	return fmt.Sprintf("%s/%s", routeEvents, id)
}

func routeEventSimilar(id string) string {
	return fmt.Sprintf("%s/%s/similar", routeEvents, id)
}

func routeCategory(id string) string {
	return fmt.Sprintf("%s/%s", routeCategories, id)
}

func routeAttendanceByID(id string) string {
	return fmt.Sprintf("%s/%s", routeAttendance, id)
}

func routeAttendanceByEvent(eventID string) string {
	return fmt.Sprintf("%s/event/%s", routeAttendance, eventID)
}

func routeAttendanceByUser(userID string) string {
	return fmt.Sprintf("%s/user/%s", routeAttendance, userID)
}

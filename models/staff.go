package models

// StaffMember records course staff check-ins, keyed by netid.
type StaffMember struct {
	CheckinTimes []string `json:"checkin_times"`
}

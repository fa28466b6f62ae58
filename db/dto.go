package db

const (
	// DefaultTimeZone is assigned to a user until their city is set.
	DefaultTimeZone = "UTC"

	statusActive = "active"
)

// User mirrors a row of the users table.
type User struct {
	ID         int64
	Username   string
	FirstName  string
	TimeZone   string // IANA zone identifier
	City       string // empty until the user sets it
	HasSetCity bool
	IsAdmin    bool
	IsBanned   bool
}

// Reminder mirrors a row of the reminders table. CreatedAt and RemindAt are
// kept as text already formatted in the owner's time zone.
type Reminder struct {
	ID          int64
	Owner       int64
	Title       string
	Text        string
	CreatedAt   string
	RemindAt    string
	Status      string
	IsRepeating bool
	IsEnabled   bool
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pkg/errors"
)

/**
DB tables:
- users:
	- user_id: bigint - user ID, primary key
	- username: text - Telegram username
	- first_name: text - display name
	- timezone: text - IANA zone identifier, 'UTC' until the city is set
	- city: text - city as the user typed it, NULL until set
	- has_set_city: boolean - onboarding finished
	- is_admin: boolean
	- is_banned: boolean
	- registered_at: timestamptz - first contact

- reminders:
	- reminder_id: bigserial - primary key, listing order
	- user_id: bigint - owner
	- title: text
	- body: text
	- created_at: text - creation time formatted in the owner's time zone
	- remind_at: text - due time formatted the same way
	- status: text - 'active' on insert
	- is_repeating: boolean - false on insert
	- is_enabled: boolean - true on insert
*/

var (
	noCtx                  = context.Background()
	repeatableReadIsoLevel = pgx.TxOptions{IsoLevel: pgx.RepeatableRead}
)

// UserExists reports whether the user has a stored record.
func (d *Database) UserExists(usr int64) (bool, error) {
	var id int64
	err := d.Conn.QueryRow(noCtx, `SELECT user_id FROM users WHERE user_id=$1`, usr).Scan(&id)

	switch {
	case err == pgx.ErrNoRows:
		return false, nil
	case err != nil:
		return false, errors.Wrap(err, "failed checking user")
	}

	return true, nil
}

// GetUser fetches the user's record. A missing user is (nil, nil).
func (d *Database) GetUser(usr int64) (*User, error) {
	var u User
	var username, city pgtype.Text
	err := d.Conn.QueryRow(noCtx, `SELECT user_id, username, first_name, timezone, city, has_set_city, is_admin, is_banned
FROM users
WHERE user_id=$1`, usr).Scan(&u.ID, &username, &u.FirstName, &u.TimeZone, &city, &u.HasSetCity, &u.IsAdmin, &u.IsBanned)

	switch {
	case err == pgx.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(err, "failed fetching user")
	}

	if username.Valid {
		u.Username = username.String
	}
	if city.Valid {
		u.City = city.String
	}

	return &u, nil
}

// CreateUser inserts a new user unless the record already exists.
// UTC timezone is used by default.
func (d *Database) CreateUser(u *User) error {
	tx, err := d.Conn.BeginTx(noCtx, repeatableReadIsoLevel)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback(noCtx)

	var id int64
	err = tx.QueryRow(noCtx, `SELECT user_id FROM users WHERE user_id=$1`, u.ID).Scan(&id)

	switch {
	case err == pgx.ErrNoRows:
		if _, err := tx.Exec(noCtx, `INSERT INTO users(user_id, username, first_name, timezone, has_set_city, is_admin, is_banned, registered_at)
VALUES($1, $2, $3, $4, $5, $6, $7, now())`,
			u.ID, u.Username, u.FirstName, u.TimeZone, u.HasSetCity, u.IsAdmin, u.IsBanned); err != nil {
			return errors.Wrap(err, "failed inserting user")
		}

	case err != nil:
		return errors.Wrap(err, "failed creating user")
	}

	if err := tx.Commit(noCtx); err != nil {
		return errors.Wrap(err, "failed adding user")
	}
	return nil
}

// UpdateUser rewrites the mutable user fields.
func (d *Database) UpdateUser(u *User) error {
	_, err := d.Conn.Exec(noCtx, `UPDATE users
SET username=$1, first_name=$2, timezone=$3, is_admin=$4, is_banned=$5
WHERE user_id=$6`, u.Username, u.FirstName, u.TimeZone, u.IsAdmin, u.IsBanned, u.ID)
	if err != nil {
		return errors.Wrap(err, "failed updating user")
	}
	return nil
}

// SetCity stores the user's city and time zone and finishes onboarding.
func (d *Database) SetCity(usr int64, city string, tz string) error {
	_, err := d.Conn.Exec(noCtx, `UPDATE users
SET city=$1, timezone=$2, has_set_city=TRUE
WHERE user_id=$3`, city, tz, usr)
	if err != nil {
		return errors.Wrap(err, "failed updating city")
	}
	return nil
}

// AddReminder appends a reminder at the end of the user's list.
func (d *Database) AddReminder(usr int64, title string, text string, createdAt string, remindAt string) error {
	if _, err := d.Conn.Exec(noCtx, `INSERT INTO reminders(user_id, title, body, created_at, remind_at, status, is_repeating, is_enabled)
VALUES($1, $2, $3, $4, $5, $6, FALSE, TRUE)`, usr, title, text, createdAt, remindAt, statusActive); err != nil {
		return errors.Wrap(err, "failed to add reminder")
	}

	return nil
}

// GetAllReminders returns the user's reminders in insertion order.
func (d *Database) GetAllReminders(usr int64) ([]Reminder, error) {
	rows, err := d.Conn.Query(noCtx, `SELECT reminder_id, user_id, title, body, created_at, remind_at, status, is_repeating, is_enabled
FROM reminders
WHERE user_id=$1
ORDER BY reminder_id ASC`, usr)
	if err != nil {
		return nil, errors.Wrap(err, "failed querying reminders")
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var r Reminder
		err := rows.Scan(&r.ID, &r.Owner, &r.Title, &r.Text, &r.CreatedAt, &r.RemindAt, &r.Status, &r.IsRepeating, &r.IsEnabled)
		if err != nil {
			return nil, errors.Wrap(err, "failed scanning reminder")
		}

		reminders = append(reminders, r)
	}

	return reminders, rows.Err()
}

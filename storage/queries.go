package storage

import (
	"context"
	"database/sql"
	"time"
)

// Queries is the hand-written query layer over the sqlite schema.
type Queries struct {
	db *sql.DB
}

func NewQueries(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type ContactRequest struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Phone          sql.NullString
	Subject        string
	Message        string
	RecaptchaScore sql.NullFloat64
	IPAddress      sql.NullString
	UserAgent      sql.NullString
	CreatedAt      time.Time
}

type CreateContactRequestParams struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Phone          sql.NullString
	Subject        string
	Message        string
	RecaptchaScore sql.NullFloat64
	IPAddress      sql.NullString
	UserAgent      sql.NullString
}

func (q *Queries) CreateContactRequest(ctx context.Context, arg CreateContactRequestParams) (ContactRequest, error) {
	const query = `
		INSERT INTO contact_requests (id, first_name, last_name, email, phone, subject, message, recaptcha_score, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, first_name, last_name, email, phone, subject, message, recaptcha_score, ip_address, user_agent, created_at`
	row := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.FirstName, arg.LastName, arg.Email, arg.Phone,
		arg.Subject, arg.Message, arg.RecaptchaScore, arg.IPAddress, arg.UserAgent)
	var cr ContactRequest
	err := row.Scan(&cr.ID, &cr.FirstName, &cr.LastName, &cr.Email, &cr.Phone,
		&cr.Subject, &cr.Message, &cr.RecaptchaScore, &cr.IPAddress, &cr.UserAgent, &cr.CreatedAt)
	return cr, err
}

func (q *Queries) GetContactRequest(ctx context.Context, id string) (ContactRequest, error) {
	const query = `
		SELECT id, first_name, last_name, email, phone, subject, message, recaptcha_score, ip_address, user_agent, created_at
		FROM contact_requests WHERE id = ?`
	var cr ContactRequest
	err := q.db.QueryRowContext(ctx, query, id).Scan(&cr.ID, &cr.FirstName, &cr.LastName, &cr.Email,
		&cr.Phone, &cr.Subject, &cr.Message, &cr.RecaptchaScore, &cr.IPAddress, &cr.UserAgent, &cr.CreatedAt)
	return cr, err
}

func (q *Queries) ListContactRequests(ctx context.Context, limit, offset int64) ([]ContactRequest, error) {
	const query = `
		SELECT id, first_name, last_name, email, phone, subject, message, recaptcha_score, ip_address, user_agent, created_at
		FROM contact_requests ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := q.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContactRequest
	for rows.Next() {
		var cr ContactRequest
		if err := rows.Scan(&cr.ID, &cr.FirstName, &cr.LastName, &cr.Email, &cr.Phone,
			&cr.Subject, &cr.Message, &cr.RecaptchaScore, &cr.IPAddress, &cr.UserAgent, &cr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

type Booking struct {
	ID             string
	CustomerName   string
	Email          string
	Phone          sql.NullString
	Package        string
	SkillLevel     sql.NullString
	RequestedDate  string
	RequestedSlot  string
	Notes          sql.NullString
	Status         string
	RecaptchaScore sql.NullFloat64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateBookingParams struct {
	ID             string
	CustomerName   string
	Email          string
	Phone          sql.NullString
	Package        string
	SkillLevel     sql.NullString
	RequestedDate  string
	RequestedSlot  string
	Notes          sql.NullString
	RecaptchaScore sql.NullFloat64
}

const bookingColumns = `id, customer_name, email, phone, package, skill_level, requested_date, requested_slot, notes, status, recaptcha_score, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.CustomerName, &b.Email, &b.Phone, &b.Package, &b.SkillLevel,
		&b.RequestedDate, &b.RequestedSlot, &b.Notes, &b.Status, &b.RecaptchaScore, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (q *Queries) CreateBooking(ctx context.Context, arg CreateBookingParams) (Booking, error) {
	query := `
		INSERT INTO bookings (id, customer_name, email, phone, package, skill_level, requested_date, requested_slot, notes, recaptcha_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + bookingColumns
	row := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.CustomerName, arg.Email, arg.Phone, arg.Package, arg.SkillLevel,
		arg.RequestedDate, arg.RequestedSlot, arg.Notes, arg.RecaptchaScore)
	return scanBooking(row)
}

func (q *Queries) GetBooking(ctx context.Context, id string) (Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(q.db.QueryRowContext(ctx, query, id))
}

func (q *Queries) ListBookingsByDate(ctx context.Context, requestedDate string) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE requested_date = ? AND status != 'cancelled' ORDER BY requested_slot`
	rows, err := q.db.QueryContext(ctx, query, requestedDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (q *Queries) UpdateBookingStatus(ctx context.Context, id, status string) (Booking, error) {
	query := `
		UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING ` + bookingColumns
	return scanBooking(q.db.QueryRowContext(ctx, query, status, id))
}

type EmailLogEntry struct {
	ID             string
	RecipientEmail string
	EmailType      string
	Subject        string
	CreatedAt      time.Time
}

type CreateEmailLogParams struct {
	ID             string
	RecipientEmail string
	EmailType      string
	Subject        string
}

func (q *Queries) CreateEmailLog(ctx context.Context, arg CreateEmailLogParams) (EmailLogEntry, error) {
	const query = `
		INSERT INTO email_log (id, recipient_email, email_type, subject)
		VALUES (?, ?, ?, ?)
		RETURNING id, recipient_email, email_type, subject, created_at`
	row := q.db.QueryRowContext(ctx, query, arg.ID, arg.RecipientEmail, arg.EmailType, arg.Subject)
	var e EmailLogEntry
	err := row.Scan(&e.ID, &e.RecipientEmail, &e.EmailType, &e.Subject, &e.CreatedAt)
	return e, err
}

func (q *Queries) ListEmailLogByRecipient(ctx context.Context, recipientEmail string) ([]EmailLogEntry, error) {
	const query = `
		SELECT id, recipient_email, email_type, subject, created_at
		FROM email_log WHERE recipient_email = ? ORDER BY created_at DESC`
	rows, err := q.db.QueryContext(ctx, query, recipientEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmailLogEntry
	for rows.Next() {
		var e EmailLogEntry
		if err := rows.Scan(&e.ID, &e.RecipientEmail, &e.EmailType, &e.Subject, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"snapbooth/models"
	"strings"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for values the schema does not allow
	ErrInvalid = errors.New("invalid value")
)

const (
	defaultMaxPhotos = 50
	defaultPaperSize = "4R"
)

// Store persists booth events, their photos and share requests
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Event operations

const eventColumns = `id, name, date, time, location, description, max_photos,
	paper_size, template_image, photo_boxes, created_at`

func (s *Store) CreateEvent(e models.Event) (int64, error) {
	if e.MaxPhotos <= 0 {
		e.MaxPhotos = defaultMaxPhotos
	}
	if e.PaperSize == "" {
		e.PaperSize = defaultPaperSize
	}

	res, err := s.db.Exec(`INSERT INTO events
		(name, date, time, location, description, max_photos, paper_size, template_image, photo_boxes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Date, e.Time, nullString(e.Location), nullString(e.Description),
		e.MaxPhotos, e.PaperSize, nullString(e.TemplateImage), nullString(e.PhotoBoxes))
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) GetEvent(id int64) (*models.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return e, nil
}

// ListEvents returns all events, newest first
func (s *Store) ListEvents() ([]models.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// UpdateEvent changes only the fields set in u
func (s *Store) UpdateEvent(id int64, u models.EventUpdate) error {
	var fields []string
	var values []any

	set := func(column string, v any) {
		fields = append(fields, column+" = ?")
		values = append(values, v)
	}
	if u.Name != nil {
		set("name", *u.Name)
	}
	if u.Date != nil {
		set("date", *u.Date)
	}
	if u.Time != nil {
		set("time", *u.Time)
	}
	if u.Location != nil {
		set("location", *u.Location)
	}
	if u.Description != nil {
		set("description", *u.Description)
	}
	if u.MaxPhotos != nil {
		if *u.MaxPhotos <= 0 {
			return fmt.Errorf("max_photos must be > 0: %w", ErrInvalid)
		}
		set("max_photos", *u.MaxPhotos)
	}

	if len(fields) == 0 {
		return nil
	}

	values = append(values, id)
	res, err := s.db.Exec(`UPDATE events SET `+strings.Join(fields, ", ")+` WHERE id = ?`, values...)
	if err != nil {
		return fmt.Errorf("update event %d: %w", id, err)
	}
	return expectRow(res, "event", id)
}

// DeleteEvent removes an event along with its photos and their shares
func (s *Store) DeleteEvent(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM shares WHERE photo_id IN (SELECT id FROM photos WHERE event_id = ?)`, id); err != nil {
		return fmt.Errorf("delete shares of event %d: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM photos WHERE event_id = ?`, id); err != nil {
		return fmt.Errorf("delete photos of event %d: %w", id, err)
	}
	res, err := tx.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	if err := expectRow(res, "event", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Photo operations

func (s *Store) AddPhoto(p models.Photo) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO photos (event_id, file_path) VALUES (?, ?)`, p.EventID, p.FilePath)
	if err != nil {
		return 0, fmt.Errorf("insert photo: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) GetPhoto(id int64) (*models.Photo, error) {
	var p models.Photo
	err := s.db.QueryRow(`SELECT id, event_id, file_path, taken_at FROM photos WHERE id = ?`, id).
		Scan(&p.ID, &p.EventID, &p.FilePath, &p.TakenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("photo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get photo %d: %w", id, err)
	}
	return &p, nil
}

// EventPhotos returns the photos of an event, newest first
func (s *Store) EventPhotos(eventID int64) ([]models.Photo, error) {
	rows, err := s.db.Query(`SELECT id, event_id, file_path, taken_at FROM photos
		WHERE event_id = ? ORDER BY taken_at DESC, id DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.EventID, &p.FilePath, &p.TakenAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (s *Store) PhotoCount(eventID int64) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM photos WHERE event_id = ?`, eventID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return n, nil
}

// Share operations

func (s *Store) CreateShare(sh models.Share) (int64, error) {
	if !models.ValidShareType(sh.Type) {
		return 0, fmt.Errorf("share type %q: %w", sh.Type, ErrInvalid)
	}
	if sh.Status == "" {
		sh.Status = models.StatusPending
	}
	if !models.ValidShareStatus(sh.Status) {
		return 0, fmt.Errorf("share status %q: %w", sh.Status, ErrInvalid)
	}

	res, err := s.db.Exec(`INSERT INTO shares (photo_id, type, status, destination) VALUES (?, ?, ?, ?)`,
		sh.PhotoID, sh.Type, sh.Status, nullString(sh.Destination))
	if err != nil {
		return 0, fmt.Errorf("insert share: %w", err)
	}
	return res.LastInsertId()
}

// EventShares returns the shares of all photos of an event, newest first
func (s *Store) EventShares(eventID int64) ([]models.Share, error) {
	rows, err := s.db.Query(`SELECT s.id, s.photo_id, s.type, s.status, s.destination, s.created_at, p.event_id
		FROM shares s
		JOIN photos p ON s.photo_id = p.id
		WHERE p.event_id = ?
		ORDER BY s.created_at DESC, s.id DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	defer rows.Close()

	shares := []models.Share{}
	for rows.Next() {
		var sh models.Share
		var dest sql.NullString
		if err := rows.Scan(&sh.ID, &sh.PhotoID, &sh.Type, &sh.Status, &dest, &sh.CreatedAt, &sh.EventID); err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		sh.Destination = dest.String
		shares = append(shares, sh)
	}
	return shares, rows.Err()
}

// ShareStats counts shares per type for an event
func (s *Store) ShareStats(eventID int64) ([]models.ShareStat, error) {
	rows, err := s.db.Query(`SELECT
			s.type,
			COUNT(*),
			SUM(CASE WHEN s.status = 'completed' THEN 1 ELSE 0 END),
			SUM(CASE WHEN s.status = 'pending' THEN 1 ELSE 0 END)
		FROM shares s
		JOIN photos p ON s.photo_id = p.id
		WHERE p.event_id = ?
		GROUP BY s.type
		ORDER BY s.type`, eventID)
	if err != nil {
		return nil, fmt.Errorf("share stats: %w", err)
	}
	defer rows.Close()

	stats := []models.ShareStat{}
	for rows.Next() {
		var st models.ShareStat
		if err := rows.Scan(&st.Type, &st.Total, &st.Completed, &st.Pending); err != nil {
			return nil, fmt.Errorf("scan share stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *Store) UpdateShareStatus(id int64, status string) error {
	if !models.ValidShareStatus(status) {
		return fmt.Errorf("share status %q: %w", status, ErrInvalid)
	}
	res, err := s.db.Exec(`UPDATE shares SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update share %d: %w", id, err)
	}
	return expectRow(res, "share", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*models.Event, error) {
	var e models.Event
	var location, description, paperSize, templateImage, photoBoxes sql.NullString
	var maxPhotos sql.NullInt64

	if err := row.Scan(&e.ID, &e.Name, &e.Date, &e.Time, &location, &description, &maxPhotos,
		&paperSize, &templateImage, &photoBoxes, &e.CreatedAt); err != nil {
		return nil, err
	}

	e.Location = location.String
	e.Description = description.String
	e.MaxPhotos = int(maxPhotos.Int64)
	e.PaperSize = paperSize.String
	e.TemplateImage = templateImage.String
	e.PhotoBoxes = photoBoxes.String
	return &e, nil
}

func expectRow(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

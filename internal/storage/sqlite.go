package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Notification is one reminder document shown in the app's notification
// feed. Fields mirror the mobile client's wire shape.
type Notification struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Read    bool   `json:"read"`
	Type    string `json:"type"`
}

// WearableReading is one snapshot of mock wearable-device vitals.
type WearableReading struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	HeartRate      int       `json:"heartRate"`
	BloodGlucose   float64   `json:"bloodGlucose"`
	BloodOxygen    float64   `json:"bloodOxygen"`
	Temperature    float64   `json:"temperature"`
	Steps          int       `json:"steps"`
	CaloriesBurned int       `json:"caloriesBurned"`
	SleepDuration  float64   `json:"sleepDuration"`
	Timestamp      time.Time `json:"timestamp"`
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		dbPath = filepath.Join("data", "medimind.db")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS notifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			time TEXT NOT NULL,
			read INTEGER NOT NULL DEFAULT 0,
			type TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`); err != nil {
		return fmt.Errorf("create notifications table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS wearable_readings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL DEFAULT '',
			age INTEGER NOT NULL DEFAULT 0,
			gender TEXT NOT NULL DEFAULT '',
			heart_rate INTEGER NOT NULL,
			blood_glucose REAL NOT NULL,
			blood_oxygen REAL NOT NULL,
			temperature REAL NOT NULL,
			steps INTEGER NOT NULL,
			calories_burned INTEGER NOT NULL,
			sleep_duration REAL NOT NULL,
			timestamp TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("create wearable_readings table: %w", err)
	}

	if _, err := s.db.Exec("CREATE INDEX IF NOT EXISTS idx_wearable_timestamp ON wearable_readings(timestamp)"); err != nil {
		return fmt.Errorf("create wearable_readings index: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateNotification stores a reminder and returns it with its assigned id.
func (s *SQLiteStore) CreateNotification(n Notification) (Notification, error) {
	res, err := s.db.Exec(
		`INSERT INTO notifications(title, message, time, read, type) VALUES(?, ?, ?, ?, ?)`,
		n.Title, n.Message, n.Time, boolToInt(n.Read), n.Type,
	)
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Notification{}, fmt.Errorf("notification insert id: %w", err)
	}
	n.ID = id
	return n, nil
}

func (s *SQLiteStore) ListNotifications() ([]Notification, error) {
	rows, err := s.db.Query(
		`SELECT id, title, message, time, read, type FROM notifications ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		var read int
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Time, &read, &n.Type); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Read = read != 0
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return notifications, nil
}

// AddWearableReading stores one vitals snapshot and returns it with its id.
func (s *SQLiteStore) AddWearableReading(r WearableReading) (WearableReading, error) {
	res, err := s.db.Exec(
		`INSERT INTO wearable_readings(name, age, gender, heart_rate, blood_glucose, blood_oxygen, temperature, steps, calories_burned, sleep_duration, timestamp)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.Age, r.Gender, r.HeartRate, r.BloodGlucose, r.BloodOxygen,
		r.Temperature, r.Steps, r.CaloriesBurned, r.SleepDuration,
		r.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return WearableReading{}, fmt.Errorf("insert wearable reading: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return WearableReading{}, fmt.Errorf("wearable reading insert id: %w", err)
	}
	r.ID = id
	return r, nil
}

// ListWearableReadings returns all readings, newest first.
func (s *SQLiteStore) ListWearableReadings() ([]WearableReading, error) {
	rows, err := s.db.Query(
		`SELECT id, name, age, gender, heart_rate, blood_glucose, blood_oxygen, temperature, steps, calories_burned, sleep_duration, timestamp
		 FROM wearable_readings ORDER BY timestamp DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query wearable readings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var readings []WearableReading
	for rows.Next() {
		var r WearableReading
		var ts string
		if err := rows.Scan(&r.ID, &r.Name, &r.Age, &r.Gender, &r.HeartRate, &r.BloodGlucose, &r.BloodOxygen, &r.Temperature, &r.Steps, &r.CaloriesBurned, &r.SleepDuration, &ts); err != nil {
			return nil, fmt.Errorf("scan wearable reading: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse wearable reading timestamp: %w", err)
		}
		r.Timestamp = parsed
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wearable reading rows: %w", err)
	}

	return readings, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

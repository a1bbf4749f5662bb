package mockapi

import (
	"fmt"
	"sync"
	"time"
)

type userRecord struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"Phone"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	CardID    string `json:"card_id"`
	Status    string `json:"status"`
	LastSeen  string `json:"last_seen"`
}

type cardRecord struct {
	ID     int    `json:"id"`
	CardID string `json:"card_id"`
	UserID int    `json:"user_id"`
	Status string `json:"status"`
}

type attendanceRecord struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name"`
	CardID   string `json:"card_id"`
	Time     string `json:"timestamp"`
	Type     string `json:"type"`
	Method   string `json:"method"`
}

// dataset is the in-memory state behind the mock routes. All access goes
// through the mutex; gin serves requests concurrently.
type dataset struct {
	mu           sync.Mutex
	users        []userRecord
	cards        []cardRecord
	attendance   []attendanceRecord
	unknownCards []string
	tokens       map[string]bool
}

func seedDataset() *dataset {
	return &dataset{
		users: []userRecord{
			{ID: 1, FirstName: "سنا", LastName: "مسلم", Email: "sana@robotics.club", Phone: "0987654321", Role: "Admin", CreatedAt: "2024-01-15", CardID: "1111", Status: "active", LastSeen: "2024-11-24 09:30:00"},
			{ID: 2, FirstName: "سلام", LastName: "مسلم", Email: "salam@robotics.club", Phone: "0987654322", Role: "User", CreatedAt: "2024-01-16", CardID: "2222", Status: "active", LastSeen: "2024-11-24 10:15:00"},
			{ID: 3, FirstName: "إيمان", LastName: "غباش", Email: "iman@robotics.club", Phone: "0987654323", Role: "User", CreatedAt: "2024-01-17", CardID: "3333", Status: "active", LastSeen: "2024-11-24 11:00:00"},
			{ID: 4, FirstName: "حلا", LastName: "عرقسوسي", Email: "hala@robotics.club", Phone: "0987654324", Role: "User", CreatedAt: "2024-01-18", CardID: "4444", Status: "inactive", LastSeen: "2024-11-23 14:20:00"},
			{ID: 5, FirstName: "أيمن", LastName: "الأحمد", Email: "ayman@robotics.club", Phone: "0987654325", Role: "User", CreatedAt: "2024-01-19", CardID: "5555", Status: "active", LastSeen: "2024-11-24 08:45:00"},
		},
		cards: []cardRecord{
			{ID: 1, CardID: "1111", UserID: 1, Status: "active"},
			{ID: 2, CardID: "2222", UserID: 2, Status: "active"},
			{ID: 3, CardID: "3333", UserID: 3, Status: "active"},
			{ID: 4, CardID: "4444", UserID: 4, Status: "active"},
			{ID: 5, CardID: "5555", UserID: 5, Status: "active"},
		},
		attendance: []attendanceRecord{
			{ID: 1, UserID: 1, UserName: "سنا مسلم", CardID: "1111", Time: "2024-11-24 09:30:00", Type: "entry", Method: "RFID"},
			{ID: 2, UserID: 2, UserName: "سلام مسلم", CardID: "2222", Time: "2024-11-24 10:15:00", Type: "entry", Method: "Face Recognition"},
			{ID: 3, UserID: 3, UserName: "إيمان غباش", CardID: "3333", Time: "2024-11-24 11:00:00", Type: "entry", Method: "RFID"},
			{ID: 4, UserID: 1, UserName: "سنا مسلم", CardID: "1111", Time: "2024-11-24 17:30:00", Type: "exit", Method: "RFID"},
			{ID: 5, UserID: 4, UserName: "حلا عرقسوسي", CardID: "4444", Time: "2024-11-24 14:20:00", Type: "entry", Method: "Face Recognition"},
			{ID: 6, UserID: 5, UserName: "أيمن الأحمد", CardID: "5555", Time: "2024-11-24 08:45:00", Type: "entry", Method: "RFID"},
		},
		unknownCards: []string{},
		tokens:       map[string]bool{},
	}
}

func (d *dataset) mintToken() string {
	token := fmt.Sprintf("mock-token-%d", time.Now().UnixNano())
	d.mu.Lock()
	d.tokens[token] = true
	d.mu.Unlock()
	return token
}

func (d *dataset) revokeToken(token string) {
	d.mu.Lock()
	delete(d.tokens, token)
	d.mu.Unlock()
}

func (d *dataset) validToken(token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tokens[token]
}

func (d *dataset) nextUserID() int {
	id := 0
	for _, u := range d.users {
		if u.ID > id {
			id = u.ID
		}
	}
	return id + 1
}

func (d *dataset) nextCardID() int {
	id := 0
	for _, c := range d.cards {
		if c.ID > id {
			id = c.ID
		}
	}
	return id + 1
}

func (d *dataset) nextAttendanceID() int {
	id := 0
	for _, a := range d.attendance {
		if a.ID > id {
			id = a.ID
		}
	}
	return id + 1
}

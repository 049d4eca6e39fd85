package feedback

import "time"

const (
	DefaultName      = "Anonymous"
	MaxMessageLength = 5000
)

type Reply struct {
	AdminName  string    `json:"adminName"`
	AdminEmail string    `json:"adminEmail"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      Category  `json:"type"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubmitRequest struct {
	Name    string
	Email   string
	Type    Category
	Message string
}

// Admin identifies who wrote a reply.
type Admin struct {
	Name  string
	Email string
}

// Count is one (type, status) group as reported by the store.
type Count struct {
	Type   Category
	Status Status
	N      int
}

type Stats struct {
	Total    int              `json:"total"`
	ByType   map[Category]int `json:"byType"`
	ByStatus map[Status]int   `json:"byStatus"`
}

package postgres

import "time"

const documentsTable = "content_documents"

type documentTableModel struct {
	Resource  string    `db:"resource"`
	Body      []byte    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// documentInsertModel carries the body as text so lib/pq sends it as a
// jsonb literal instead of bytea.
type documentInsertModel struct {
	Resource string `db:"resource"`
	Body     string `db:"body"`
}

package repos

import "github.com/jmoiron/sqlx"

// EventRepo appends to the best-effort cart mutation log. Rows are never read
// on a request path; callers ignore append failures.
type EventRepo struct{ db *sqlx.DB }

func NewEventRepo(db *sqlx.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(userID, productID int64, delta int) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_events(user_id, product_id, delta)
	  VALUES(?,?,?)`, userID, productID, delta)
	return err
}

func (r *EventRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM cart_events`)
	return n, err
}

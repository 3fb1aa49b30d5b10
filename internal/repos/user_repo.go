package repos

import (
	"github.com/Kennyy02/totomotorworx-shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, name, email, password_hash, cart_data, is_admin, disabled, created_at`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailExists(email string) (bool, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email)
	return n > 0, err
}

// Insert creates a user with an empty cart blob and returns the new id.
func (r *UserRepo) Insert(name, email, hash string, isAdmin bool) (int64, error) {
	res, err := r.DB.Exec(`
	  INSERT INTO users(name,email,password_hash,cart_data,is_admin)
	  VALUES(?,?,?,'{}',?)`, name, email, hash, isAdmin)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *UserRepo) All() ([]domain.User, error) {
	out := []domain.User{}
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY id`)
	return out, err
}

func (r *UserRepo) Page(limit, offset int) ([]domain.User, int, error) {
	var total int
	if err := r.DB.Get(&total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, err
	}
	out := []domain.User{}
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY id ASC LIMIT ? OFFSET ?`, limit, offset)
	return out, total, err
}

// Update rewrites name/email and, when hash is non-empty, the password hash.
func (r *UserRepo) Update(id int64, name, email, hash string) error {
	if hash == "" {
		_, err := r.DB.Exec(`UPDATE users SET name=?, email=? WHERE id=?`, name, email, id)
		return err
	}
	_, err := r.DB.Exec(`UPDATE users SET name=?, email=?, password_hash=? WHERE id=?`, name, email, hash, id)
	return err
}

func (r *UserRepo) SetDisabled(id int64, disabled bool) error {
	_, err := r.DB.Exec(`UPDATE users SET disabled=? WHERE id=?`, disabled, id)
	return err
}

// Delete hard-deletes the user row. The embedded cart blob goes with it; no
// other table references users.
func (r *UserRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	return err
}

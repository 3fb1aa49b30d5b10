package repos

import (
	"database/sql"
	"strings"

	"github.com/Kennyy02/totomotorworx-shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT id, name, created_at
	  FROM categories
	  ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name, created_at FROM categories WHERE id = ?`, id)
	return c, err
}

// ExistsName reports whether a category with the same name already exists,
// compared case-insensitively. excludeID skips one row (for renames).
func (r *CategoryRepo) ExistsName(name string, excludeID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM categories
	  WHERE LOWER(name) = LOWER(?) AND id != ?`, strings.TrimSpace(name), excludeID)
	return n > 0, err
}

func (r *CategoryRepo) Insert(name string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO categories(name) VALUES(?)`, strings.TrimSpace(name))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Rename updates the category and rewrites the name reference on every
// product that pointed at the old name.
func (r *CategoryRepo) Rename(id int64, name string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var old string
	if err := tx.Get(&old, `SELECT name FROM categories WHERE id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE categories SET name = ? WHERE id = ?`, name, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE product SET category = ? WHERE category = ?`, name, old); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CategoryRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

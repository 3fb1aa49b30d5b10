package repos

import (
	"github.com/Kennyy02/totomotorworx-shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) All() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, name, image, category, new_price, old_price, stock, available, date
	  FROM product`)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, image, category, new_price, old_price, stock, available, date
	  FROM product
	  WHERE id = ?`, id)
	return p, err
}

// Page returns one page ordered newest-id-first plus the total row count.
func (r *ProductRepo) Page(limit, offset int) ([]domain.Product, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM product`); err != nil {
		return nil, 0, err
	}
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, name, image, category, new_price, old_price, stock, available, date
	  FROM product
	  ORDER BY id DESC
	  LIMIT ? OFFSET ?`, limit, offset)
	return out, total, err
}

// Insert assigns the next id as max(id)+1 and stores the product.
// The read-then-insert pair is not serialized against concurrent inserts;
// the admin console is the only writer.
func (r *ProductRepo) Insert(name, image, category string, newPrice, oldPrice float64) (int64, error) {
	var nextID int64
	if err := r.db.Get(&nextID, `SELECT COALESCE(MAX(id),0)+1 FROM product`); err != nil {
		return 0, err
	}
	_, err := r.db.Exec(`
	  INSERT INTO product(id,name,image,category,new_price,old_price,stock,available,date)
	  VALUES(?,?,?,?,?,?,0,1,CURRENT_TIMESTAMP)`,
		nextID, name, image, category, newPrice, oldPrice)
	if err != nil {
		return 0, err
	}
	return nextID, nil
}

// Delete hard-deletes the row. Outstanding cart references are left dangling;
// analytics reports them as "unknown".
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM product WHERE id = ?`, id)
	return err
}

// Latest returns the n newest products in oldest-first order.
func (r *ProductRepo) Latest(n int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, name, image, category, new_price, old_price, stock, available, date
	  FROM product
	  ORDER BY id DESC
	  LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *ProductRepo) ByCategory(category string, limit int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, name, image, category, new_price, old_price, stock, available, date
	  FROM product
	  WHERE category = ?
	  LIMIT ?`, category, limit)
	return out, err
}

func (r *ProductRepo) CountByCategory(category string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM product WHERE LOWER(category) = LOWER(?)`, category)
	return n, err
}

// DecrementStock takes one unit if any is left. Returns whether a unit was
// actually taken; a missing row or empty stock is not an error.
func (r *ProductRepo) DecrementStock(id int64) (bool, error) {
	res, err := r.db.Exec(`UPDATE product SET stock = stock - 1 WHERE id = ? AND stock > 0`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RestoreStock puts one unit back. There is no ceiling check against the
// original stock level.
func (r *ProductRepo) RestoreStock(id int64) error {
	_, err := r.db.Exec(`UPDATE product SET stock = stock + 1 WHERE id = ?`, id)
	return err
}

// SetStock sets the absolute stock level for admin inventory edits.
// Returns false when the product does not exist.
func (r *ProductRepo) SetStock(id int64, stock int) (bool, error) {
	res, err := r.db.Exec(`UPDATE product SET stock = ? WHERE id = ?`, stock, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

package domain

type User struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"password_hash" json:"-"`
	CartData  string `db:"cart_data" json:"-"`
	IsAdmin   bool   `db:"is_admin" json:"isAdmin"`
	Disabled  bool   `db:"disabled" json:"disabled"`
	CreatedAt string `db:"created_at" json:"date"`
}

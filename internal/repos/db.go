package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// Small fixed pool; callers queue when it is exhausted.
	db.SetMaxOpenConns(4)

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (categories/products/services)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Categories. Name uniqueness is case-insensitive.
CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products. category references categories.name by value, not by id.
CREATE TABLE IF NOT EXISTS product(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  image TEXT,
  category TEXT NOT NULL,
  new_price NUMERIC NOT NULL CHECK (new_price >= 0),
  old_price NUMERIC NOT NULL CHECK (old_price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  available INTEGER NOT NULL DEFAULT 1,
  date TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_product_category ON product(category);

-- Fixed shop services; id space disjoint from products (>= 9001).
CREATE TABLE IF NOT EXISTS services(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0)
);

-- Users with embedded cart blob (JSON object: id -> qty).
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  cart_data TEXT NOT NULL DEFAULT '{}',
  is_admin INTEGER NOT NULL DEFAULT 0,
  disabled INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Best-effort cart mutation log. Append-only, never on the hot read path.
CREATE TABLE IF NOT EXISTS cart_events(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  delta INTEGER NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_cart_events_product ON cart_events(product_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return ensureServices(db)
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(name) VALUES
	  ('part'),
	  ('helmet'),
	  ('accessory')`)

	tx.MustExec(`INSERT INTO product(id,name,image,category,new_price,old_price,stock,available) VALUES
	  (1,'Brake Pad Set','images/brake-pads.jpg','part',24.50,30.00,12,1),
	  (2,'Chain and Sprocket Kit','images/chain-kit.jpg','part',89.00,110.00,6,1),
	  (3,'Full Face Helmet','images/full-face.jpg','helmet',120.00,150.00,4,1),
	  (4,'Handlebar Grips','images/grips.jpg','accessory',9.99,12.99,25,1)`)

	if err := tx.Commit(); err != nil {
		return err
	}
	return ensureServices(db)
}

// ensureServices keeps the fixed service catalog present (idempotent).
func ensureServices(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	type svc struct {
		ID    int64
		Name  string
		Desc  string
		Price float64
	}
	all := []svc{
		{9001, "Oil Change Service", "Keep your engine running smooth with premium oil service.", 35.00},
		{9002, "Air Filter Replacement Service", "Boost fuel efficiency and extend engine life.", 15.00},
		{9003, "Chain Maintenance Service", "Stay safe with professional chain cleaning & adjustments.", 20.00},
		{9004, "Tire Replacement Service", "Better grip and safety with high-quality tires.", 50.00},
	}
	for _, s := range all {
		if _, err := tx.Exec(`
			INSERT INTO services(id,name,description,price)
			VALUES(?,?,?,?)
			ON CONFLICT(id) DO NOTHING
		`, s.ID, s.Name, s.Desc, s.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// seedUsers ensures one USER and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		Email, Name, Hash string
		Admin             int
	}
	mk := func(email, name string, admin int, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 10)
		return u{Email: email, Name: name, Admin: admin, Hash: string(h)}
	}

	users := []u{
		mk("rider@totomotorworx.test", "Rider", 0, "Passw0rd!"),
		mk("admin@totomotorworx.test", "Admin", 1, "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(name,email,password_hash,cart_data,is_admin)
			VALUES(?,?,?,'{}',?)
			ON CONFLICT(email) DO NOTHING
		`, x.Name, x.Email, x.Hash, x.Admin); err != nil {
			return err
		}
	}

	return tx.Commit()
}

package repos

import (
	"github.com/Kennyy02/totomotorworx-shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ServiceRepo struct{ db *sqlx.DB }

func NewServiceRepo(db *sqlx.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) List() ([]domain.Service, error) {
	out := []domain.Service{}
	err := r.db.Select(&out, `SELECT id, name, description, price FROM services ORDER BY id`)
	return out, err
}

func (r *ServiceRepo) Get(id int64) (domain.Service, error) {
	var s domain.Service
	err := r.db.Get(&s, `SELECT id, name, description, price FROM services WHERE id = ?`, id)
	return s, err
}

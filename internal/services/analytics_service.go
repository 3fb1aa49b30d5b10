package services

import (
	"sort"

	"github.com/Kennyy02/totomotorworx-shop/internal/domain"
	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
)

// AnalyticsService ranks items by how often they sit in carts right now.
// The count is currently-held quantity summed across all users, not a
// historical add counter: removals lower a product's rank retroactively.
type AnalyticsService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
	Svcs  *repos.ServiceRepo
}

func NewAnalyticsService(carts *repos.CartRepo, prods *repos.ProductRepo, svcs *repos.ServiceRepo) *AnalyticsService {
	return &AnalyticsService{Carts: carts, Prods: prods, Svcs: svcs}
}

// MostAdded scans every cart blob, sums quantities per id and joins the
// result against the catalog. Ids that left the catalog are reported under
// the "unknown" placeholder instead of being dropped. Output is descending
// by count and deterministic for a fixed snapshot; order among equal counts
// carries no meaning.
func (s *AnalyticsService) MostAdded() ([]domain.RankedItem, error) {
	carts, err := s.Carts.AllCarts()
	if err != nil {
		return nil, err
	}

	counts := map[int64]int{}
	for _, cart := range carts {
		for id, qty := range cart {
			if qty > 0 {
				counts[id] += qty
			}
		}
	}

	prods, err := s.Prods.All()
	if err != nil {
		return nil, err
	}
	svcs, err := s.Svcs.List()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]domain.RankedItem, len(prods)+len(svcs))
	for _, p := range prods {
		names[p.ID] = domain.RankedItem{ID: p.ID, Name: p.Name, Image: p.Image}
	}
	for _, sv := range svcs {
		names[sv.ID] = domain.RankedItem{ID: sv.ID, Name: sv.Name}
	}

	out := make([]domain.RankedItem, 0, len(counts))
	for id, n := range counts {
		item, ok := names[id]
		if !ok {
			item = domain.RankedItem{ID: id, Name: "unknown"}
		}
		item.AddedCount = n
		out = append(out, item)
	}

	// Fixed scan order under the stable sort keeps repeated runs on the same
	// snapshot identical.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].AddedCount > out[j].AddedCount })
	return out, nil
}

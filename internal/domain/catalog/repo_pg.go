package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Item Repository ===========

type itemRepoPG struct{ pool *pgxpool.Pool }

func NewItemRepoPG(pool *pgxpool.Pool) ItemRepository { return &itemRepoPG{pool: pool} }

const itemCols = `id, name, category, unit, default_retail_price, created_at, updated_at`

func (r *itemRepoPG) scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.Unit, &it.DefaultRetailPrice, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

func (r *itemRepoPG) GetByID(ctx context.Context, id string) (*Item, error) {
	return r.scanItem(r.pool.QueryRow(ctx, `SELECT `+itemCols+` FROM item_catalog WHERE id = $1`, id))
}

func (r *itemRepoPG) List(ctx context.Context, limit, offset int) ([]*Item, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM item_catalog`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+itemCols+` FROM item_catalog ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		it, err := r.scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func (r *itemRepoPG) PricesByID(ctx context.Context, ids []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, default_retail_price FROM item_catalog WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

// =========== Service Repository ===========

type serviceRepoPG struct{ pool *pgxpool.Pool }

func NewServiceRepoPG(pool *pgxpool.Pool) ServiceRepository { return &serviceRepoPG{pool: pool} }

const serviceCols = `id, category, name, price, service_fee, created_at, updated_at`

func (r *serviceRepoPG) scanService(row pgx.Row) (*MedicalService, error) {
	var s MedicalService
	err := row.Scan(&s.ID, &s.Category, &s.Name, &s.Price, &s.ServiceFee, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *serviceRepoPG) Get(ctx context.Context, category, id string) (*MedicalService, error) {
	return r.scanService(r.pool.QueryRow(ctx,
		`SELECT `+serviceCols+` FROM medical_service WHERE category = $1 AND id = $2`, category, id))
}

func (r *serviceRepoPG) List(ctx context.Context, category string, limit, offset int) ([]*MedicalService, int, error) {
	where := ``
	args := []interface{}{}
	if category != "" {
		where = ` WHERE category = $1`
		args = append(args, category)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medical_service`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT `+serviceCols+` FROM medical_service%s ORDER BY category, name LIMIT $%d OFFSET $%d`,
		where, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var services []*MedicalService
	for rows.Next() {
		s, err := r.scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, s)
	}
	return services, total, rows.Err()
}

func (r *serviceRepoPG) PricesByKey(ctx context.Context, keys []ServiceKey) (map[ServiceKey]float64, error) {
	prices := make(map[ServiceKey]float64, len(keys))
	if len(keys) == 0 {
		return prices, nil
	}

	categories := make([]string, len(keys))
	ids := make([]string, len(keys))
	for i, k := range keys {
		categories[i] = k.Category
		ids[i] = k.ID
	}

	// unnest pairs the two arrays positionally, so each requested
	// (category, id) tuple is matched exactly.
	rows, err := r.pool.Query(ctx, `
		SELECT ms.category, ms.id, COALESCE(ms.price, ms.service_fee, 0)
		FROM medical_service ms
		JOIN unnest($1::text[], $2::text[]) AS req(category, id)
		  ON ms.category = req.category AND ms.id = req.id`,
		categories, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var k ServiceKey
		var price float64
		if err := rows.Scan(&k.Category, &k.ID, &price); err != nil {
			return nil, err
		}
		prices[k] = price
	}
	return prices, rows.Err()
}

package store

import (
	"context"
	"fmt"

	"storefront/internal/database"
	"storefront/internal/model"
)

const productColumns = `id, name, description, category, price_amount, price_currency, price_unit,
	image_url, is_active, created_by, created_at, updated_at`

// ProductFilter 商品列表查詢條件
type ProductFilter struct {
	Category        string
	IncludeInactive bool
	Limit           int
	Offset          int
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price.Amount,
		&p.Price.Currency,
		&p.Price.Unit,
		&p.ImageURL,
		&p.IsActive,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO products (name, description, category, price_amount, price_currency, price_unit,
		                       image_url, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		p.Name,
		p.Description,
		p.Category,
		p.Price.Amount,
		p.Price.Currency,
		p.Price.Unit,
		p.ImageURL,
		p.IsActive,
		p.CreatedBy,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, wrap("CreateProduct", err)
	}
	return p, nil
}

func GetProductByID(ctx context.Context, db database.DB, id int) (*model.Product, error) {
	p, err := scanProduct(db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrap("GetProductByID", err)
	}
	return &p, nil
}

func productFilter(f ProductFilter) *filter {
	w := &filter{}
	if !f.IncludeInactive {
		w.clauses = append(w.clauses, "is_active")
	}
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	return w
}

// ListProducts 回傳符合條件的商品與總筆數
func ListProducts(ctx context.Context, db database.DB, f ProductFilter) ([]model.Product, int, error) {
	w := productFilter(f)

	var total int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM products`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, wrap("ListProducts", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		productColumns, w.where(), w.next(f.Limit), w.next(f.Offset))
	rows, err := db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, wrap("ListProducts", err)
	}
	products, err := collect(rows, scanProduct)
	if err != nil {
		return nil, 0, wrap("ListProducts", err)
	}
	return products, total, nil
}

// UpdateProduct 以 p 的內容覆寫整筆商品並回填 updated_at
func UpdateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`UPDATE products
		 SET name = $1, description = $2, category = $3, price_amount = $4, price_currency = $5,
		     price_unit = $6, image_url = $7, is_active = $8, updated_at = now()
		 WHERE id = $9
		 RETURNING created_at, updated_at`,
		p.Name,
		p.Description,
		p.Category,
		p.Price.Amount,
		p.Price.Currency,
		p.Price.Unit,
		p.ImageURL,
		p.IsActive,
		p.ID,
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, wrap("UpdateProduct", err)
	}
	return p, nil
}

// DeleteProduct 刪除商品並回傳原本的圖片 URL
func DeleteProduct(ctx context.Context, db database.DB, id int) (string, error) {
	var image string
	if err := db.QueryRow(ctx,
		`DELETE FROM products WHERE id = $1 RETURNING image_url`,
		id,
	).Scan(&image); err != nil {
		return "", wrap("DeleteProduct", err)
	}
	return image, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

const productColumns = `p.id, p.category, p.name, p.quantity, p.unit, p.description, p.expiration_date, p.price, p.active, p.garden_id`

// ProductRepository handles product persistence operations.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product and sets its generated ID.
func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products
		(category, name, quantity, unit, description, expiration_date, price, active, garden_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.Category, p.Name, p.Quantity, p.Unit, p.Description,
		p.ExpirationDate, p.Price, p.Active, p.GardenID,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// List returns every product ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// ListWithGardens returns every product joined with its garden and the garden owner's name.
func (r *ProductRepository) ListWithGardens(ctx context.Context) ([]model.ProductWithGarden, error) {
	query := `SELECT ` + productColumns + `, g.address, u.name
		FROM products p
		JOIN gardens g ON p.garden_id = g.id
		JOIN users u ON g.user_id = u.id
		ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.ProductWithGarden
	for rows.Next() {
		var (
			pg         model.ProductWithGarden
			expiration sql.NullTime
		)
		if err := rows.Scan(
			&pg.ID, &pg.Category, &pg.Name, &pg.Quantity, &pg.Unit, &pg.Description,
			&expiration, &pg.Price, &pg.Active, &pg.GardenID,
			&pg.GardenAddress, &pg.OwnerName,
		); err != nil {
			return nil, err
		}
		pg.ExpirationDate = nullTimePtr(expiration)
		products = append(products, pg)
	}

	return products, rows.Err()
}

// UpdateOwned overwrites product p.ID if its garden belongs to userID.
// The ownership check and the update run in one transaction.
func (r *ProductRepository) UpdateOwned(ctx context.Context, userID int64, p *model.Product) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT p.garden_id FROM products p
				INNER JOIN gardens g ON p.garden_id = g.id
				WHERE p.id = ? AND g.user_id = ? FOR UPDATE`,
			p.ID, userID,
		).Scan(&p.GardenID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrProductNotFound
			}
			return err
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE products SET category = ?, name = ?, quantity = ?, unit = ?, description = ?,
				expiration_date = ?, price = ?, active = ? WHERE id = ?`,
			p.Category, p.Name, p.Quantity, p.Unit, p.Description,
			p.ExpirationDate, p.Price, p.Active, p.ID,
		)
		if err != nil {
			return err
		}
		return affectedOrErr(result, ErrProductNotFound)
	})
}

// DeleteOwned removes product id if its garden belongs to userID.
func (r *ProductRepository) DeleteOwned(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE p FROM products p INNER JOIN gardens g ON p.garden_id = g.id
			WHERE p.id = ? AND g.user_id = ?`,
		id, userID,
	)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrProductNotFound)
}

func scanProduct(rows *sql.Rows) (model.Product, error) {
	var (
		p          model.Product
		expiration sql.NullTime
	)
	err := rows.Scan(
		&p.ID, &p.Category, &p.Name, &p.Quantity, &p.Unit, &p.Description,
		&expiration, &p.Price, &p.Active, &p.GardenID,
	)
	p.ExpirationDate = nullTimePtr(expiration)
	return p, err
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

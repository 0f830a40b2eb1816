package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

const gardenColumns = `id, address, latitude, longitude, category, user_id`

// GardenRepository handles garden persistence operations.
type GardenRepository struct {
	db *sql.DB
}

// NewGardenRepository creates a new GardenRepository.
func NewGardenRepository(db *sql.DB) *GardenRepository {
	return &GardenRepository{db: db}
}

// Create inserts a garden for garden.UserID. uq_gardens_user allows one
// garden per user, so a second or racing insert returns ErrGardenExists.
func (r *GardenRepository) Create(ctx context.Context, garden *model.Garden) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO gardens (address, latitude, longitude, category, user_id) VALUES (?, ?, ?, ?, ?)`,
		garden.Address, garden.Latitude, garden.Longitude, garden.Category, garden.UserID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrGardenExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	garden.ID = id
	return nil
}

// GetByID retrieves a garden by its ID.
func (r *GardenRepository) GetByID(ctx context.Context, id int64) (*model.Garden, error) {
	query := `SELECT ` + gardenColumns + ` FROM gardens WHERE id = ?`
	return scanGarden(r.db.QueryRowContext(ctx, query, id))
}

// GetByUserID retrieves the garden owned by a user.
func (r *GardenRepository) GetByUserID(ctx context.Context, userID int64) (*model.Garden, error) {
	query := `SELECT ` + gardenColumns + ` FROM gardens WHERE user_id = ?`
	return scanGarden(r.db.QueryRowContext(ctx, query, userID))
}

// ListWithOwners returns every garden along with its owner's stored address.
func (r *GardenRepository) ListWithOwners(ctx context.Context) ([]model.GardenWithOwner, error) {
	query := `SELECT g.id, g.address, g.latitude, g.longitude, g.category, g.user_id, u.address
		FROM gardens g JOIN users u ON u.id = g.user_id
		ORDER BY g.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gardens []model.GardenWithOwner
	for rows.Next() {
		var g model.GardenWithOwner
		if err := rows.Scan(
			&g.ID, &g.Address, &g.Latitude, &g.Longitude, &g.Category, &g.UserID, &g.OwnerAddress,
		); err != nil {
			return nil, err
		}
		gardens = append(gardens, g)
	}

	return gardens, rows.Err()
}

// ListWithProducts returns every garden with the products it lists.
// Gardens without products carry an empty product slice.
func (r *GardenRepository) ListWithProducts(ctx context.Context) ([]model.GardenProducts, error) {
	query := `SELECT g.id, g.address, g.latitude, g.longitude, g.category, g.user_id,
			p.id, p.category, p.name, p.quantity, p.unit, p.description, p.expiration_date, p.price, p.active
		FROM gardens g LEFT JOIN products p ON p.garden_id = g.id
		ORDER BY g.id, p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gardens []model.GardenProducts
	for rows.Next() {
		var (
			g           model.Garden
			pID         sql.NullInt64
			pCategory   sql.NullString
			pName       sql.NullString
			pQuantity   sql.NullFloat64
			pUnit       sql.NullString
			pDesc       sql.NullString
			pExpiration sql.NullTime
			pPrice      sql.NullFloat64
			pActive     sql.NullBool
		)
		if err := rows.Scan(
			&g.ID, &g.Address, &g.Latitude, &g.Longitude, &g.Category, &g.UserID,
			&pID, &pCategory, &pName, &pQuantity, &pUnit, &pDesc, &pExpiration, &pPrice, &pActive,
		); err != nil {
			return nil, err
		}

		if len(gardens) == 0 || gardens[len(gardens)-1].ID != g.ID {
			gardens = append(gardens, model.GardenProducts{Garden: g, Products: []model.Product{}})
		}
		if !pID.Valid {
			continue
		}

		cur := &gardens[len(gardens)-1]
		cur.Products = append(cur.Products, model.Product{
			ID:             pID.Int64,
			Category:       pCategory.String,
			Name:           pName.String,
			Quantity:       pQuantity.Float64,
			Unit:           pUnit.String,
			Description:    pDesc.String,
			ExpirationDate: nullTimePtr(pExpiration),
			Price:          pPrice.Float64,
			Active:         pActive.Bool,
			GardenID:       g.ID,
		})
	}

	return gardens, rows.Err()
}

// UpdateByUser changes the address and category of the garden owned by userID.
func (r *GardenRepository) UpdateByUser(ctx context.Context, userID int64, address, category string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE gardens SET address = ?, category = ? WHERE user_id = ?`,
		address, category, userID,
	)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrGardenNotFound)
}

// UpdateOwned changes garden id if it belongs to userID.
func (r *GardenRepository) UpdateOwned(ctx context.Context, id, userID int64, address, category string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE gardens SET address = ?, category = ? WHERE id = ? AND user_id = ?`,
		address, category, id, userID,
	)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrGardenNotFound)
}

// DeleteByUser removes the garden owned by userID.
func (r *GardenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gardens WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrGardenNotFound)
}

// DeleteOwned removes garden id if it belongs to userID.
func (r *GardenRepository) DeleteOwned(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gardens WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return affectedOrErr(result, ErrGardenNotFound)
}

func scanGarden(row *sql.Row) (*model.Garden, error) {
	g := &model.Garden{}
	err := row.Scan(&g.ID, &g.Address, &g.Latitude, &g.Longitude, &g.Category, &g.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGardenNotFound
		}
		return nil, err
	}
	return g, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"easyhome/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository handles database operations against the listings store
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const listingColumns = `
	id, title, property_type, location, price, area_m2, bedrooms, bathrooms,
	description, features, images, status, owner_id, created_at, updated_at,
	listed_date`

// FindRelevant runs the chat-grounding query: equality filters on type and
// bedroom count, a prefix match on location, and an unconditional
// status = 'disponible' restriction, capped by a hard LIMIT.
//
// Price bounds in params are intentionally ignored here; only the general
// search path (SearchWithFilters) applies them.
func (r *PostgresRepository) FindRelevant(ctx context.Context, params model.SearchParams, maxResults int) ([]model.Listing, error) {
	whereClauses := []string{"status = 'disponible'"}
	args := []interface{}{}
	argIndex := 1

	if params.PropertyType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("property_type = $%d", argIndex))
		args = append(args, *params.PropertyType)
		argIndex++
	}
	if params.Location != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("location ILIKE $%d", argIndex))
		args = append(args, *params.Location+"%")
		argIndex++
	}
	if params.Bedrooms != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("bedrooms = $%d", argIndex))
		args = append(args, *params.Bedrooms)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d
	`, listingColumns, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, maxResults)

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch relevant listings: %w", err)
	}
	return listings, nil
}

// SearchWithFilters performs the general filtered search with counting and
// pagination. All filters apply here, including the price bounds.
func (r *PostgresRepository) SearchWithFilters(
	ctx context.Context,
	filters *model.SearchFilters,
	limit, offset int,
) ([]model.Listing, int, error) {
	whereClauses := []string{"status = 'disponible'"}
	args := []interface{}{}
	argIndex := 1

	if filters != nil {
		if filters.PropertyType != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("property_type = $%d", argIndex))
			args = append(args, *filters.PropertyType)
			argIndex++
		}
		if filters.Location != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("location ILIKE $%d", argIndex))
			args = append(args, "%"+*filters.Location+"%")
			argIndex++
		}
		if filters.Bedrooms != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("bedrooms = $%d", argIndex))
			args = append(args, *filters.Bedrooms)
			argIndex++
		}
		if filters.Bathrooms != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("bathrooms = $%d", argIndex))
			args = append(args, *filters.Bathrooms)
			argIndex++
		}
		if filters.PriceMin != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
			args = append(args, *filters.PriceMin)
			argIndex++
		}
		if filters.PriceMax != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
			args = append(args, *filters.PriceMax)
			argIndex++
		}
		if filters.AreaM2Min != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("area_m2 >= $%d", argIndex))
			args = append(args, *filters.AreaM2Min)
			argIndex++
		}
		if filters.AreaM2Max != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("area_m2 <= $%d", argIndex))
			args = append(args, *filters.AreaM2Max)
			argIndex++
		}
		if filters.OwnerID != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("owner_id = $%d", argIndex))
			args = append(args, *filters.OwnerID)
			argIndex++
		}
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM listings WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count results: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, listingColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, total, nil
}

// GetListingByID retrieves a single listing by its ID
func (r *PostgresRepository) GetListingByID(ctx context.Context, listingID string) (*model.Listing, error) {
	var listing model.Listing
	query := fmt.Sprintf("SELECT %s FROM listings WHERE id = $1", listingColumns)
	err := r.db.GetContext(ctx, &listing, query, listingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// ListAll returns listings ordered newest first, optionally restricted to an
// owner. Unlike the search paths this includes non-available listings, since
// landlords manage their own drafts and rented units through it.
func (r *PostgresRepository) ListAll(ctx context.Context, ownerID *string) ([]model.Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM listings", listingColumns)
	args := []interface{}{}
	if ownerID != nil {
		query += " WHERE owner_id = $1"
		args = append(args, *ownerID)
	}
	query += " ORDER BY created_at DESC"

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

// CreateListing inserts a new listing and returns it with timestamps set
func (r *PostgresRepository) CreateListing(ctx context.Context, listing *model.Listing) error {
	query := `
		INSERT INTO listings (
			id, title, property_type, location, price, area_m2, bedrooms,
			bathrooms, description, features, images, status, owner_id,
			created_at, updated_at, listed_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW(), NOW())
		RETURNING created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		listing.ID, listing.Title, listing.PropertyType, listing.Location,
		listing.Price, listing.AreaM2, listing.Bedrooms, listing.Bathrooms,
		listing.Description, listing.Features, listing.Images, listing.Status,
		listing.OwnerID,
	)
	if err := row.Scan(&listing.CreatedAt, &listing.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// UpdateListing applies a partial update and bumps updated_at. Returns
// sql.ErrNoRows wrapped when the listing does not exist.
func (r *PostgresRepository) UpdateListing(ctx context.Context, listingID string, req *model.UpdateListingRequest) error {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIndex := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.PropertyType != nil {
		set("property_type", *req.PropertyType)
	}
	if req.Location != nil {
		set("location", *req.Location)
	}
	if req.Price != nil {
		set("price", *req.Price)
	}
	if req.AreaM2 != nil {
		set("area_m2", *req.AreaM2)
	}
	if req.Bedrooms != nil {
		set("bedrooms", *req.Bedrooms)
	}
	if req.Bathrooms != nil {
		set("bathrooms", *req.Bathrooms)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Features != nil {
		set("features", model.JSONArray(req.Features))
	}
	if req.Images != nil {
		set("images", model.JSONArray(req.Images))
	}
	if req.Status != nil {
		set("status", *req.Status)
	}

	query := fmt.Sprintf("UPDATE listings SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argIndex)
	args = append(args, listingID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("listing %s: %w", listingID, sql.ErrNoRows)
	}
	return nil
}

// DeleteListing removes a listing
func (r *PostgresRepository) DeleteListing(ctx context.Context, listingID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM listings WHERE id = $1", listingID)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

// LogSearch logs a general search query
func (r *PostgresRepository) LogSearch(ctx context.Context, searchID, query string, params *model.SearchParams, resultCount int, responseTimeMs int) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode search params: %w", err)
	}

	logQuery := `
		INSERT INTO search_logs (search_id, query, params, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, logQuery, searchID, query, paramsJSON, resultCount, responseTimeMs); err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// LogChatTurn logs one chat pipeline invocation
func (r *PostgresRepository) LogChatTurn(ctx context.Context, message string, params *model.SearchParams, resultCount int, grounded bool, responseTimeMs int) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode search params: %w", err)
	}

	logQuery := `
		INSERT INTO chat_logs (message, params, result_count, grounded, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, logQuery, message, paramsJSON, resultCount, grounded, responseTimeMs); err != nil {
		return fmt.Errorf("failed to log chat turn: %w", err)
	}
	return nil
}

// LogFeedback records a user action against a logged search
func (r *PostgresRepository) LogFeedback(ctx context.Context, searchID, listingID, action string) error {
	query := `
		UPDATE search_logs
		SET clicked_listing_id = $2, action = $3
		WHERE search_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, searchID, listingID, action); err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}

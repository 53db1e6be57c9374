package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Document Methods
// -----------------------------------------------------------------------------

// SaveDocument inserts doc and fills in its ID and CreatedAt.
func (db *DB) SaveDocument(ctx context.Context, doc *Document) error {
	if err := doc.validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	parsedJSON, err := json.Marshal(doc.Parsed)
	if err != nil {
		return fmt.Errorf("failed to marshal parsed document: %w", err)
	}
	complianceJSON, err := json.Marshal(doc.Parsed.ComplianceChecks)
	if err != nil {
		return fmt.Errorf("failed to marshal compliance: %w", err)
	}
	qualityJSON, err := json.Marshal(doc.Quality)
	if err != nil {
		return fmt.Errorf("failed to marshal quality checks: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO groepsplannen (teacher_id, kind, groep, vakgebied, experiment, variant,
		        prompt, raw_text, parsed, compliance, quality, compliance_score, inspectie_proof, attempts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, created_at`,
		doc.TeacherID, doc.Kind, doc.Groep, doc.Vakgebied, doc.Experiment, doc.Variant,
		doc.Prompt, doc.RawText, parsedJSON, complianceJSON, qualityJSON,
		doc.ComplianceScore, doc.InspectieProof, doc.Attempts,
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID. It returns nil, nil when no document matches.
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var d Document
	var parsedJSON, qualityJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, teacher_id, kind, groep, vakgebied, experiment, variant, prompt, raw_text,
		        parsed, quality, compliance_score, inspectie_proof, attempts, created_at
		 FROM groepsplannen WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.TeacherID, &d.Kind, &d.Groep, &d.Vakgebied, &d.Experiment, &d.Variant,
		&d.Prompt, &d.RawText, &parsedJSON, &qualityJSON, &d.ComplianceScore, &d.InspectieProof,
		&d.Attempts, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if err := d.decodeColumns(parsedJSON, qualityJSON); err != nil {
		return nil, err
	}
	return &d, nil
}

// decodeColumns fills Parsed and Quality from their JSONB columns. A NULL
// quality column leaves Quality empty.
func (d *Document) decodeColumns(parsedJSON, qualityJSON []byte) error {
	if err := json.Unmarshal(parsedJSON, &d.Parsed); err != nil {
		return fmt.Errorf("failed to unmarshal parsed document: %w", err)
	}
	if qualityJSON != nil {
		if err := json.Unmarshal(qualityJSON, &d.Quality); err != nil {
			return fmt.Errorf("failed to unmarshal quality checks: %w", err)
		}
	}
	return nil
}

// buildListFilter returns the WHERE clause and its arguments for opts.
func buildListFilter(opts ListDocumentsOptions) (string, []any) {
	conditions := []string{"teacher_id = $1"}
	args := []any{opts.TeacherID}

	if opts.Kind != "" {
		args = append(args, opts.Kind)
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}
	if opts.Vakgebied != "" {
		args = append(args, opts.Vakgebied)
		conditions = append(conditions, fmt.Sprintf("vakgebied = $%d", len(args)))
	}
	if opts.InspectieProof != nil {
		args = append(args, *opts.InspectieProof)
		conditions = append(conditions, fmt.Sprintf("inspectie_proof = $%d", len(args)))
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// ClampLimit applies the default and maximum page size to a requested limit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// ListDocuments lists a teacher's documents, newest first, with the total count before pagination.
func (db *DB) ListDocuments(ctx context.Context, opts ListDocumentsOptions) ([]DocumentSummary, int, error) {
	if opts.TeacherID == "" {
		return nil, 0, fmt.Errorf("teacher id is required")
	}
	where, args := buildListFilter(opts)

	var total int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM groepsplannen "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	limit := ClampLimit(opts.Limit)
	offset := max(opts.Offset, 0)
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, teacher_id, kind, groep, vakgebied, variant, compliance_score, inspectie_proof, created_at
		 FROM groepsplannen %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []DocumentSummary{}
	for rows.Next() {
		var s DocumentSummary
		if err := rows.Scan(&s.ID, &s.TeacherID, &s.Kind, &s.Groep, &s.Vakgebied, &s.Variant,
			&s.ComplianceScore, &s.InspectieProof, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, total, nil
}

// DeleteDocument deletes a teacher's document. It reports false when nothing matched.
func (db *DB) DeleteDocument(ctx context.Context, id uuid.UUID, teacherID string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM groepsplannen WHERE id = $1 AND teacher_id = $2`,
		id, teacherID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

// SaveSnapshot persists a freshly scored findings document and makes it the
// presentation's active snapshot. Deactivating previous snapshots and
// inserting the new one happen in a single transaction so at most one
// snapshot per presentation is ever active.
func (s *Store) SaveSnapshot(ctx context.Context, presentationID uuid.UUID, doc *models.FindingsDocument, scores models.ContentScoreSet) (*models.ContentSnapshot, error) {
	blob, err := s.compressDocument(doc)
	if err != nil {
		return nil, err
	}

	snap := &models.ContentSnapshot{
		ID:             uuid.New(),
		PresentationID: presentationID,
		Document:       *doc,
		Scores:         scores,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE content_snapshots SET is_active = 0 WHERE presentation_id = ?`,
		presentationID.String()); err != nil {
		return nil, fmt.Errorf("deactivating previous snapshots: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO content_snapshots
			(id, presentation_id, findings, textual_score, topical_score,
			 structure_score, visual_score, total_score, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		snap.ID.String(), presentationID.String(), blob,
		scores.TextualCorrectness, scores.TopicalDepth,
		scores.StructuralFlow, scores.VisualDesign, scores.TotalScore,
		formatTime(snap.CreatedAt)); err != nil {
		return nil, fmt.Errorf("inserting snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ActiveSnapshot returns the presentation's active snapshot, or
// ErrNoActiveSnapshot when none exists.
func (s *Store) ActiveSnapshot(ctx context.Context, presentationID uuid.UUID) (*models.ContentSnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, presentation_id, findings, textual_score, topical_score,
		        structure_score, visual_score, total_score, is_active, created_at
		 FROM content_snapshots
		 WHERE presentation_id = ? AND is_active = 1`,
		presentationID.String())

	snap, err := s.scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveSnapshot
	}
	return snap, err
}

// ActivateSnapshot makes the given snapshot the active one for its
// presentation, deactivating any other in the same transaction.
func (s *Store) ActivateSnapshot(ctx context.Context, snapshotID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var presentationID string
	err = tx.QueryRowContext(ctx,
		`SELECT presentation_id FROM content_snapshots WHERE id = ?`,
		snapshotID.String()).Scan(&presentationID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("snapshot %s: %w", snapshotID, ErrNotFound)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE content_snapshots SET is_active = 0 WHERE presentation_id = ?`,
		presentationID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE content_snapshots SET is_active = 1 WHERE id = ?`,
		snapshotID.String()); err != nil {
		return err
	}
	return tx.Commit()
}

// ListSnapshots returns all snapshots for a presentation, newest first.
func (s *Store) ListSnapshots(ctx context.Context, presentationID uuid.UUID) ([]models.ContentSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, presentation_id, findings, textual_score, topical_score,
		        structure_score, visual_score, total_score, is_active, created_at
		 FROM content_snapshots
		 WHERE presentation_id = ?
		 ORDER BY created_at DESC`,
		presentationID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ContentSnapshot
	for rows.Next() {
		snap, err := s.scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanSnapshot(row rowScanner) (*models.ContentSnapshot, error) {
	var (
		snap      models.ContentSnapshot
		id, pid   string
		blob      []byte
		active    int
		createdAt string
	)
	err := row.Scan(&id, &pid, &blob,
		&snap.Scores.TextualCorrectness, &snap.Scores.TopicalDepth,
		&snap.Scores.StructuralFlow, &snap.Scores.VisualDesign,
		&snap.Scores.TotalScore, &active, &createdAt)
	if err != nil {
		return nil, err
	}

	if snap.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if snap.PresentationID, err = uuid.Parse(pid); err != nil {
		return nil, err
	}
	if snap.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	snap.Active = active != 0

	doc, err := s.decompressDocument(blob)
	if err != nil {
		return nil, err
	}
	snap.Document = *doc
	return &snap, nil
}

func (s *Store) compressDocument(doc *models.FindingsDocument) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding findings document: %w", err)
	}
	return s.enc.EncodeAll(raw, nil), nil
}

func (s *Store) decompressDocument(blob []byte) (*models.FindingsDocument, error) {
	raw, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing findings document: %w", err)
	}
	var doc models.FindingsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding findings document: %w", err)
	}
	return &doc, nil
}

package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

// RecordTraining persists one finished session's total score.
func (s *Store) RecordTraining(ctx context.Context, presentationID uuid.UUID, totalScore float64, date time.Time) (*models.Training, error) {
	tr := &models.Training{
		ID:             uuid.New(),
		PresentationID: presentationID,
		TotalScore:     totalScore,
		Date:           date.UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trainings (id, presentation_id, total_score, date) VALUES (?, ?, ?, ?)`,
		tr.ID.String(), presentationID.String(), totalScore, formatTime(tr.Date))
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Trainings returns a presentation's trainings since the cutoff, oldest
// first. A zero cutoff returns the full history.
func (s *Store) Trainings(ctx context.Context, presentationID uuid.UUID, since time.Time) ([]models.Training, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, presentation_id, total_score, date
		 FROM trainings
		 WHERE presentation_id = ? AND date >= ?
		 ORDER BY date`,
		presentationID.String(), formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Training
	for rows.Next() {
		var (
			tr      models.Training
			id, pid string
			datestr string
		)
		if err := rows.Scan(&id, &pid, &tr.TotalScore, &datestr); err != nil {
			return nil, err
		}
		if tr.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if tr.PresentationID, err = uuid.Parse(pid); err != nil {
			return nil, err
		}
		if tr.Date, err = parseTime(datestr); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// TrainingScores returns just the chronological total scores since the
// cutoff, ready for trend analysis.
func (s *Store) TrainingScores(ctx context.Context, presentationID uuid.UUID, since time.Time) ([]float64, error) {
	trainings, err := s.Trainings(ctx, presentationID, since)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(trainings))
	for i, tr := range trainings {
		scores[i] = tr.TotalScore
	}
	return scores, nil
}

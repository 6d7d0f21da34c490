package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// InsertTrainer inserts a new trainer with a freshly generated id.
func (r *PostgresRepository) InsertTrainer(ctx context.Context, name string) (*Trainer, error) {
	query := `
		INSERT INTO trainers (id, name)
		VALUES ($1, $2)
		RETURNING created_at`

	t := Trainer{ID: uuid.New(), Name: name}
	if err := r.pool.QueryRow(ctx, query, t.ID, t.Name).Scan(&t.CreatedAt); err != nil {
		return nil, fmt.Errorf("inserting trainer: %w", err)
	}

	return &t, nil
}

// InsertTeamMember adds one species to a trainer's team, stamped with the
// current time.
func (r *PostgresRepository) InsertTeamMember(ctx context.Context, trainerID uuid.UUID, species Species) (*TeamMember, error) {
	query := `
		INSERT INTO team_members (id, trainer_id, name, primary_type, secondary_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING added_at`

	m := TeamMember{
		ID:            uuid.New(),
		TrainerID:     trainerID,
		Name:          species.Name,
		PrimaryType:   species.PrimaryType,
		SecondaryType: species.SecondaryType,
	}
	err := r.pool.QueryRow(ctx, query, m.ID, m.TrainerID, m.Name, m.PrimaryType, m.SecondaryType).Scan(&m.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting team member: %w", err)
	}

	return &m, nil
}

// FindTrainerByID retrieves a single trainer by its UUID.
func (r *PostgresRepository) FindTrainerByID(ctx context.Context, id uuid.UUID) (*Trainer, error) {
	query := `
		SELECT id, name, created_at
		FROM trainers
		WHERE id = $1`

	var t Trainer
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("querying trainer: %w", err)
	}

	return &t, nil
}

// FindTrainersByName returns every trainer whose name equals name, ignoring case.
func (r *PostgresRepository) FindTrainersByName(ctx context.Context, name string) ([]TrainerRef, error) {
	query := `
		SELECT id, name
		FROM trainers
		WHERE LOWER(name) = LOWER($1)
		ORDER BY name ASC, created_at ASC`

	return r.queryRefs(ctx, "searching trainers", query, name)
}

// ListAllTrainers returns every trainer ordered by name.
func (r *PostgresRepository) ListAllTrainers(ctx context.Context) ([]TrainerRef, error) {
	query := `
		SELECT id, name
		FROM trainers
		ORDER BY name ASC, created_at ASC`

	return r.queryRefs(ctx, "listing trainers", query)
}

func (r *PostgresRepository) queryRefs(ctx context.Context, op, query string, args ...any) ([]TrainerRef, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	refs := []TrainerRef{}
	for rows.Next() {
		var ref TrainerRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scanning trainer row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trainer rows: %w", err)
	}

	return refs, nil
}

// CountTeamMembers returns how many members the trainer owns.
func (r *PostgresRepository) CountTeamMembers(ctx context.Context, trainerID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM team_members WHERE trainer_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, trainerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting team members: %w", err)
	}
	return count, nil
}

// ListTeamMembers returns the trainer's team, oldest member first.
func (r *PostgresRepository) ListTeamMembers(ctx context.Context, trainerID uuid.UUID) ([]TeamMember, error) {
	query := `
		SELECT id, trainer_id, name, primary_type, secondary_type, added_at
		FROM team_members
		WHERE trainer_id = $1
		ORDER BY added_at ASC`

	rows, err := r.pool.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	members := []TeamMember{}
	for rows.Next() {
		var m TeamMember
		err := rows.Scan(&m.ID, &m.TrainerID, &m.Name, &m.PrimaryType, &m.SecondaryType, &m.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning team member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team member rows: %w", err)
	}

	return members, nil
}

// DeleteTeamMemberByName removes the oldest member of the trainer's team whose
// species name matches, ignoring case. It returns the number of rows removed.
func (r *PostgresRepository) DeleteTeamMemberByName(ctx context.Context, trainerID uuid.UUID, name string) (int64, error) {
	query := `
		DELETE FROM team_members
		WHERE id = (
			SELECT id FROM team_members
			WHERE trainer_id = $1 AND LOWER(name) = LOWER($2)
			ORDER BY added_at ASC
			LIMIT 1
		)`

	result, err := r.pool.Exec(ctx, query, trainerID, name)
	if err != nil {
		return 0, fmt.Errorf("deleting team member: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteAllTeamMembers removes the trainer's whole team.
func (r *PostgresRepository) DeleteAllTeamMembers(ctx context.Context, trainerID uuid.UUID) (int64, error) {
	query := `DELETE FROM team_members WHERE trainer_id = $1`

	result, err := r.pool.Exec(ctx, query, trainerID)
	if err != nil {
		return 0, fmt.Errorf("deleting team: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteTrainerByID removes the trainer row. The team must already be gone
// because team_members references trainers without ON DELETE CASCADE.
func (r *PostgresRepository) DeleteTrainerByID(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `DELETE FROM trainers WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("deleting trainer: %w", err)
	}
	return result.RowsAffected(), nil
}

// UpdateTeamMemberEvolution replaces the species name and types of the oldest
// member matching oldName (ignoring case). The member keeps its id, owner and
// added_at, so its position in the team is unchanged.
func (r *PostgresRepository) UpdateTeamMemberEvolution(ctx context.Context, trainerID uuid.UUID, oldName string, evolved Species) (int64, error) {
	query := `
		UPDATE team_members
		SET name = $3, primary_type = $4, secondary_type = $5
		WHERE id = (
			SELECT id FROM team_members
			WHERE trainer_id = $1 AND LOWER(name) = LOWER($2)
			ORDER BY added_at ASC
			LIMIT 1
		)`

	result, err := r.pool.Exec(ctx, query,
		trainerID,
		oldName,
		evolved.Name,
		evolved.PrimaryType,
		evolved.SecondaryType,
	)
	if err != nil {
		return 0, fmt.Errorf("updating team member: %w", err)
	}
	return result.RowsAffected(), nil
}

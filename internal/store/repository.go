package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// MaxTeamSize is the most team members a trainer may own.
const MaxTeamSize = 6

// ErrTrainerNotFound is returned when a trainer record is not found.
var ErrTrainerNotFound = errors.New("trainer not found")

// Repository provides parameterized access to the trainers and team_members
// tables. Each method is a single statement; callers sequencing several
// methods get no transaction around them.
type Repository interface {
	InsertTrainer(ctx context.Context, name string) (*Trainer, error)
	InsertTeamMember(ctx context.Context, trainerID uuid.UUID, species Species) (*TeamMember, error)
	FindTrainerByID(ctx context.Context, id uuid.UUID) (*Trainer, error)
	FindTrainersByName(ctx context.Context, name string) ([]TrainerRef, error)
	CountTeamMembers(ctx context.Context, trainerID uuid.UUID) (int, error)
	ListTeamMembers(ctx context.Context, trainerID uuid.UUID) ([]TeamMember, error)
	DeleteTeamMemberByName(ctx context.Context, trainerID uuid.UUID, name string) (int64, error)
	DeleteAllTeamMembers(ctx context.Context, trainerID uuid.UUID) (int64, error)
	DeleteTrainerByID(ctx context.Context, id uuid.UUID) (int64, error)
	UpdateTeamMemberEvolution(ctx context.Context, trainerID uuid.UUID, oldName string, evolved Species) (int64, error)
	ListAllTrainers(ctx context.Context) ([]TrainerRef, error)
}

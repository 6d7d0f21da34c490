package tools

import (
	"context"

	"github.com/pokeagent/pokeagent/internal/roster"
)

// Roster is the set of roster operations exposed as tools.
type Roster interface {
	AddTrainer(ctx context.Context, name string, team []string) (*roster.AddTrainerResult, error)
	AddPokemon(ctx context.Context, trainerID string, names []string) (*roster.AddPokemonResult, error)
	RemovePokemon(ctx context.Context, trainerID, name string) (*roster.RemovePokemonResult, error)
	EvolvePokemon(ctx context.Context, trainerID, current, target string) (*roster.EvolveResult, error)
	DeleteTrainer(ctx context.Context, trainerID, confirmationCode string) (*roster.DeleteTrainerResult, error)
	ListTrainers(ctx context.Context) (*roster.TrainerList, error)
	ListTeam(ctx context.Context, trainerID string) (*roster.TeamView, error)
	FindTrainerByName(ctx context.Context, name string) (*roster.LookupResult, error)
}

type addTrainerArgs struct {
	Name string   `json:"name" jsonschema:"maxLength=255" jsonschema_description:"Display name of the new trainer." validate:"notblank,max=255"`
	Team []string `json:"team,omitempty" jsonschema:"maxItems=6" jsonschema_description:"Species names for the initial team. Unknown species are skipped." validate:"max=6"`
}

type trainerNameArgs struct {
	Name string `json:"name" jsonschema_description:"Trainer name to search for, case-insensitive." validate:"notblank"`
}

type addPokemonArgs struct {
	TrainerID string   `json:"trainer_id" jsonschema:"format=uuid" jsonschema_description:"ID of the trainer." validate:"required,uuid"`
	Names     []string `json:"names" jsonschema:"minItems=1" jsonschema_description:"Species names to add to the team. Unknown species are skipped; the call fails if the valid ones would exceed six members." validate:"min=1"`
}

type trainerIDArgs struct {
	TrainerID string `json:"trainer_id" jsonschema:"format=uuid" jsonschema_description:"ID of the trainer." validate:"required,uuid"`
}

type removePokemonArgs struct {
	TrainerID string `json:"trainer_id" jsonschema:"format=uuid" jsonschema_description:"ID of the trainer." validate:"required,uuid"`
	Name      string `json:"name" jsonschema_description:"Species name of the team member to remove." validate:"notblank"`
}

type evolvePokemonArgs struct {
	TrainerID   string `json:"trainer_id" jsonschema:"format=uuid" jsonschema_description:"ID of the trainer." validate:"required,uuid"`
	CurrentName string `json:"current_name" jsonschema_description:"Species currently on the team." validate:"notblank"`
	TargetName  string `json:"target_name" jsonschema_description:"Species it should evolve into. Must be a direct evolution." validate:"notblank"`
}

// deleteTrainerArgs carries no validation tags: the confirmation code is
// checked before the trainer id is looked at.
type deleteTrainerArgs struct {
	TrainerID        string `json:"trainer_id" jsonschema:"format=uuid" jsonschema_description:"ID of the trainer to delete."`
	ConfirmationCode string `json:"confirmation_code" jsonschema_description:"Administrative confirmation code."`
}

type noArgs struct{}

// RegisterRoster registers the trainer and team tools.
func RegisterRoster(r *Registry, svc Roster) error {
	if err := Add(r, "add_trainer",
		"Create a trainer with an optional initial team of up to six Pokémon. Returns the new trainer ID.",
		func(ctx context.Context, a addTrainerArgs) (Result, error) {
			return respond(svc.AddTrainer(ctx, a.Name, a.Team))
		}); err != nil {
		return err
	}

	if err := Add(r, "find_trainer_by_name",
		"Find trainers by name. When several trainers share the name, all candidates are returned and the user must pick one by ID.",
		func(ctx context.Context, a trainerNameArgs) (Result, error) {
			return respond(svc.FindTrainerByName(ctx, a.Name))
		}); err != nil {
		return err
	}

	if err := Add(r, "add_pokemon",
		"Add Pokémon to an existing trainer's team. Fails without adding anything if the team would exceed six members.",
		func(ctx context.Context, a addPokemonArgs) (Result, error) {
			return respond(svc.AddPokemon(ctx, a.TrainerID, a.Names))
		}); err != nil {
		return err
	}

	if err := Add(r, "list_trainers",
		"List every registered trainer with their IDs.",
		func(ctx context.Context, _ noArgs) (Result, error) {
			return respond(svc.ListTrainers(ctx))
		}); err != nil {
		return err
	}

	if err := Add(r, "list_team",
		"List a trainer's team in the order the Pokémon were added.",
		func(ctx context.Context, a trainerIDArgs) (Result, error) {
			return respond(svc.ListTeam(ctx, a.TrainerID))
		}); err != nil {
		return err
	}

	if err := Add(r, "remove_pokemon",
		"Remove one Pokémon from a trainer's team by species name.",
		func(ctx context.Context, a removePokemonArgs) (Result, error) {
			return respond(svc.RemovePokemon(ctx, a.TrainerID, a.Name))
		}); err != nil {
		return err
	}

	if err := Add(r, "delete_trainer",
		"Delete a trainer and their whole team. Requires the administrative confirmation code.",
		func(ctx context.Context, a deleteTrainerArgs) (Result, error) {
			return respond(svc.DeleteTrainer(ctx, a.TrainerID, a.ConfirmationCode))
		}); err != nil {
		return err
	}

	return Add(r, "evolve_pokemon",
		"Evolve a Pokémon on a trainer's team into one of its direct evolutions.",
		func(ctx context.Context, a evolvePokemonArgs) (Result, error) {
			return respond(svc.EvolvePokemon(ctx, a.TrainerID, a.CurrentName, a.TargetName))
		})
}

// respond turns a roster outcome into a tool result.
func respond[M messager](m M, err error) (Result, error) {
	if err != nil {
		return Result{}, err
	}
	return Result{Content: m.Message(), Data: m}, nil
}

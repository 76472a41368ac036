package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	entschema "entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// GameProgress folds every run of a game into one row keyed by game.
type GameProgress struct {
	ent.Schema
}

func (GameProgress) Annotations() []entschema.Annotation {
	return []entschema.Annotation{
		entsql.Annotation{Table: "game_progress"},
	}
}

func (GameProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("game").
			NotEmpty().
			Immutable().
			Comment("Canonical game id"),
		field.Int("last_level").
			Positive().
			Comment("Level reached by the most recent run"),
		field.Int("best_score").
			Optional().
			Nillable().
			Comment("Best score over valid runs"),
		field.Int("total_runs").
			Default(0),
		field.Int("valid_runs").
			Default(0),
		field.Int("total_trials").
			Default(0),
		field.Int64("updated_at").
			Comment("Unix milliseconds"),
	}
}

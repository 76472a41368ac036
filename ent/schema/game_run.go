package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	entschema "entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/abhisek/spiread/internal/difficulty"
)

// GameRun is one completed session. Rows are append-only.
type GameRun struct {
	ent.Schema
}

func (GameRun) Annotations() []entschema.Annotation {
	return []entschema.Annotation{
		entsql.Annotation{Table: "game_runs"},
	}
}

func (GameRun) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("Run UUID"),
		field.String("game").
			NotEmpty().
			Comment("Canonical game id"),
		field.Int64("started_at").
			Comment("Unix milliseconds"),
		field.Int64("ended_at").
			Comment("Unix milliseconds"),
		field.Int64("duration_ms").
			NonNegative().
			Comment("Active play time, pauses excluded"),
		field.Int64("paused_ms").
			Default(0),
		field.Int("start_level").
			Positive(),
		field.Int("final_level").
			Positive(),
		field.Int("score").
			Optional().
			Nillable().
			Comment("Absent when the game awarded no points"),
		field.Enum("end_reason").
			Values("timeout", "manual_stop", "exit"),
		field.Bool("valid").
			Comment("Played at least the game's minimum valid duration"),
		field.Int("pauses").
			Default(0),
		field.Int("auto_pauses").
			Default(0),
		field.JSON("stats", difficulty.Stats{}).
			Comment("Adaptive controller statistics at completion"),
	}
}

func (GameRun) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("game", "started_at"),
	}
}

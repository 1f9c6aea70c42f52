package assistantRepository

import (
	"context"
	"database/sql"
	"time"

	"JarvisGolang/internal/entity"
	contextPkg "JarvisGolang/pkg/context"
	"JarvisGolang/pkg/log"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type InteractionDB struct {
	ID        sql.NullInt64  `db:"id"`
	Command   sql.NullString `db:"command"`
	Response  sql.NullString `db:"response"`
	Timestamp time.Time      `db:"timestamp"`
}

func (r *interactionRepository) CreateInteraction(ctx context.Context, command, response string) error {
	turnID := contextPkg.GetTurnID(ctx)

	argsKV := map[string]interface{}{
		"command":  command,
		"response": response,
	}

	query, args, err := sqlx.Named(queryCreateInteraction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"turn_id": turnID,
			"error":   err.Error(),
		}).Error("CreateInteraction named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.ErrorWithTraceID(log.Fields{
			"turn_id": turnID,
			"error":   err.Error(),
		}, "Database error when creating interaction")
		return err
	}

	return nil
}

func (r *interactionRepository) GetAllInteractions(ctx context.Context) ([]entity.Interaction, error) {
	turnID := contextPkg.GetTurnID(ctx)
	var rows []InteractionDB

	if err := r.q.SelectContext(ctx, &rows, r.q.Rebind(queryGetAllInteractions)); err != nil {
		r.log.WithFields(logrus.Fields{
			"turn_id": turnID,
			"error":   err.Error(),
		}).Error("GetAllInteractions execution err")
		return nil, err
	}

	interactions := make([]entity.Interaction, 0, len(rows))
	for _, row := range rows {
		interactions = append(interactions, makeInteraction(row))
	}

	return interactions, nil
}

func makeInteraction(row InteractionDB) entity.Interaction {
	return entity.Interaction{
		ID:        row.ID.Int64,
		Command:   row.Command.String,
		Response:  row.Response.String,
		Timestamp: row.Timestamp,
	}
}

package rounds

import (
	"database/sql"

	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
)

var _ rounds.Rounds = (*roundsRepo)(nil)

type roundsRepo struct{ db *sql.DB }

func New(db *sql.DB) *roundsRepo {
	return &roundsRepo{db: db}
}

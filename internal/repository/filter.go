package repository

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/bjarke-xyz/applications-api/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ApplicationFilter turns the optional fields of an ApplicationQuery into a
// where expression. Limit and offset are left to the caller.
type ApplicationFilter struct{}

// Where returns nil when the query does not restrict the result.
func (ApplicationFilter) Where(query domain.ApplicationQuery) exp.Expression {
	if query.UserName == nil || *query.UserName == "" {
		return nil
	}
	// ILIKE escapes with a backslash by default
	pattern := "%" + likeEscaper.Replace(*query.UserName) + "%"
	return goqu.C(colUserName).ILike(pattern)
}

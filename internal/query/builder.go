// Package query assembles the catalog's filtered list queries. Filters are
// typed values compiled into SQL through goqu, so every user-supplied value
// travels as a bind parameter and joins are added only when a filter or
// sort key actually needs them. A one-to-many join that nothing asked for
// would multiply rows and break both counting and pagination.
package query

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"gamedex/backend/internal/models"
)

// Unfiltered is the sentinel request value meaning "no filter".
const Unfiltered = "All"

// SortKey selects the ordering of a game list.
type SortKey string

const (
	SortByName    SortKey = "Name"
	SortByCritic  SortKey = "CriticRating"
	SortByUser    SortKey = "UserRating"
	SortByCurated SortKey = "CuratedScore"
)

// ParseSortKey maps a request parameter to a SortKey. Unrecognized values
// fall back to the name sort; they are never an error.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByCritic, SortByUser, SortByCurated:
		return SortKey(s)
	default:
		return SortByName
	}
}

// TaxonomyFilter restricts a list to games tagged with one taxonomy value.
type TaxonomyFilter struct {
	Kind  models.TaxonomyKind
	Value string
}

// GameFilter is the full set of recognized game-list filters. Zero values
// mean "no filter".
type GameFilter struct {
	Year     *int
	Taxonomy *TaxonomyFilter
	Platform string
	Sort     SortKey
}

// GameRow is one row of a filtered game list. CriticAvg and UserAvg are
// nil when the underlying releases carry no data.
type GameRow struct {
	ID           uint
	Name         string
	CoverURL     string
	CuratedScore *float64
	CriticAvg    *float64
	UserAvg      *float64
}

// Count builds the total-matching-games query. It shares its predicate set
// with Page exactly, differing only in selecting a count of distinct games
// instead of detail columns.
func (f GameFilter) Count() (sql string, args []interface{}, err error) {
	ids := goqu.From(goqu.T("games").As("g")).
		Select(goqu.I("g.id")).
		Where(goqu.I("g.deleted_at").IsNull())

	ids = f.applyTaxonomy(ids)
	ids = f.applyPlatform(ids)

	if f.Year != nil {
		ids = ids.
			LeftJoin(goqu.T("releases").As("r"), goqu.On(
				goqu.I("r.game_id").Eq(goqu.I("g.id")),
				goqu.I("r.deleted_at").IsNull(),
			)).
			GroupBy(goqu.I("g.id")).
			Having(goqu.L("EXTRACT(YEAR FROM MIN(r.release_date)) = ?", *f.Year))
	} else if f.Taxonomy != nil {
		// The taxonomy edge table is unique per (game, value), but group
		// anyway so the inner query stays one row per game.
		ids = ids.GroupBy(goqu.I("g.id"))
	}

	return goqu.From(ids).
		Select(goqu.COUNT(goqu.Star())).
		Prepared(true).
		ToSQL()
}

// Page builds the detail query for one page of games. Rows are one per
// game with the critic average and the weighted user average computed over
// the game's releases; sum before divide, never an average of averages.
func (f GameFilter) Page(limit, offset uint) (sql string, args []interface{}, err error) {
	ds := goqu.From(goqu.T("games").As("g")).
		Select(
			goqu.I("g.id"),
			goqu.I("g.name"),
			goqu.I("g.cover_url"),
			goqu.I("g.curated_score"),
			goqu.AVG(goqu.I("r.critic_pct")).As("critic_avg"),
			goqu.L("SUM(r.total_player_rating) / NULLIF(SUM(r.num_players_rated), 0)").As("user_avg"),
		).
		LeftJoin(goqu.T("releases").As("r"), goqu.On(
			goqu.I("r.game_id").Eq(goqu.I("g.id")),
			goqu.I("r.deleted_at").IsNull(),
		)).
		Where(goqu.I("g.deleted_at").IsNull()).
		GroupBy(
			goqu.I("g.id"),
			goqu.I("g.name"),
			goqu.I("g.cover_url"),
			goqu.I("g.curated_score"),
		)

	ds = f.applyTaxonomy(ds)
	ds = f.applyPlatform(ds)

	if f.Year != nil {
		ds = ds.Having(goqu.L("EXTRACT(YEAR FROM MIN(r.release_date)) = ?", *f.Year))
	}

	return ds.
		Order(f.Sort.ordering()...).
		Limit(limit).
		Offset(offset).
		Prepared(true).
		ToSQL()
}

func (f GameFilter) applyTaxonomy(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if f.Taxonomy == nil {
		return ds
	}
	return ds.
		InnerJoin(goqu.T("game_taxonomies").As("gt"), goqu.On(
			goqu.I("gt.game_id").Eq(goqu.I("g.id")),
		)).
		InnerJoin(goqu.T("taxonomy_values").As("tv"), goqu.On(
			goqu.I("tv.id").Eq(goqu.I("gt.taxonomy_value_id")),
			goqu.I("tv.deleted_at").IsNull(),
		)).
		Where(
			goqu.I("tv.kind").Eq(string(f.Taxonomy.Kind)),
			goqu.I("tv.name").Eq(f.Taxonomy.Value),
		)
}

func (f GameFilter) applyPlatform(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if f.Platform == "" {
		return ds
	}
	onPlatform := goqu.From(goqu.T("releases").As("pr")).
		InnerJoin(goqu.T("platforms").As("p"), goqu.On(
			goqu.I("p.id").Eq(goqu.I("pr.platform_id")),
			goqu.I("p.deleted_at").IsNull(),
		)).
		Select(goqu.L("1")).
		Where(
			goqu.I("pr.game_id").Eq(goqu.I("g.id")),
			goqu.I("pr.deleted_at").IsNull(),
			goqu.I("p.name").Eq(f.Platform),
		)
	return ds.Where(goqu.L("EXISTS ?", onPlatform))
}

// ordering returns the ORDER BY expressions for the sort key. Every sort
// breaks ties by game name ascending so page boundaries are deterministic.
func (k SortKey) ordering() []exp.OrderedExpression {
	name := goqu.I("g.name").Asc()
	switch k {
	case SortByCritic:
		return []exp.OrderedExpression{goqu.I("critic_avg").Desc().NullsLast(), name}
	case SortByUser:
		return []exp.OrderedExpression{goqu.I("user_avg").Desc().NullsLast(), name}
	case SortByCurated:
		return []exp.OrderedExpression{goqu.I("g.curated_score").Desc().NullsLast(), name}
	default:
		return []exp.OrderedExpression{name}
	}
}

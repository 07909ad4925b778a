package persistence

import (
	"strings"

	"github.com/stocktrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// parseSearchTerms splits a keyword expression into terms. Double-quoted
// segments stay together, everything else splits on whitespace. Matching is
// AND across terms; each term may match any searchable field.
func parseSearchTerms(keyword string) []string {
	var terms []string
	rest := keyword
	for {
		start := strings.IndexByte(rest, '"')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start+1:], '"')
		if end < 0 {
			break
		}
		if quoted := strings.TrimSpace(rest[start+1 : start+1+end]); quoted != "" {
			terms = append(terms, quoted)
		}
		rest = rest[:start] + " " + rest[start+1+end+1:]
	}
	for _, word := range strings.Fields(rest) {
		terms = append(terms, word)
	}
	return terms
}

// applyKeyword narrows the query so every search term matches at least one of
// the given columns, case insensitively.
func applyKeyword(query *gorm.DB, keyword string, columns []string) *gorm.DB {
	terms := parseSearchTerms(keyword)
	if len(terms) == 0 || len(columns) == 0 {
		return query
	}

	conditions := make([]string, len(columns))
	for i, col := range columns {
		conditions[i] = "LOWER(" + col + ") LIKE ?"
	}
	clause := "(" + strings.Join(conditions, " OR ") + ")"

	for _, term := range terms {
		pattern := "%" + strings.ToLower(term) + "%"
		args := make([]interface{}, len(columns))
		for i := range columns {
			args[i] = pattern
		}
		query = query.Where(clause, args...)
	}
	return query
}

// qualifyOrder prefixes an unqualified order column with the entity table so
// joined tables sharing the column name cannot make it ambiguous.
func qualifyOrder(filter shared.Filter, table string) shared.Filter {
	if filter.Keyword == "" || filter.OrderBy == "" || strings.Contains(filter.OrderBy, ".") {
		return filter
	}
	filter.OrderBy = table + "." + filter.OrderBy
	return filter
}

// applyFilter applies keyword search, field filters, ordering and pagination
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumns []string) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter, searchColumns)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	}

	return query
}

// applyFilterWithoutPagination applies keyword search and field filters only,
// used by Count so totals reflect the full matching set.
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter, searchColumns []string) *gorm.DB {
	if filter.Keyword != "" {
		query = applyKeyword(query, filter.Keyword, searchColumns)
	}
	for key, value := range filter.Filters {
		if value == nil {
			query = query.Where(key + " IS NULL")
			continue
		}
		query = query.Where(key+" = ?", value)
	}
	return query
}

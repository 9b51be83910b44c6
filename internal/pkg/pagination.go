package pkg

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/domain"
)

const (
	defaultPage = 1
	// MaxLimit bounds the page size of every list query.
	MaxLimit = 100
)

// reservedParams lists query parameter names used for paging, sorting and
// search, not for filtering.
var reservedParams = map[string]bool{
	"page":           true,
	"limit":          true,
	"sort":           true,
	"search":         true,
	"includeDeleted": true,
	"locale":         true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePageRequest extracts paging, sorting, search and filter parameters from
// query params. defaultLimit applies when limit is missing or invalid.
func ParsePageRequest(c *gin.Context, defaultLimit int) domain.PageRequest {
	if defaultLimit < 1 || defaultLimit > MaxLimit {
		defaultLimit = 20
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	includeDeleted, _ := strconv.ParseBool(c.Query("includeDeleted"))

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.PageRequest{
		Page:           page,
		Limit:          limit,
		Sort:           c.Query("sort"),
		Search:         strings.TrimSpace(c.Query("search")),
		IncludeDeleted: includeDeleted,
		Filter:         filter,
	}
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET based on the page request.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page, limit := req.Page, req.Limit
		if page < 1 {
			page = defaultPage
		}
		if limit < 1 || limit > MaxLimit {
			limit = MaxLimit
		}
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

// OrderBy is one ORDER BY term.
type OrderBy struct {
	Column string
	Desc   bool
}

func (o OrderBy) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// Sort returns a GORM scope that applies a total ORDER BY.
//
// A requested "param:asc|desc" sort is honoured when param is a key of allowed
// (mapping query names to columns). The defaults follow, and "id ASC" is
// appended unless id is already ordered, so equal sort keys never make pages
// overlap.
func Sort(req domain.PageRequest, allowed map[string]string, defaults ...OrderBy) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		terms := make([]OrderBy, 0, len(defaults)+2)
		if requested, ok := parseSort(req.Sort, allowed); ok {
			terms = append(terms, requested)
		}
		terms = append(terms, defaults...)

		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			if seen[t.Column] {
				continue
			}
			seen[t.Column] = true
			db = db.Order(t.String())
		}
		if !seen["id"] {
			db = db.Order("id ASC")
		}
		return db
	}
}

func parseSort(sort string, allowed map[string]string) (OrderBy, bool) {
	parts := strings.SplitN(sort, ":", 2)
	if len(parts) != 2 {
		return OrderBy{}, false
	}

	field := strings.TrimSpace(parts[0])
	direction := strings.TrimSpace(strings.ToLower(parts[1]))
	if direction != "asc" && direction != "desc" {
		return OrderBy{}, false
	}

	column, ok := allowed[field]
	if !ok || !validFieldName.MatchString(column) {
		return OrderBy{}, false
	}
	return OrderBy{Column: column, Desc: direction == "desc"}, true
}

// FilterKind selects how a filter value is compared.
type FilterKind int

const (
	// FilterExact compares the raw string value for equality.
	FilterExact FilterKind = iota
	// FilterText performs a case-insensitive substring match.
	FilterText
	// FilterBool parses the value with strconv.ParseBool; invalid values are ignored.
	FilterBool
	// FilterInt parses the value as an integer; invalid values are ignored.
	FilterInt
)

// FilterField maps a query parameter to a column.
type FilterField struct {
	Column string
	Kind   FilterKind
}

// Filters maps query parameter names to filterable columns.
type Filters map[string]FilterField

// Filter returns a GORM scope that applies WHERE conditions based on the page request filters.
// Only filter keys present in fields are applied; others are silently ignored.
func Filter(req domain.PageRequest, fields Filters) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keys := make([]string, 0, len(req.Filter))
		for key := range req.Filter {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			field, ok := fields[key]
			if !ok || !validFieldName.MatchString(field.Column) {
				continue
			}
			value := req.Filter[key]

			switch field.Kind {
			case FilterText:
				db = db.Where(likeCondition(field.Column), likePattern(value))
			case FilterBool:
				b, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}
				db = db.Where(field.Column+" = ?", b)
			case FilterInt:
				n, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					continue
				}
				db = db.Where(field.Column+" = ?", n)
			default:
				db = db.Where(field.Column+" = ?", value)
			}
		}
		return db
	}
}

// TranslationSearch names the translation table columns matched by a search.
type TranslationSearch struct {
	Table        string
	ParentColumn string
	Columns      []string
}

// SearchSpec lists the columns a free-text search is matched against.
type SearchSpec struct {
	Columns      []string
	Translations []TranslationSearch
}

// Search returns a GORM scope that OR-combines case-insensitive substring
// matches of req.Search over the parent columns and the translation rows.
// An empty search term leaves the query unchanged.
func Search(req domain.PageRequest, spec SearchSpec) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := strings.TrimSpace(req.Search)
		if term == "" {
			return db
		}
		pattern := likePattern(term)

		var (
			conds []string
			args  []any
		)
		for _, col := range spec.Columns {
			if !validFieldName.MatchString(col) {
				continue
			}
			conds = append(conds, likeCondition(col))
			args = append(args, pattern)
		}
		for _, ts := range spec.Translations {
			if !validFieldName.MatchString(ts.Table) || !validFieldName.MatchString(ts.ParentColumn) {
				continue
			}
			var inner []string
			for _, col := range ts.Columns {
				if !validFieldName.MatchString(col) {
					continue
				}
				inner = append(inner, likeCondition(col))
				args = append(args, pattern)
			}
			if len(inner) == 0 {
				continue
			}
			conds = append(conds, "id IN (SELECT "+ts.ParentColumn+" FROM "+ts.Table+" WHERE "+strings.Join(inner, " OR ")+")")
		}
		if len(conds) == 0 {
			return db
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeCondition matches column case-insensitively against a likePattern.
func likeCondition(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

// likePattern wraps value for a substring match. LIKE metacharacters in
// value match literally.
func likePattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}

// NewPageResult creates a PageResult with computed TotalPages.
func NewPageResult[T any](items []T, total int64, req domain.PageRequest) *domain.PageResult[T] {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.Limit)))
	}

	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items:      items,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

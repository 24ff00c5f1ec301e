package notion

import "encoding/json"

// Filter - фильтр запроса по одному свойству (равенство)
type Filter struct {
	Property string
	Type     PropertyType
	Equals   any
}

// MarshalJSON формирует {"property": ..., "<type>": {"equals": ...}}
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"property":     f.Property,
		string(f.Type): map[string]any{"equals": f.Equals},
	})
}

// TitleEquals - точное совпадение title свойства
func TitleEquals(property, value string) *Filter {
	return &Filter{Property: property, Type: TypeTitle, Equals: value}
}

// NumberEquals - точное совпадение number свойства
func NumberEquals(property string, value int64) *Filter {
	return &Filter{Property: property, Type: TypeNumber, Equals: value}
}

// SelectEquals - точное совпадение select свойства
func SelectEquals(property, value string) *Filter {
	return &Filter{Property: property, Type: TypeSelect, Equals: value}
}

// Query - параметры запроса к базе
type Query struct {
	Filter      *Filter `json:"filter,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
	StartCursor string  `json:"start_cursor,omitempty"`
}

// Page - страница (запись) удалённой базы
type Page struct {
	ID         string                   `json:"id"`
	Properties map[string]PropertyValue `json:"properties,omitempty"`
}

// QueryResult - одна страница результатов запроса
type QueryResult struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     parent     `json:"parent"`
	Properties Properties `json:"properties"`
}

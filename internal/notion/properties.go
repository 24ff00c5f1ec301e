package notion

import (
	"math"
	"strings"
)

// PropertyType - тип свойства страницы в удалённой базе
type PropertyType string

const (
	TypeTitle    PropertyType = "title"
	TypeRichText PropertyType = "rich_text"
	TypeNumber   PropertyType = "number"
	TypeSelect   PropertyType = "select"
	TypeDate     PropertyType = "date"
	TypeRelation PropertyType = "relation"
)

// TextContent - содержимое текстового фрагмента
type TextContent struct {
	Content string `json:"content"`
}

// RichText - текстовый фрагмент (title / rich_text)
type RichText struct {
	Type      string      `json:"type,omitempty"`
	Text      TextContent `json:"text"`
	PlainText string      `json:"plain_text,omitempty"`
}

// SelectOption - значение select свойства
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue - значение date свойства
type DateValue struct {
	Start string `json:"start"`
}

// RelationRef - ссылка на страницу в другой базе
type RelationRef struct {
	ID string `json:"id"`
}

// PropertyValue - типизированное значение свойства.
// Заполнено ровно одно поле, соответствующее типу.
type PropertyValue struct {
	Type     PropertyType  `json:"type,omitempty"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Number   *float64      `json:"number,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
	Relation []RelationRef `json:"relation,omitempty"`
}

// PlainText возвращает текст title или rich_text свойства
func (v PropertyValue) PlainText() string {
	parts := v.Title
	if len(parts) == 0 {
		parts = v.RichText
	}

	var sb strings.Builder
	for _, p := range parts {
		if p.Text.Content != "" {
			sb.WriteString(p.Text.Content)
		} else {
			sb.WriteString(p.PlainText)
		}
	}

	return sb.String()
}

// Integer возвращает целое значение number свойства
func (v PropertyValue) Integer() (int64, bool) {
	if v.Number == nil {
		return 0, false
	}

	n := *v.Number
	if n != math.Trunc(n) || math.Abs(n) >= 1<<63 {
		return 0, false
	}

	return int64(n), true
}

// Properties - набор свойств страницы для запроса создания.
// Заполняется через типизированные методы, которые возвращают сам набор,
// чтобы вызовы можно было объединять в цепочку.
type Properties map[string]PropertyValue

// NewProperties создает пустой набор свойств
func NewProperties() Properties {
	return make(Properties)
}

// Title задает title свойство
func (p Properties) Title(name, text string) Properties {
	p[name] = PropertyValue{Title: []RichText{{Text: TextContent{Content: text}}}}
	return p
}

// RichText задает rich_text свойство
func (p Properties) RichText(name, text string) Properties {
	p[name] = PropertyValue{RichText: []RichText{{Text: TextContent{Content: text}}}}
	return p
}

// Number задает number свойство
func (p Properties) Number(name string, value float64) Properties {
	p[name] = PropertyValue{Number: &value}
	return p
}

// Select задает select свойство
func (p Properties) Select(name, option string) Properties {
	p[name] = PropertyValue{Select: &SelectOption{Name: option}}
	return p
}

// Date задает date свойство
func (p Properties) Date(name, start string) Properties {
	p[name] = PropertyValue{Date: &DateValue{Start: start}}
	return p
}

// OptionalDate задает date свойство, только если start не пустой.
// Отсутствующая дата не пишется вовсе (а не как null).
func (p Properties) OptionalDate(name, start string) Properties {
	if start == "" {
		return p
	}

	return p.Date(name, start)
}

// RelationTo добавляет relation свойство, только если id не пустой
func (p Properties) RelationTo(name, pageID string) Properties {
	if pageID == "" {
		return p
	}

	p[name] = PropertyValue{Relation: []RelationRef{{ID: pageID}}}

	return p
}

package index

import "strings"

// Document документ поискового индекса. Теги хранятся в нижнем регистре
type Document struct {
	ID       string
	Name     string
	Category string
	Tags     []string
}

// Восемь документов демо-индекса, id совпадают с каталогом склада
var documents = []Document{
	{ID: "prod_001", Name: "Feature Flag Starter Kit", Category: "kits", Tags: []string{"starter", "beginner", "flags"}},
	{ID: "prod_002", Name: "Progressive Rollout Pro", Category: "tools", Tags: []string{"rollout", "progressive", "release"}},
	{ID: "prod_003", Name: "A/B Testing Suite", Category: "suites", Tags: []string{"testing", "ab", "experiment"}},
	{ID: "prod_004", Name: "Targeting Rules Package", Category: "packages", Tags: []string{"targeting", "rules", "segments"}},
	{ID: "prod_005", Name: "Segment Builder", Category: "tools", Tags: []string{"segments", "builder", "targeting"}},
	{ID: "prod_006", Name: "Experimentation Platform", Category: "platforms", Tags: []string{"experiment", "platform", "analytics"}},
	{ID: "prod_007", Name: "SDK Integration Kit", Category: "kits", Tags: []string{"sdk", "integration", "developer"}},
	{ID: "prod_008", Name: "Release Automation", Category: "platforms", Tags: []string{"release", "automation", "cicd"}},
}

// Index поиск по встроенному набору документов
type Index struct {
	docs []Document
}

// New создаёт индекс со встроенными документами
func New() *Index {
	return &Index{docs: documents}
}

// Search отбирает документы по подстроке запроса и категории.
// query сравнивается без регистра с именем и тегами; пустой query
// отбирает всю категорию, пустая категория не фильтрует
func (ix *Index) Search(query, category string) []Document {
	query = strings.ToLower(query)

	results := make([]Document, 0, len(ix.docs))
	for _, doc := range ix.docs {
		if query != "" && !matches(doc, query) {
			continue
		}
		if category != "" && doc.Category != category {
			continue
		}
		results = append(results, doc)
	}
	return results
}

// MatchName отбирает документы по подстроке в имени без учёта регистра
func (ix *Index) MatchName(q string) []Document {
	q = strings.ToLower(q)

	results := make([]Document, 0, len(ix.docs))
	for _, doc := range ix.docs {
		if strings.Contains(strings.ToLower(doc.Name), q) {
			results = append(results, doc)
		}
	}
	return results
}

// Suggest собирает подсказки по подстроке: имена документов и теги
// в порядке обхода индекса, теги без повторов
func (ix *Index) Suggest(prefix string) []string {
	prefix = strings.ToLower(prefix)

	suggestions := make([]string, 0, len(ix.docs))
	for _, doc := range ix.docs {
		if strings.Contains(strings.ToLower(doc.Name), prefix) {
			suggestions = append(suggestions, doc.Name)
		}
		for _, tag := range doc.Tags {
			if strings.Contains(tag, prefix) && !contains(suggestions, tag) {
				suggestions = append(suggestions, tag)
			}
		}
	}
	return suggestions
}

// Categories возвращает категории индекса без повторов в порядке
// первого появления
func (ix *Index) Categories() []string {
	seen := make(map[string]bool, len(ix.docs))
	categories := make([]string, 0, len(ix.docs))
	for _, doc := range ix.docs {
		if seen[doc.Category] {
			continue
		}
		seen[doc.Category] = true
		categories = append(categories, doc.Category)
	}
	return categories
}

// matches проверяет вхождение запроса в имя или любой тег документа
func matches(doc Document, query string) bool {
	if strings.Contains(strings.ToLower(doc.Name), query) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(tag, query) {
			return true
		}
	}
	return false
}

// contains проверяет наличие строки в срезе
func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
